//go:build gocv
// +build gocv

package imaging

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"lesion-features/internal/domain/entity"
)

// SliceStackLoader читает маску из стопки изображений срезов (PNG, TIFF, ...).
// Срезы идут в порядке имён файлов, ненулевые пиксели становятся 1.
type SliceStackLoader struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// NewSliceStackLoader создаёт загрузчик срезов на OpenCV.
func NewSliceStackLoader(fs billy.Filesystem, logger *zap.Logger) *SliceStackLoader {
	return &SliceStackLoader{fs: fs, logger: logger}
}

// Load собирает объём из изображений path.
func (l *SliceStackLoader) Load(ctx context.Context, path string) (*entity.Volume, error) {
	files, err := seriesFiles(l.fs, path)
	if err != nil {
		return nil, err
	}

	var (
		vol  *entity.Volume
		rows int
		cols int
		z    int
	)
	images := make([]string, 0, len(files))
	for _, f := range files {
		if isSliceImage(f) {
			images = append(images, f)
		}
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no slice images in %s", entity.ErrImageLoad, path)
	}

	for _, file := range images {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		mat := gocv.IMRead(file, gocv.IMReadGrayScale)
		if mat.Empty() {
			mat.Close()
			return nil, fmt.Errorf("%w: failed to decode %s", entity.ErrImageLoad, file)
		}

		if vol == nil {
			rows, cols = mat.Rows(), mat.Cols()
			// Шаг сетки у изображений неизвестен.
			vol = entity.NewVolume(cols, rows, len(images), [3]float64{})
		} else if mat.Rows() != rows || mat.Cols() != cols {
			mat.Close()
			return nil, fmt.Errorf("%w: slice %s is %dx%d, expected %dx%d", entity.ErrImageLoad, file, mat.Cols(), mat.Rows(), cols, rows)
		}

		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				if mat.GetUCharAt(y, x) != 0 {
					vol.Set(x, y, z, 1)
				}
			}
		}
		mat.Close()
		z++
	}

	l.logger.Debug("mask slices loaded", zap.String("path", path), zap.Int("slices", z))
	return vol, nil
}
