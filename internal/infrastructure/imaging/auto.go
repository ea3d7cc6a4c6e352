package imaging

import (
	"context"

	"github.com/go-git/go-billy/v5"

	"lesion-features/internal/domain/entity"
	"lesion-features/internal/domain/port"
)

// AutoLoader выбирает загрузчик по содержимому: изображения срезов или DICOM.
type AutoLoader struct {
	fs     billy.Filesystem
	dicom  port.VolumeLoader
	slices port.VolumeLoader
}

// NewAutoLoader создаёт загрузчик масок.
func NewAutoLoader(fs billy.Filesystem, dicom, slices port.VolumeLoader) *AutoLoader {
	return &AutoLoader{fs: fs, dicom: dicom, slices: slices}
}

// Load делегирует загрузку подходящему загрузчику.
func (l *AutoLoader) Load(ctx context.Context, path string) (*entity.Volume, error) {
	files, err := seriesFiles(l.fs, path)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		if isSliceImage(f) {
			return l.slices.Load(ctx, path)
		}
	}
	return l.dicom.Load(ctx, path)
}

// Проверка реализации интерфейса
var _ port.VolumeLoader = (*AutoLoader)(nil)
