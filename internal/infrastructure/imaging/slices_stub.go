//go:build !gocv
// +build !gocv

package imaging

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"go.uber.org/zap"

	"lesion-features/internal/domain/entity"
)

// SliceStackLoader загрузчик-заглушка (без OpenCV).
type SliceStackLoader struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// NewSliceStackLoader создаёт загрузчик-заглушку.
func NewSliceStackLoader(fs billy.Filesystem, logger *zap.Logger) *SliceStackLoader {
	return &SliceStackLoader{fs: fs, logger: logger}
}

// Load возвращает ошибку, если сборка без тега gocv.
func (l *SliceStackLoader) Load(ctx context.Context, path string) (*entity.Volume, error) {
	return nil, fmt.Errorf("%w: %s: gocv build tag is not enabled", entity.ErrImageLoad, path)
}
