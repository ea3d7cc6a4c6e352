package port

import (
	"context"

	"lesion-features/internal/domain/entity"
)

// VolumeLoader интерфейс загрузчика объёмов (снимков и масок)
type VolumeLoader interface {
	// Load читает объём из каталога серии или из одного файла
	Load(ctx context.Context, path string) (*entity.Volume, error)
}
