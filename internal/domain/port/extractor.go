package port

import (
	"context"

	"lesion-features/internal/domain/entity"
)

// FeatureExtractor интерфейс извлечения признаков очага
type FeatureExtractor interface {
	// Extract вычисляет все восемь признаков по маске очага и снимку пациента
	Extract(ctx context.Context, image, mask *entity.Volume) (entity.Features, error)
}

// ExtractorProvider собирает экстрактор по файлу параметров извлечения
type ExtractorProvider interface {
	// ForParams читает параметры; пустой путь означает настройки по умолчанию
	ForParams(ctx context.Context, paramsPath string) (FeatureExtractor, error)
}
