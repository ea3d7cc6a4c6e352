package radiomics

import (
	"fmt"

	"lesion-features/internal/domain/entity"
)

// Settings параметры извлечения, общие для всех семейств признаков и всех очагов.
type Settings struct {
	BinWidth              float64   // ширина интервала дискретизации интенсивности
	Interpolator          string    // интерполятор передискретизации
	ResampledPixelSpacing []float64 // пусто: передискретизация отключена
	Delta                 int       // расстояние соседства для GLCM
	Label                 float64   // значение маски, задающее очаг
	GeometryTolerance     float64   // допуск при сравнении шага сетки маски и снимка
}

// DefaultSettings фиксированные настройки конвейера.
func DefaultSettings() Settings {
	return Settings{
		BinWidth:          0.3,
		Interpolator:      "sitkBSpline",
		Delta:             1,
		Label:             1,
		GeometryTolerance: 1e-3,
	}
}

var interpolators = map[string]struct{}{
	"sitkNearestNeighbor":      {},
	"sitkLinear":               {},
	"sitkBSpline":              {},
	"sitkGaussian":             {},
	"sitkLabelGaussian":        {},
	"sitkHammingWindowedSinc":  {},
	"sitkCosineWindowedSinc":   {},
	"sitkWelchWindowedSinc":    {},
	"sitkLanczosWindowedSinc":  {},
	"sitkBlackmanWindowedSinc": {},
}

// Validate проверяет настройки.
func (s Settings) Validate() error {
	if s.BinWidth <= 0 {
		return fmt.Errorf("%w: binWidth must be positive, got %v", entity.ErrInvalidParams, s.BinWidth)
	}
	if _, ok := interpolators[s.Interpolator]; !ok {
		return fmt.Errorf("%w: unknown interpolator %q", entity.ErrInvalidParams, s.Interpolator)
	}
	if len(s.ResampledPixelSpacing) > 0 {
		return fmt.Errorf("%w: resampledPixelSpacing is not supported", entity.ErrInvalidParams)
	}
	if s.Delta < 1 {
		return fmt.Errorf("%w: delta must be at least 1, got %d", entity.ErrInvalidParams, s.Delta)
	}
	if s.GeometryTolerance < 0 {
		return fmt.Errorf("%w: geometryTolerance must not be negative", entity.ErrInvalidParams)
	}
	return nil
}
