// Package radiomics вычисляет текстурные и интенсивностные признаки очага:
// first order, GLCM, GLRLM и GLSZM.
package radiomics

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"lesion-features/internal/domain/entity"
	"lesion-features/internal/domain/port"
)

// Extractor вычисляет восемь признаков очага с одними и теми же настройками.
type Extractor struct {
	settings Settings
	logger   *zap.Logger
}

// NewExtractor создаёт экстрактор с проверенными настройками.
func NewExtractor(settings Settings, logger *zap.Logger) (*Extractor, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{settings: settings, logger: logger}, nil
}

// Settings возвращает настройки экстрактора.
func (e *Extractor) Settings() Settings {
	return e.settings
}

// Extract возвращает либо все восемь признаков, либо ошибку.
func (e *Extractor) Extract(ctx context.Context, image, mask *entity.Volume) (entity.Features, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r, err := newROI(image, mask, e.settings)
	if err != nil {
		return nil, err
	}

	first := computeFirstOrder(r)

	glcm, err := computeGLCM(r, e.settings.Delta)
	if err != nil {
		return nil, fmt.Errorf("glcm: %w", err)
	}

	glrlm, err := computeGLRLM(r)
	if err != nil {
		return nil, fmt.Errorf("glrlm: %w", err)
	}

	glszm, err := computeGLSZM(r)
	if err != nil {
		return nil, fmt.Errorf("glszm: %w", err)
	}

	e.logger.Debug("features extracted",
		zap.Int("roi_voxels", r.count),
		zap.Int("gray_levels", r.maxLevel),
	)

	return entity.Features{
		entity.FeatureEntropy:       glcm.SumEntropy,
		entity.FeatureHomogenity:    glcm.Id,
		entity.FeatureDissimilarity: glcm.DifferenceAverage,
		entity.FeatureHGLRE:         glrlm.HighGrayLevelRunEmphasis,
		entity.FeatureZLNU:          glszm.SizeZoneNonUniformity,
		entity.FeatureSZHGE:         glszm.SmallAreaHighGrayLevelEmphasis,
		entity.FeatureZP:            glszm.ZonePercentage,
		entity.FeatureMaximum:       first.Maximum,
	}, nil
}

// Проверка реализации интерфейса
var _ port.FeatureExtractor = (*Extractor)(nil)
