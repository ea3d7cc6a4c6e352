package radiomics

import (
	"context"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"lesion-features/internal/domain/entity"
	"lesion-features/internal/domain/port"
)

// paramsFile раздел setting файла параметров; остальные разделы игнорируются.
type paramsFile struct {
	Setting struct {
		BinWidth              *float64  `yaml:"binWidth"`
		Interpolator          *string   `yaml:"interpolator"`
		ResampledPixelSpacing []float64 `yaml:"resampledPixelSpacing"`
		Delta                 *int      `yaml:"delta"`
		Label                 *float64  `yaml:"label"`
		GeometryTolerance     *float64  `yaml:"geometryTolerance"`
	} `yaml:"setting"`
}

// ParseParams накладывает параметры из YAML на настройки по умолчанию.
func ParseParams(data []byte) (Settings, error) {
	settings := DefaultSettings()

	var file paramsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return settings, fmt.Errorf("%w: %v", entity.ErrInvalidParams, err)
	}

	s := file.Setting
	if s.BinWidth != nil {
		settings.BinWidth = *s.BinWidth
	}
	if s.Interpolator != nil {
		settings.Interpolator = *s.Interpolator
	}
	if len(s.ResampledPixelSpacing) > 0 {
		settings.ResampledPixelSpacing = s.ResampledPixelSpacing
	}
	if s.Delta != nil {
		settings.Delta = *s.Delta
	}
	if s.Label != nil {
		settings.Label = *s.Label
	}
	if s.GeometryTolerance != nil {
		settings.GeometryTolerance = *s.GeometryTolerance
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// LoadParams читает файл параметров из fs.
func LoadParams(fs billy.Filesystem, path string) (Settings, error) {
	data, err := util.ReadFile(fs, path)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: read params %s: %v", entity.ErrInvalidParams, path, err)
	}
	return ParseParams(data)
}

// Provider собирает экстрактор с настройками из файла параметров.
type Provider struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// NewProvider создаёт провайдер экстракторов.
func NewProvider(fs billy.Filesystem, logger *zap.Logger) *Provider {
	return &Provider{fs: fs, logger: logger}
}

// ForParams возвращает экстрактор; при пустом пути используются настройки по умолчанию.
func (p *Provider) ForParams(ctx context.Context, paramsPath string) (port.FeatureExtractor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	settings := DefaultSettings()
	if paramsPath != "" {
		loaded, err := LoadParams(p.fs, paramsPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	}

	p.logger.Debug("extraction settings",
		zap.String("params", paramsPath),
		zap.Float64("bin_width", settings.BinWidth),
		zap.String("interpolator", settings.Interpolator),
		zap.Int("delta", settings.Delta),
		zap.Float64("label", settings.Label),
	)

	extractor, err := NewExtractor(settings, p.logger)
	if err != nil {
		return nil, err
	}
	return extractor, nil
}

// Проверка реализации интерфейса
var _ port.ExtractorProvider = (*Provider)(nil)
