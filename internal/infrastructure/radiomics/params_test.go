package radiomics

import (
	"context"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lesion-features/internal/domain/entity"
)

func TestParseParams_Defaults(t *testing.T) {
	s, err := ParseParams(nil)
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), s)
}

func TestParseParams_Overrides(t *testing.T) {
	data := []byte(`
imageType:
  Original: {}
featureClass:
  glcm:
setting:
  binWidth: 0.5
  interpolator: sitkLinear
  resampledPixelSpacing:
  delta: 2
  label: 3
`)
	s, err := ParseParams(data)
	require.NoError(t, err)
	require.Equal(t, 0.5, s.BinWidth)
	require.Equal(t, "sitkLinear", s.Interpolator)
	require.Equal(t, 2, s.Delta)
	require.Equal(t, 3.0, s.Label)
	require.Empty(t, s.ResampledPixelSpacing)
}

func TestParseParams_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "setting: [binWidth"},
		{"negative bin width", "setting:\n  binWidth: -1\n"},
		{"unknown interpolator", "setting:\n  interpolator: cubic\n"},
		{"resampling", "setting:\n  resampledPixelSpacing: [1, 1, 1]\n"},
		{"zero delta", "setting:\n  delta: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseParams([]byte(tt.data))
			require.ErrorIs(t, err, entity.ErrInvalidParams)
		})
	}
}

func TestProvider_ForParams(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "/params.yaml", []byte("setting:\n  binWidth: 1\n"), 0o644))
	p := NewProvider(fs, zap.NewNop())
	ctx := context.Background()

	ex, err := p.ForParams(ctx, "/params.yaml")
	require.NoError(t, err)
	require.Equal(t, 1.0, ex.(*Extractor).Settings().BinWidth)

	ex, err = p.ForParams(ctx, "")
	require.NoError(t, err)
	require.Equal(t, DefaultSettings(), ex.(*Extractor).Settings())

	_, err = p.ForParams(ctx, "/missing.yaml")
	require.ErrorIs(t, err, entity.ErrInvalidParams)
}
