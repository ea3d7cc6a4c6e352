package radiomics

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"lesion-features/internal/domain/entity"
)

func volume(sizeX, sizeY, sizeZ int, values ...float64) *entity.Volume {
	v := entity.NewVolume(sizeX, sizeY, sizeZ, [3]float64{1, 1, 1})
	copy(v.Data, values)
	return v
}

func fullMask(sizeX, sizeY, sizeZ int) *entity.Volume {
	v := entity.NewVolume(sizeX, sizeY, sizeZ, [3]float64{1, 1, 1})
	for i := range v.Data {
		v.Data[i] = 1
	}
	return v
}

func newTestExtractor(t *testing.T, settings Settings) *Extractor {
	t.Helper()
	e, err := NewExtractor(settings, zaptest.NewLogger(t))
	require.NoError(t, err)
	return e
}

func unitBins() Settings {
	s := DefaultSettings()
	s.BinWidth = 1
	return s
}

func TestExtract_LineOfDistinctLevels(t *testing.T) {
	e := newTestExtractor(t, unitBins())

	f, err := e.Extract(context.Background(), volume(3, 1, 1, 0, 1, 2), fullMask(3, 1, 1))
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	require.InDelta(t, 0.5, f[entity.FeatureHomogenity], 1e-12)
	require.InDelta(t, 1.0, f[entity.FeatureDissimilarity], 1e-12)
	require.InDelta(t, 1.0, f[entity.FeatureEntropy], 1e-12)
	require.InDelta(t, 14.0/3, f[entity.FeatureHGLRE], 1e-12)
	require.InDelta(t, 3.0, f[entity.FeatureZLNU], 1e-12)
	require.InDelta(t, 14.0/3, f[entity.FeatureSZHGE], 1e-12)
	require.InDelta(t, 1.0, f[entity.FeatureZP], 1e-12)
	require.Equal(t, 2.0, f[entity.FeatureMaximum])
}

func TestExtract_FlatROIUsesInPlaneDirections(t *testing.T) {
	e := newTestExtractor(t, unitBins())

	tests := []struct {
		name          string
		sizeX, sizeY  int
		sizeZ         int
		values        []float64
		wantHGLRE     float64
		wantDirsCount int
	}{
		// Серии: [1 1] и [2] только вдоль x.
		{"along x", 3, 1, 1, []float64{0, 0, 1}, 2.5, 1},
		{"along y", 1, 3, 1, []float64{0, 0, 1}, 2.5, 1},
		{"along z", 1, 1, 3, []float64{0, 0, 1}, 2.5, 1},
		// Плоскость 2x2: четыре направления в плоскости z.
		{"plane", 2, 2, 1, []float64{0, 0, 1, 1}, 2.5, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image := volume(tt.sizeX, tt.sizeY, tt.sizeZ, tt.values...)
			mask := fullMask(tt.sizeX, tt.sizeY, tt.sizeZ)

			r, err := newROI(image, mask, unitBins())
			require.NoError(t, err)
			require.Len(t, r.directions(1), tt.wantDirsCount)

			f, err := e.Extract(context.Background(), image, mask)
			require.NoError(t, err)
			require.InDelta(t, tt.wantHGLRE, f[entity.FeatureHGLRE], 1e-12)
		})
	}
}

func TestROIDirections_CroppedToMask(t *testing.T) {
	// Маска занимает одну строку внутри объёма 3x3x3.
	mask := entity.NewVolume(3, 3, 3, [3]float64{1, 1, 1})
	for x := 0; x < 3; x++ {
		mask.Set(x, 1, 1, 1)
	}
	image := entity.NewVolume(3, 3, 3, [3]float64{1, 1, 1})

	r, err := newROI(image, mask, unitBins())
	require.NoError(t, err)
	require.Equal(t, []offset{{dx: 1}}, r.directions(1))
	require.Equal(t, []offset{{dx: 2}}, r.directions(2))
	require.Len(t, directions(1), 13)
}

func TestExtract_UniformPlane(t *testing.T) {
	e := newTestExtractor(t, unitBins())

	f, err := e.Extract(context.Background(), volume(2, 2, 1, 5, 5, 5, 5), fullMask(2, 2, 1))
	require.NoError(t, err)

	require.InDelta(t, 1.0, f[entity.FeatureHomogenity], 1e-12)
	require.InDelta(t, 0.0, f[entity.FeatureDissimilarity], 1e-12)
	require.InDelta(t, 0.0, f[entity.FeatureEntropy], 1e-12)
	require.InDelta(t, 1.0, f[entity.FeatureHGLRE], 1e-12)
	require.InDelta(t, 1.0, f[entity.FeatureZLNU], 1e-12)
	require.InDelta(t, 1.0/16, f[entity.FeatureSZHGE], 1e-12)
	require.InDelta(t, 0.25, f[entity.FeatureZP], 1e-12)
	require.Equal(t, 5.0, f[entity.FeatureMaximum])
}

func TestExtract_DefaultBinWidth(t *testing.T) {
	e := newTestExtractor(t, DefaultSettings())

	// Уровни после дискретизации с шагом 0.3: 1, 2, 4.
	f, err := e.Extract(context.Background(), volume(3, 1, 1, 0.1, 0.5, 1.0), fullMask(3, 1, 1))
	require.NoError(t, err)

	require.InDelta(t, 0.5/2+0.5/3, f[entity.FeatureHomogenity], 1e-12)
	require.InDelta(t, 1.5, f[entity.FeatureDissimilarity], 1e-12)
	require.InDelta(t, 1.0, f[entity.FeatureEntropy], 1e-12)
	require.InDelta(t, 7.0, f[entity.FeatureHGLRE], 1e-12)
	require.InDelta(t, 7.0, f[entity.FeatureSZHGE], 1e-12)
	require.Equal(t, 1.0, f[entity.FeatureMaximum])
}

func TestExtract_Delta(t *testing.T) {
	s := unitBins()
	s.Delta = 2
	e := newTestExtractor(t, s)

	f, err := e.Extract(context.Background(), volume(3, 1, 1, 0, 1, 2), fullMask(3, 1, 1))
	require.NoError(t, err)

	require.InDelta(t, 1.0/3, f[entity.FeatureHomogenity], 1e-12)
	require.InDelta(t, 2.0, f[entity.FeatureDissimilarity], 1e-12)
}

func TestExtract_MaximumIgnoresVoxelsOutsideMask(t *testing.T) {
	e := newTestExtractor(t, unitBins())
	mask := volume(4, 1, 1, 1, 1, 1, 0)

	f, err := e.Extract(context.Background(), volume(4, 1, 1, 0, 1, 2, 100), mask)
	require.NoError(t, err)
	require.Equal(t, 2.0, f[entity.FeatureMaximum])
	require.InDelta(t, 1.0, f[entity.FeatureZP], 1e-12)
}

func TestExtract_Label(t *testing.T) {
	s := unitBins()
	s.Label = 2
	e := newTestExtractor(t, s)
	mask := volume(3, 1, 1, 2, 2, 1)

	f, err := e.Extract(context.Background(), volume(3, 1, 1, 0, 1, 50), mask)
	require.NoError(t, err)
	require.Equal(t, 1.0, f[entity.FeatureMaximum])
}

func TestExtract_ZonesFollowDiagonals(t *testing.T) {
	e := newTestExtractor(t, unitBins())
	// Два вокселя уровня 1 касаются только углом, между ними уровень 3.
	image := volume(2, 2, 1, 0, 2, 2, 0)

	f, err := e.Extract(context.Background(), image, fullMask(2, 2, 1))
	require.NoError(t, err)
	// Зоны: {(0,0),(1,1)} уровня 1 и {(1,0),(0,1)} уровня 3.
	require.InDelta(t, 0.5, f[entity.FeatureZP], 1e-12)
	require.InDelta(t, 2.0, f[entity.FeatureZLNU], 1e-12)
	require.InDelta(t, (1.0/4+9.0/4)/2, f[entity.FeatureSZHGE], 1e-12)
}

func TestExtract_Errors(t *testing.T) {
	e := newTestExtractor(t, unitBins())
	ctx := context.Background()

	tests := []struct {
		name  string
		image *entity.Volume
		mask  *entity.Volume
		want  error
	}{
		{"empty mask", volume(2, 1, 1, 1, 2), volume(2, 1, 1, 0, 0), ErrEmptyROI},
		{"single voxel", volume(2, 1, 1, 1, 2), volume(2, 1, 1, 1, 0), ErrDegenerateROI},
		{"size mismatch", volume(2, 1, 1, 1, 2), fullMask(3, 1, 1), ErrGeometryMismatch},
		{"nil mask", volume(2, 1, 1, 1, 2), nil, entity.ErrFeatureComputation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := e.Extract(ctx, tt.image, tt.mask)
			require.Nil(t, f)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, entity.ErrFeatureComputation)
		})
	}
}

func TestExtract_SpacingMismatch(t *testing.T) {
	e := newTestExtractor(t, unitBins())
	mask := fullMask(2, 1, 1)
	mask.Spacing = [3]float64{1, 1, 2}

	_, err := e.Extract(context.Background(), volume(2, 1, 1, 1, 2), mask)
	require.ErrorIs(t, err, ErrGeometryMismatch)
}

func TestExtract_Cancelled(t *testing.T) {
	e := newTestExtractor(t, unitBins())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Extract(ctx, volume(2, 1, 1, 1, 2), fullMask(2, 1, 1))
	require.ErrorIs(t, err, context.Canceled)
}

func TestExtract_Deterministic(t *testing.T) {
	e := newTestExtractor(t, DefaultSettings())
	image := entity.NewVolume(6, 5, 4, [3]float64{1, 1, 1})
	for i := range image.Data {
		image.Data[i] = math.Sin(float64(i)) * 3
	}
	mask := fullMask(6, 5, 4)

	first, err := e.Extract(context.Background(), image, mask)
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), image, mask)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestNewExtractor_InvalidSettings(t *testing.T) {
	s := DefaultSettings()
	s.BinWidth = 0
	_, err := NewExtractor(s, nil)
	require.ErrorIs(t, err, entity.ErrInvalidParams)
}
