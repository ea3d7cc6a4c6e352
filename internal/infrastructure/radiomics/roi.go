package radiomics

import (
	"fmt"
	"math"

	"lesion-features/internal/domain/entity"
)

// Ошибки вычисления признаков.
var (
	ErrGeometryMismatch = fmt.Errorf("%w: mask and image geometry differ", entity.ErrFeatureComputation)
	ErrEmptyROI         = fmt.Errorf("%w: mask has no voxels with the label value", entity.ErrFeatureComputation)
	ErrDegenerateROI    = fmt.Errorf("%w: region is too small for texture analysis", entity.ErrFeatureComputation)
)

// roi дискретизованная область очага, обрезанная по ограничивающему параллелепипеду маски.
type roi struct {
	nx, ny, nz int
	levels     []int // уровень серого; 0 вне очага
	count      int   // число вокселей очага
	maxLevel   int
	maximum    float64 // максимальная исходная интенсивность
}

func newROI(image, mask *entity.Volume, s Settings) (*roi, error) {
	if image == nil || mask == nil {
		return nil, fmt.Errorf("%w: image or mask is missing", entity.ErrFeatureComputation)
	}
	if len(image.Data) != image.Len() || len(mask.Data) != mask.Len() {
		return nil, fmt.Errorf("%w: volume data does not match its size", entity.ErrFeatureComputation)
	}
	if !image.SameGrid(mask, s.GeometryTolerance) {
		return nil, fmt.Errorf("%w: image %dx%dx%d %v, mask %dx%dx%d %v", ErrGeometryMismatch,
			image.SizeX, image.SizeY, image.SizeZ, image.Spacing,
			mask.SizeX, mask.SizeY, mask.SizeZ, mask.Spacing)
	}

	minX, minY, minZ := mask.SizeX, mask.SizeY, mask.SizeZ
	maxX, maxY, maxZ := -1, -1, -1
	lo, hi := math.Inf(1), math.Inf(-1)
	count := 0

	for z := 0; z < mask.SizeZ; z++ {
		for y := 0; y < mask.SizeY; y++ {
			for x := 0; x < mask.SizeX; x++ {
				if mask.At(x, y, z) != s.Label {
					continue
				}
				v := image.At(x, y, z)
				if math.IsNaN(v) {
					return nil, fmt.Errorf("%w: NaN intensity at (%d, %d, %d)", entity.ErrFeatureComputation, x, y, z)
				}
				count++
				lo = math.Min(lo, v)
				hi = math.Max(hi, v)
				minX, maxX = min(minX, x), max(maxX, x)
				minY, maxY = min(minY, y), max(maxY, y)
				minZ, maxZ = min(minZ, z), max(maxZ, z)
			}
		}
	}
	if count == 0 {
		return nil, ErrEmptyROI
	}

	edges := binEdges(lo, hi, s.BinWidth)
	r := &roi{
		nx:      maxX - minX + 1,
		ny:      maxY - minY + 1,
		nz:      maxZ - minZ + 1,
		count:   count,
		maximum: hi,
	}
	r.levels = make([]int, r.nx*r.ny*r.nz)

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if mask.At(x, y, z) != s.Label {
					continue
				}
				g := digitize(image.At(x, y, z), edges)
				r.levels[r.index(x-minX, y-minY, z-minZ)] = g
				r.maxLevel = max(r.maxLevel, g)
			}
		}
	}
	return r, nil
}

func (r *roi) index(x, y, z int) int {
	return (z*r.ny+y)*r.nx + x
}

func (r *roi) coords(idx int) (x, y, z int) {
	x = idx % r.nx
	y = (idx / r.nx) % r.ny
	z = idx / (r.nx * r.ny)
	return x, y, z
}

// level уровень серого вокселя; 0 вне очага и за границами.
func (r *roi) level(x, y, z int) int {
	if x < 0 || y < 0 || z < 0 || x >= r.nx || y >= r.ny || z >= r.nz {
		return 0
	}
	return r.levels[r.index(x, y, z)]
}
