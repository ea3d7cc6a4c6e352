package radiomics

import "fmt"

// glrlmFeatures признаки матрицы длин серий.
type glrlmFeatures struct {
	HighGrayLevelRunEmphasis float64
}

// computeGLRLM серия - максимальная цепочка вокселей очага одного уровня вдоль направления.
// Серия начинается там, где предыдущий по направлению воксель имеет другой уровень
// или лежит вне очага, поэтому считать длины не нужно: HGLRE зависит только от уровня.
func computeGLRLM(r *roi) (glrlmFeatures, error) {
	var acc float64
	used := 0
	for _, d := range r.directions(1) {
		runs := 0
		var weighted float64

		for idx, g := range r.levels {
			if g == 0 {
				continue
			}
			x, y, z := r.coords(idx)
			if r.level(x-d.dx, y-d.dy, z-d.dz) == g {
				continue
			}
			runs++
			weighted += float64(g * g)
		}
		if runs == 0 {
			continue
		}

		acc += weighted / float64(runs)
		used++
	}
	if used == 0 {
		return glrlmFeatures{}, fmt.Errorf("%w: no runs found", ErrDegenerateROI)
	}

	return glrlmFeatures{HighGrayLevelRunEmphasis: acc / float64(used)}, nil
}
