package radiomics

import "fmt"

// glszmFeatures признаки матрицы размеров зон.
type glszmFeatures struct {
	SizeZoneNonUniformity          float64
	SmallAreaHighGrayLevelEmphasis float64
	ZonePercentage                 float64
}

// computeGLSZM зона - 26-связная компонента вокселей очага одного уровня.
func computeGLSZM(r *roi) (glszmFeatures, error) {
	visited := make([]bool, len(r.levels))
	sizeCounts := make([]float64, r.count+1)
	around := neighbors()

	var (
		zones int
		szhge float64
		stack []int
	)
	for start, g := range r.levels {
		if g == 0 || visited[start] {
			continue
		}

		size := 0
		visited[start] = true
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			size++

			x, y, z := r.coords(idx)
			for _, d := range around {
				nx, ny, nz := x+d.dx, y+d.dy, z+d.dz
				if r.level(nx, ny, nz) != g {
					continue
				}
				next := r.index(nx, ny, nz)
				if visited[next] {
					continue
				}
				visited[next] = true
				stack = append(stack, next)
			}
		}

		zones++
		sizeCounts[size]++
		szhge += float64(g*g) / float64(size*size)
	}
	if zones == 0 {
		return glszmFeatures{}, fmt.Errorf("%w: no zones found", ErrDegenerateROI)
	}

	var znu float64
	for _, c := range sizeCounts {
		znu += c * c
	}

	nz := float64(zones)
	return glszmFeatures{
		SizeZoneNonUniformity:          znu / nz,
		SmallAreaHighGrayLevelEmphasis: szhge / nz,
		ZonePercentage:                 nz / float64(r.count),
	}, nil
}
