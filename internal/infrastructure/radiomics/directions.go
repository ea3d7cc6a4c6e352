package radiomics

// offset смещение к соседу в вокселях.
type offset struct {
	dx, dy, dz int
}

// directions уникальные направления на расстоянии distance (норма Чебышёва).
// Из каждой пары противоположных направлений берётся то, у которого
// первая ненулевая компонента (z, y, x) положительна.
func directions(distance int) []offset {
	var out []offset
	for dz := -distance; dz <= distance; dz++ {
		for dy := -distance; dy <= distance; dy++ {
			for dx := -distance; dx <= distance; dx++ {
				if maxAbs(dx, dy, dz) != distance {
					continue
				}
				if !firstNonZeroPositive(dz, dy, dx) {
					continue
				}
				out = append(out, offset{dx: dx, dy: dy, dz: dz})
			}
		}
	}
	return out
}

// directions направления, которые помещаются в ограничивающий параллелепипед
// очага: |d| < размера по каждой оси. Для плоского очага направления
// поперёк плоскости отбрасываются.
func (r *roi) directions(distance int) []offset {
	var out []offset
	for _, d := range directions(distance) {
		if absInt(d.dx) < r.nx && absInt(d.dy) < r.ny && absInt(d.dz) < r.nz {
			out = append(out, d)
		}
	}
	return out
}

// neighbors полная 26-связная окрестность.
func neighbors() []offset {
	dirs := directions(1)
	out := make([]offset, 0, 2*len(dirs))
	for _, d := range dirs {
		out = append(out, d, offset{dx: -d.dx, dy: -d.dy, dz: -d.dz})
	}
	return out
}

func firstNonZeroPositive(values ...int) bool {
	for _, v := range values {
		if v != 0 {
			return v > 0
		}
	}
	return false
}

func maxAbs(values ...int) int {
	m := 0
	for _, v := range values {
		if v < 0 {
			v = -v
		}
		if v > m {
			m = v
		}
	}
	return m
}
