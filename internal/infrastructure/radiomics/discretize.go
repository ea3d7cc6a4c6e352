package radiomics

import (
	"math"
	"sort"
)

// floorMod остаток со знаком делителя.
func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// binEdges границы интервалов фиксированной ширины.
// Нижняя граница кратна width, верхняя с запасом в два интервала над максимумом.
func binEdges(minValue, maxValue, width float64) []float64 {
	low := minValue - floorMod(minValue, width)
	high := maxValue + 2*width

	n := int(math.Ceil((high - low) / width))
	edges := make([]float64, n)
	for i := range edges {
		edges[i] = low + float64(i)*width
	}
	return edges
}

// digitize номер интервала значения: число границ, не превышающих x. Уровни начинаются с 1.
func digitize(x float64, edges []float64) int {
	return sort.Search(len(edges), func(i int) bool {
		return edges[i] > x
	})
}
