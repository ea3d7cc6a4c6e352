package radiomics

import (
	"fmt"
	"math"
)

// eps добавляется под логарифм, как в numpy.spacing(1).
const eps = 2.220446049250313e-16

// glcmFeatures признаки матрицы совместной встречаемости уровней серого.
type glcmFeatures struct {
	Id                float64 // inverse difference (homogeneity)
	DifferenceAverage float64
	SumEntropy        float64
}

// computeGLCM считает признаки по каждому направлению и усредняет их.
// Матрица симметрична, поэтому распределения разности и суммы уровней
// совпадают с распределениями по несимметризованным парам.
func computeGLCM(r *roi, distance int) (glcmFeatures, error) {
	diff := make([]float64, r.maxLevel+1)
	sum := make([]float64, 2*r.maxLevel+1)

	var acc glcmFeatures
	used := 0
	for _, d := range r.directions(distance) {
		clear(diff)
		clear(sum)
		pairs := 0

		for idx, i := range r.levels {
			if i == 0 {
				continue
			}
			x, y, z := r.coords(idx)
			j := r.level(x+d.dx, y+d.dy, z+d.dz)
			if j == 0 {
				continue
			}
			diff[absInt(i-j)]++
			sum[i+j]++
			pairs++
		}
		if pairs == 0 {
			continue
		}

		f := glcmFromDistributions(diff, sum, float64(pairs))
		acc.Id += f.Id
		acc.DifferenceAverage += f.DifferenceAverage
		acc.SumEntropy += f.SumEntropy
		used++
	}
	if used == 0 {
		return glcmFeatures{}, fmt.Errorf("%w: no co-occurring voxel pairs at distance %d", ErrDegenerateROI, distance)
	}

	n := float64(used)
	return glcmFeatures{
		Id:                acc.Id / n,
		DifferenceAverage: acc.DifferenceAverage / n,
		SumEntropy:        acc.SumEntropy / n,
	}, nil
}

func glcmFromDistributions(diff, sum []float64, total float64) glcmFeatures {
	var f glcmFeatures
	for k, count := range diff {
		if count == 0 {
			continue
		}
		p := count / total
		f.Id += p / (1 + float64(k))
		f.DifferenceAverage += float64(k) * p
	}
	for _, count := range sum {
		if count == 0 {
			continue
		}
		p := count / total
		f.SumEntropy -= p * math.Log2(p+eps)
	}
	return f
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
