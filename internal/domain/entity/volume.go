package entity

import "math"

// Volume трёхмерный скалярный массив, хранится плоско в порядке [z][y][x].
type Volume struct {
	SizeX int
	SizeY int
	SizeZ int
	// Spacing шаг сетки по x, y, z в мм. Нулевой шаг означает, что геометрия неизвестна.
	Spacing [3]float64
	Data    []float64
}

// NewVolume создаёт объём заданного размера, заполненный нулями.
func NewVolume(sizeX, sizeY, sizeZ int, spacing [3]float64) *Volume {
	return &Volume{
		SizeX:   sizeX,
		SizeY:   sizeY,
		SizeZ:   sizeZ,
		Spacing: spacing,
		Data:    make([]float64, sizeX*sizeY*sizeZ),
	}
}

// Len возвращает число вокселей.
func (v *Volume) Len() int {
	return v.SizeX * v.SizeY * v.SizeZ
}

// Index переводит координаты в индекс плоского массива.
func (v *Volume) Index(x, y, z int) int {
	return (z*v.SizeY+y)*v.SizeX + x
}

// Contains проверяет, что координаты лежат внутри объёма.
func (v *Volume) Contains(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < v.SizeX && y < v.SizeY && z < v.SizeZ
}

// At возвращает значение вокселя.
func (v *Volume) At(x, y, z int) float64 {
	return v.Data[v.Index(x, y, z)]
}

// Set записывает значение вокселя.
func (v *Volume) Set(x, y, z int, value float64) {
	v.Data[v.Index(x, y, z)] = value
}

// SameSize сравнивает размеры двух объёмов.
func (v *Volume) SameSize(o *Volume) bool {
	return v.SizeX == o.SizeX && v.SizeY == o.SizeY && v.SizeZ == o.SizeZ
}

// SameGrid сравнивает размеры и шаг сетки с допуском tolerance.
// Если у одного из объёмов шаг неизвестен, сравниваются только размеры.
func (v *Volume) SameGrid(o *Volume, tolerance float64) bool {
	if !v.SameSize(o) {
		return false
	}
	if !v.hasSpacing() || !o.hasSpacing() {
		return true
	}
	for i := range v.Spacing {
		if math.Abs(v.Spacing[i]-o.Spacing[i]) > tolerance {
			return false
		}
	}
	return true
}

func (v *Volume) hasSpacing() bool {
	return v.Spacing != [3]float64{}
}
