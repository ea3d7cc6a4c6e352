package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVolume_IndexLayout(t *testing.T) {
	v := NewVolume(3, 2, 2, [3]float64{1, 1, 1})
	require.Equal(t, 12, v.Len())
	require.Equal(t, 0, v.Index(0, 0, 0))
	require.Equal(t, 1, v.Index(1, 0, 0))
	require.Equal(t, 3, v.Index(0, 1, 0))
	require.Equal(t, 6, v.Index(0, 0, 1))

	v.Set(2, 1, 1, 5)
	require.Equal(t, 5.0, v.At(2, 1, 1))
	require.Equal(t, 5.0, v.Data[11])
}

func TestVolume_Contains(t *testing.T) {
	v := NewVolume(2, 2, 1, [3]float64{})
	require.True(t, v.Contains(1, 1, 0))
	require.False(t, v.Contains(2, 0, 0))
	require.False(t, v.Contains(0, 0, 1))
	require.False(t, v.Contains(-1, 0, 0))
}

func TestVolume_SameGrid(t *testing.T) {
	a := NewVolume(4, 4, 2, [3]float64{0.5, 0.5, 2})
	b := NewVolume(4, 4, 2, [3]float64{0.5, 0.5, 2.0005})
	c := NewVolume(4, 4, 2, [3]float64{0.5, 0.5, 3})
	unknown := NewVolume(4, 4, 2, [3]float64{})
	other := NewVolume(4, 4, 3, [3]float64{0.5, 0.5, 2})

	require.True(t, a.SameGrid(b, 1e-3))
	require.False(t, a.SameGrid(c, 1e-3))
	require.True(t, a.SameGrid(unknown, 1e-3))
	require.False(t, a.SameGrid(other, 1e-3))
}
