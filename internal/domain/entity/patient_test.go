package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsPatientEntry(t *testing.T) {
	require.True(t, IsPatientEntry("P001"))
	require.False(t, IsPatientEntry(".DS_Store"))
	require.False(t, IsPatientEntry(".hidden"))
}

func TestIsLesionEntry(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"l1", true},
		{"lesion2", true},
		{"L1", false},
		{"dcm", false},
		{"roi", false},
		{"calibration", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsLesionEntry(tt.name))
		})
	}
}

func TestPatient_Dirs(t *testing.T) {
	p := NewPatient("P001", "/data", nil)
	require.Equal(t, "/data/P001", p.Dir())
	require.Equal(t, "/data/P001/dcm", ImageDir("/data", "P001"))
}

func TestPatient_AddLesionKeepsOrder(t *testing.T) {
	p := NewPatient("P001", "/data", nil)
	p.AddLesion(NewLesion("l2", "", nil))
	p.AddLesion(NewLesion("l1", "", nil))

	require.Len(t, p.Lesions, 2)
	require.Equal(t, "l2", p.Lesions[0].Ref)
	require.Equal(t, "l1", p.Lesions[1].Ref)
}

func TestRowIndex(t *testing.T) {
	require.Equal(t, "P001 l1", RowIndex("P001", "l1"))
}

func TestTableColumns(t *testing.T) {
	require.Equal(t, []string{
		"Index", "entropy", "homogenity", "dissimilarity", "HGLRE", "ZLNU", "SZHGE", "ZP", "maximum",
	}, TableColumns())
}
