package entity

import (
	"path/filepath"
	"strings"
)

// ImageDirName зарезервированный каталог с серией снимков пациента.
const ImageDirName = "dcm"

// Patient пациент и принадлежащие ему очаги.
type Patient struct {
	Ref      string    // имя каталога пациента
	DataPath string    // корень набора данных
	Image    *Volume   // снимок из каталога dcm
	Lesions  []*Lesion // очаги в порядке обхода
}

// NewPatient создаёт пациента без очагов.
func NewPatient(ref, dataPath string, image *Volume) *Patient {
	return &Patient{
		Ref:      ref,
		DataPath: dataPath,
		Image:    image,
	}
}

// Dir возвращает каталог пациента.
func (p *Patient) Dir() string {
	return PatientDir(p.DataPath, p.Ref)
}

// AddLesion добавляет очаг в конец списка.
func (p *Patient) AddLesion(l *Lesion) {
	p.Lesions = append(p.Lesions, l)
}

// PatientDir возвращает каталог пациента ref в наборе dataPath.
func PatientDir(dataPath, ref string) string {
	return filepath.Join(dataPath, ref)
}

// ImageDir возвращает каталог серии снимков пациента.
func ImageDir(dataPath, ref string) string {
	return filepath.Join(dataPath, ref, ImageDirName)
}

// IsPatientEntry скрытые элементы (".DS_Store" и т.п.) пациентами не считаются.
func IsPatientEntry(name string) bool {
	return !strings.HasPrefix(name, ".")
}

// IsLesionEntry очагом считается любой элемент с буквой "l" в имени, кроме "dcm".
func IsLesionEntry(name string) bool {
	return name != ImageDirName && strings.Contains(name, "l")
}
