package entity

import "fmt"

// Названия признаков, которые записываются для каждого очага.
const (
	FeatureEntropy       = "entropy"
	FeatureHomogenity    = "homogenity"
	FeatureDissimilarity = "dissimilarity"
	FeatureHGLRE         = "HGLRE"
	FeatureZLNU          = "ZLNU"
	FeatureSZHGE         = "SZHGE"
	FeatureZP            = "ZP"
	FeatureMaximum       = "maximum"
)

// FeatureNames возвращает признаки в порядке колонок выходной таблицы.
func FeatureNames() []string {
	return []string{
		FeatureEntropy,
		FeatureHomogenity,
		FeatureDissimilarity,
		FeatureHGLRE,
		FeatureZLNU,
		FeatureSZHGE,
		FeatureZP,
		FeatureMaximum,
	}
}

// Features отображение "название признака -> значение".
type Features map[string]float64

// Validate проверяет, что заполнены ровно восемь известных признаков.
func (f Features) Validate() error {
	names := FeatureNames()
	if len(f) != len(names) {
		return fmt.Errorf("expected %d features, got %d", len(names), len(f))
	}
	for _, name := range names {
		if _, ok := f[name]; !ok {
			return fmt.Errorf("feature %q is missing", name)
		}
	}
	return nil
}

// Lesion очаг пациента с маской и вычисленными признаками.
type Lesion struct {
	Ref      string   // имя каталога очага
	MaskPath string   // путь к данным маски
	Mask     *Volume  // маска очага
	Features Features // пусто до извлечения признаков
}

// NewLesion создаёт очаг без признаков.
func NewLesion(ref, maskPath string, mask *Volume) *Lesion {
	return &Lesion{
		Ref:      ref,
		MaskPath: maskPath,
		Mask:     mask,
	}
}

// Extracted сообщает, были ли уже записаны признаки.
func (l *Lesion) Extracted() bool {
	return l.Features != nil
}

// SetFeatures записывает признаки целиком. Повторная запись запрещена.
func (l *Lesion) SetFeatures(features Features) error {
	if l.Extracted() {
		return fmt.Errorf("lesion %s: features are already set", l.Ref)
	}
	if err := features.Validate(); err != nil {
		return fmt.Errorf("lesion %s: %w", l.Ref, err)
	}

	copied := make(Features, len(features))
	for name, value := range features {
		copied[name] = value
	}
	l.Features = copied
	return nil
}
