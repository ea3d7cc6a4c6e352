package entity

// IndexColumn составной индекс строки: "<пациент> <очаг>".
const IndexColumn = "Index"

// RowIndex собирает индекс строки через один пробел.
func RowIndex(patientRef, lesionRef string) string {
	return patientRef + " " + lesionRef
}

// FeatureRow строка выходной таблицы, одна на очаг.
type FeatureRow struct {
	Index  string
	Values Features
}

// FeatureTable таблица признаков по всем очагам.
type FeatureTable struct {
	Columns []string // первой всегда идёт IndexColumn
	Rows    []FeatureRow
}

// TableColumns возвращает колонки таблицы: индекс, затем признаки.
func TableColumns() []string {
	return append([]string{IndexColumn}, FeatureNames()...)
}
