package entity

import "time"

// RunReport итог одного прогона конвейера.
type RunReport struct {
	DataDir    string
	OutputPath string
	Patients   int           // обработано пациентов
	Lesions    int           // очагов с извлечёнными признаками
	Rows       int           // строк записано в таблицу
	Duration   time.Duration // длительность прогона
	Err        error         // nil при успехе
}

// Succeeded сообщает, завершился ли прогон без ошибок.
func (r *RunReport) Succeeded() bool {
	return r.Err == nil
}
