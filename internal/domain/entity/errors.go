package entity

import "errors"

// Категории ошибок конвейера. Любая из них прерывает весь прогон.
var (
	// ErrDataset каталог набора данных отсутствует или не читается.
	ErrDataset = errors.New("dataset error")
	// ErrImageLoad снимок или маска не загружаются.
	ErrImageLoad = errors.New("image load error")
	// ErrFeatureComputation признаки не удалось вычислить.
	ErrFeatureComputation = errors.New("feature computation error")
	// ErrOutputWrite таблицу не удалось записать.
	ErrOutputWrite = errors.New("output write error")
	// ErrInvalidParams файл параметров извлечения некорректен.
	ErrInvalidParams = errors.New("invalid extraction params")
)
