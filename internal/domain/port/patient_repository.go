package port

import (
	"context"

	"lesion-features/internal/domain/entity"
)

// PatientRepository интерфейс хранилища пациентов текущего прогона
type PatientRepository interface {
	// Add добавляет пациента в конец списка
	Add(ctx context.Context, patient *entity.Patient) error

	// List возвращает пациентов в порядке добавления
	List(ctx context.Context) ([]*entity.Patient, error)

	// Clear очищает хранилище перед новым прогоном
	Clear(ctx context.Context) error
}
