package storage

import (
	"context"
	"errors"

	"lesion-features/internal/domain/entity"
	"lesion-features/internal/domain/port"
)

// MemoryPatientRepository in-memory хранилище пациентов одного прогона
type MemoryPatientRepository struct {
	patients []*entity.Patient
}

// NewMemoryPatientRepository создаёт пустое хранилище
func NewMemoryPatientRepository() *MemoryPatientRepository {
	return &MemoryPatientRepository{}
}

// Add добавляет пациента в конец списка
func (r *MemoryPatientRepository) Add(ctx context.Context, patient *entity.Patient) error {
	if patient == nil {
		return errors.New("patient is nil")
	}
	r.patients = append(r.patients, patient)
	return nil
}

// List возвращает копию списка в порядке добавления
func (r *MemoryPatientRepository) List(ctx context.Context) ([]*entity.Patient, error) {
	out := make([]*entity.Patient, len(r.patients))
	copy(out, r.patients)
	return out, nil
}

// Clear удаляет всех пациентов
func (r *MemoryPatientRepository) Clear(ctx context.Context) error {
	r.patients = nil
	return nil
}

// Проверка реализации интерфейса
var _ port.PatientRepository = (*MemoryPatientRepository)(nil)
