package app

import (
	"fmt"

	"lesion-features/internal/domain/entity"
)

// TableService собирает таблицу признаков из пациентов прогона.
type TableService struct{}

// NewTableService создаёт сборщик таблицы.
func NewTableService() *TableService {
	return &TableService{}
}

// Build возвращает по одной строке на очаг в порядке обхода.
func (s *TableService) Build(patients []*entity.Patient) (*entity.FeatureTable, error) {
	table := &entity.FeatureTable{Columns: entity.TableColumns()}

	for _, p := range patients {
		for _, l := range p.Lesions {
			if !l.Extracted() {
				return nil, fmt.Errorf("%w: lesion %s of patient %s has no features", entity.ErrFeatureComputation, l.Ref, p.Ref)
			}

			values := make(entity.Features, len(l.Features))
			for name, v := range l.Features {
				values[name] = v
			}
			table.Rows = append(table.Rows, entity.FeatureRow{
				Index:  entity.RowIndex(p.Ref, l.Ref),
				Values: values,
			})
		}
	}

	return table, nil
}
