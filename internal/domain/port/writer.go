package port

import (
	"context"

	"lesion-features/internal/domain/entity"
)

// TableWriter интерфейс записи таблицы признаков
type TableWriter interface {
	// Write сериализует таблицу в path, перезаписывая существующий файл
	Write(ctx context.Context, path string, table *entity.FeatureTable) error
}

// RunNotifier интерфейс уведомления о завершении прогона
type RunNotifier interface {
	// NotifyRunFinished отправляет итог прогона
	NotifyRunFinished(ctx context.Context, report *entity.RunReport) error
}
