// Package csvout пишет таблицу признаков в CSV.
package csvout

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"go.uber.org/zap"

	"lesion-features/internal/domain/entity"
	"lesion-features/internal/domain/port"
)

// Writer сериализует таблицу: безымянная колонка с номером строки, затем колонки таблицы.
type Writer struct {
	fs     billy.Filesystem
	logger *zap.Logger
}

// NewWriter создаёт CSV-писатель поверх fs.
func NewWriter(fs billy.Filesystem, logger *zap.Logger) *Writer {
	return &Writer{fs: fs, logger: logger}
}

// Write перезаписывает path целиком. Файл пишется одним вызовом
// после того, как вся таблица закодирована.
func (w *Writer) Write(ctx context.Context, path string, table *entity.FeatureTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(table)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrOutputWrite, err)
	}

	if err := util.WriteFile(w.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", entity.ErrOutputWrite, path, err)
	}

	w.logger.Debug("table written", zap.String("path", path), zap.Int("rows", len(table.Rows)))
	return nil
}

// Encode кодирует таблицу в CSV (UTF-8, разделитель запятая).
func Encode(table *entity.FeatureTable) ([]byte, error) {
	if table == nil {
		return nil, fmt.Errorf("table is nil")
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	header := make([]string, 0, len(table.Columns)+1)
	header = append(header, "")
	header = append(header, table.Columns...)
	if err := cw.Write(header); err != nil {
		return nil, err
	}

	for i, row := range table.Rows {
		record := make([]string, 0, len(header))
		record = append(record, strconv.Itoa(i))
		for _, col := range table.Columns {
			if col == entity.IndexColumn {
				record = append(record, row.Index)
				continue
			}
			v, ok := row.Values[col]
			if !ok {
				record = append(record, "")
				continue
			}
			record = append(record, FormatFloat(v))
		}
		if err := cw.Write(record); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FormatFloat кратчайшее точное представление: "7.0", "0.25", "1e-05", "1.5e+16".
// NaN пишется пустым полем.
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Проверка реализации интерфейса
var _ port.TableWriter = (*Writer)(nil)
