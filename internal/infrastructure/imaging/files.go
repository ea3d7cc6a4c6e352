// Package imaging загружает снимки и маски очагов в entity.Volume.
package imaging

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"

	"lesion-features/internal/domain/entity"
)

// sliceImageExtensions расширения файлов, которые читаются как срезы маски.
var sliceImageExtensions = map[string]struct{}{
	".png":  {},
	".tif":  {},
	".tiff": {},
	".bmp":  {},
	".jpg":  {},
	".jpeg": {},
}

func isSliceImage(name string) bool {
	_, ok := sliceImageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// seriesFiles возвращает файлы серии: сам path, если это файл,
// или видимые обычные файлы каталога в порядке листинга.
func seriesFiles(fs billy.Filesystem, path string) ([]string, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrImageLoad, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := fs.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read dir %s: %v", entity.ErrImageLoad, path, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || isHidden(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(path, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no files in %s", entity.ErrImageLoad, path)
	}
	return files, nil
}
