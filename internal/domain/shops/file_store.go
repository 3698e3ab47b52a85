package shops

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore хранит реестр одним JSON-документом:
// {"shops": [{"name": ..., "api_key": ...}]}.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

type document struct {
	Shops []Shop `json:"shops"`
}

// Load читает сохранённые магазины. Отсутствие файла — пустой реестр;
// любая другая ошибка (нечитаемый файл, битый JSON) возвращается как
// есть: молча потерять все магазины нельзя.
func (s *FileStore) Load() ([]Shop, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode registry %s: %w", s.path, err)
	}
	return doc.Shops, nil
}

// Save пишет документ атомарно: временный файл в том же каталоге, затем rename.
func (s *FileStore) Save(items []Shop) error {
	data, err := json.MarshalIndent(document{Shops: items}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".shops-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace registry: %w", err)
	}
	return nil
}
