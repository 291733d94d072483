package dataset

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrUnsupportedExtension is returned for files that are neither .xlsx
	// nor .json.
	ErrUnsupportedExtension = errors.New("unsupported file extension (expected .xlsx or .json)")

	// ErrNoCategories means the source parsed but produced no usable sheet.
	ErrNoCategories = errors.New("no categories with data rows found")
)

//go:embed data/default.json
var defaultDataset []byte

// Default returns the bundled dataset.
func Default() (*Table, error) {
	return decodeJSON(defaultDataset)
}

// Load reads a dataset file, dispatching on its extension.
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ParseWorkbook(f)
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedExtension)
	}
}

func decodeJSON(data []byte) (*Table, error) {
	t := NewTable()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parsing dataset: %w", err)
	}
	if t.Len() == 0 {
		return nil, ErrNoCategories
	}
	return t, nil
}
