package artifacts

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/parcast/internal/domain/features"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

// ReadTemplate loads a feature template from path. The format follows the extension:
// .csv (header row), .yaml/.yml/.json (list or {columns: [...]}), .xlsx (first row of the first sheet).
func ReadTemplate(path string) (features.Template, error) {
	var (
		cols []string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		cols, err = readCSVHeader(path)
	case ".yaml", ".yml", ".json":
		cols, err = readYAMLColumns(path)
	case ".xlsx":
		cols, err = readXLSXHeader(path)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return features.Template{}, err
	}
	return features.NewTemplate(cols)
}

func readCSVHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty csv", features.ErrInvalidTemplate)
	}
	if err != nil {
		return nil, err
	}
	// Strip a UTF-8 BOM left by spreadsheet exports.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	return header, nil
}

func readYAMLColumns(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var list []string
	if err := yaml.Unmarshal(raw, &list); err == nil {
		return list, nil
	}
	var doc struct {
		Columns []string `yaml:"columns"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc.Columns, nil
}

func readXLSXHeader(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", features.ErrInvalidTemplate)
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, fmt.Errorf("%w: sheet %q is empty", features.ErrInvalidTemplate, sheets[0])
	}
	return rows.Columns()
}
