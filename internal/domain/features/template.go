// Package features reconstructs model input rows from a training-time feature template.
package features

import (
	"fmt"
	"strings"
)

// Family prefixes for the one-hot encoded categorical columns.
const (
	PrefixBar     = "Bar_"
	PrefixBrand   = "Brand_"
	PrefixAlcohol = "Alcohol_"
)

// Template is the ordered column schema a model was trained against.
// It is immutable once built.
type Template struct {
	columns []string
	index   map[string]int
}

// NewTemplate validates columns and returns a Template holding a private copy.
// Columns must be non-empty, non-blank and unique.
func NewTemplate(columns []string) (Template, error) {
	if len(columns) == 0 {
		return Template{}, fmt.Errorf("%w: no columns", ErrInvalidTemplate)
	}
	cols := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		if strings.TrimSpace(c) == "" {
			return Template{}, fmt.Errorf("%w: blank column at position %d", ErrInvalidTemplate, i)
		}
		if prev, dup := index[c]; dup {
			return Template{}, fmt.Errorf("%w: duplicate column %q at positions %d and %d", ErrInvalidTemplate, c, prev, i)
		}
		index[c] = i
		cols[i] = c
	}
	return Template{columns: cols, index: index}, nil
}

// Columns returns a copy of the template columns in order.
func (t Template) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of columns.
func (t Template) Len() int { return len(t.columns) }

// Has reports whether column is part of the template.
func (t Template) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Options returns the valid choices of every categorical family.
func (t Template) Options() Options {
	return Options{
		Bars:     ExtractOptions(t, PrefixBar),
		Brands:   ExtractOptions(t, PrefixBrand),
		Alcohols: ExtractOptions(t, PrefixAlcohol),
	}
}

// MissingNumeric lists the numeric fields for which the template has no column.
// Such inputs are accepted but never reach the model.
func (t Template) MissingNumeric() []string {
	var missing []string
	for _, f := range numericFields {
		if _, ok := t.numericColumn(f); !ok {
			missing = append(missing, f.name)
		}
	}
	return missing
}

func (t Template) numericColumn(f numericField) (string, bool) {
	for _, c := range f.columns {
		if t.Has(c) {
			return c, true
		}
	}
	return "", false
}

// Options holds the selectable values of each categorical family.
type Options struct {
	Bars     []string `json:"bars"`
	Brands   []string `json:"brands"`
	Alcohols []string `json:"alcohols"`
}

// ExtractOptions strips prefix from every template column that starts with it.
// Order follows the template; the result is empty, never nil, when nothing matches.
func ExtractOptions(t Template, prefix string) []string {
	out := []string{}
	seen := make(map[string]struct{})
	for _, c := range t.columns {
		if !strings.HasPrefix(c, prefix) {
			continue
		}
		v := strings.TrimPrefix(c, prefix)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
