package features

import "strings"

// Row is a single feature vector keyed by template columns, in template order.
type Row struct {
	columns   []string
	values    []float64
	defaulted []string
}

// Columns returns the row's column names in order.
func (r Row) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Values returns the row's values in column order.
func (r Row) Values() []float64 {
	out := make([]float64, len(r.values))
	copy(out, r.values)
	return out
}

// Len returns the number of columns.
func (r Row) Len() int { return len(r.columns) }

// Get returns the value stored under column.
func (r Row) Get(column string) (float64, bool) {
	for i, c := range r.columns {
		if c == column {
			return r.values[i], true
		}
	}
	return 0, false
}

// Defaulted lists the columns that no input or family mapped and were zero-filled.
// A non-empty result usually means the template and this assembler have drifted apart.
func (r Row) Defaulted() []string {
	out := make([]string, len(r.defaulted))
	copy(out, r.defaulted)
	return out
}

// Map returns the row as a column -> value map.
func (r Row) Map() map[string]float64 {
	m := make(map[string]float64, len(r.columns))
	for i, c := range r.columns {
		m[c] = r.values[i]
	}
	return m
}

// Equal reports whether both rows hold the same columns, order and values.
func (r Row) Equal(o Row) bool {
	if len(r.columns) != len(o.columns) {
		return false
	}
	for i := range r.columns {
		if r.columns[i] != o.columns[i] || r.values[i] != o.values[i] {
			return false
		}
	}
	return true
}

// Assemble builds the feature row for in, shaped exactly like t.
// Family columns become 0/1 indicators, known numeric columns take the input
// value, and every other column is zero-filled and reported via Defaulted.
func Assemble(in Input, t Template) Row {
	row := Row{
		columns: t.Columns(),
		values:  make([]float64, t.Len()),
	}
	selected := map[string]string{
		PrefixBar:     in.Bar,
		PrefixBrand:   in.Brand,
		PrefixAlcohol: in.Alcohol,
	}
	for i, c := range row.columns {
		if prefix, ok := familyOf(c); ok {
			if c == prefix+selected[prefix] {
				row.values[i] = 1
			}
			continue
		}
		if f, ok := numericByColumn[c]; ok {
			row.values[i] = f.value(in)
			continue
		}
		row.defaulted = append(row.defaulted, c)
	}
	return row
}

func familyOf(column string) (string, bool) {
	for _, p := range []string{PrefixBar, PrefixBrand, PrefixAlcohol} {
		if strings.HasPrefix(column, p) {
			return p, true
		}
	}
	return "", false
}
