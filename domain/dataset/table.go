package dataset

import (
	"fmt"
	"strings"

	"edakit/domain/core"
)

// Table is the canonical input for all EDA computation: ordered, named, typed
// columns of equal length.
type Table struct {
	columns []Column
	index   map[string]int
	rows    int
}

// NewTable creates a table from columns, validating names and lengths
func NewTable(columns ...Column) (*Table, error) {
	t := &Table{index: make(map[string]int)}
	for _, col := range columns {
		if err := t.Add(col); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add appends a column. The first column fixes the row count.
func (t *Table) Add(col Column) error {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, exists := t.index[col.Name()]; exists {
		return fmt.Errorf("%w: %q", core.ErrDuplicateColumn, col.Name())
	}
	if len(t.columns) == 0 {
		t.rows = col.Len()
	} else if col.Len() != t.rows {
		return core.NewLengthMismatchError(col.Name(), col.Len(), t.rows)
	}
	t.index[col.Name()] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// RowCount returns the number of rows, missing cells included
func (t *Table) RowCount() int {
	return t.rows
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// Columns returns the columns in insertion order
func (t *Table) Columns() []Column {
	out := make([]Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns column names in insertion order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name()
	}
	return names
}

// Has reports whether a column exists
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column looks up a column by name, failing closed
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	return t.columns[i], nil
}

// Numeric looks up a numeric column by name
func (t *Table) Numeric(name string) (*NumericColumn, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	num, ok := col.(*NumericColumn)
	if !ok {
		return nil, core.NewColumnTypeError(name, string(TypeNumeric))
	}
	return num, nil
}

// Categorical looks up a categorical column by name
func (t *Table) Categorical(name string) (*CategoricalColumn, error) {
	col, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	cat, ok := col.(*CategoricalColumn)
	if !ok {
		return nil, core.NewColumnTypeError(name, string(TypeCategorical))
	}
	return cat, nil
}

// NumericColumns returns the numeric columns in insertion order
func (t *Table) NumericColumns() []*NumericColumn {
	out := make([]*NumericColumn, 0, len(t.columns))
	for _, col := range t.columns {
		if num, ok := col.(*NumericColumn); ok {
			out = append(out, num)
		}
	}
	return out
}

// CategoricalColumns returns the categorical columns in insertion order
func (t *Table) CategoricalColumns() []*CategoricalColumn {
	out := make([]*CategoricalColumn, 0, len(t.columns))
	for _, col := range t.columns {
		if cat, ok := col.(*CategoricalColumn); ok {
			out = append(out, cat)
		}
	}
	return out
}

// Select returns a table holding only the named columns, in the given order
func (t *Table) Select(names ...string) (*Table, error) {
	out := &Table{index: make(map[string]int)}
	for _, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if err := out.Add(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RowKey renders a row as a comparable token for duplicate detection
func (t *Table) RowKey(row int) string {
	var b strings.Builder
	for i, col := range t.columns {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(col.Key(row))
	}
	return b.String()
}

// Fingerprint hashes column names, types and cell tokens
func (t *Table) Fingerprint() core.Hash {
	var b strings.Builder
	for _, col := range t.columns {
		b.WriteString(col.Name())
		b.WriteByte('|')
		b.WriteString(string(col.Type()))
		b.WriteByte('\n')
	}
	for row := 0; row < t.rows; row++ {
		b.WriteString(t.RowKey(row))
		b.WriteByte('\n')
	}
	return core.NewHash([]byte(b.String()))
}
