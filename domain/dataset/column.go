package dataset

import (
	"math"
	"sort"
	"strconv"
)

// StatisticalType classifies a column for test selection
type StatisticalType string

const (
	TypeNumeric     StatisticalType = "numeric"
	TypeCategorical StatisticalType = "categorical"
)

// Float is an optional numeric cell. A zero Float is missing.
type Float struct {
	Value float64
	Valid bool
}

// Some wraps a present value
func Some(v float64) Float {
	return Float{Value: v, Valid: true}
}

// Null returns a missing numeric cell
func Null() Float {
	return Float{}
}

// IsMissing treats NaN the same as an explicit missing marker
func (f Float) IsMissing() bool {
	return !f.Valid || math.IsNaN(f.Value)
}

// Category is an optional categorical cell. A zero Category is missing.
type Category struct {
	Value string
	Valid bool
}

// Level wraps a present category
func Level(s string) Category {
	return Category{Value: s, Valid: true}
}

// NullCategory returns a missing categorical cell
func NullCategory() Category {
	return Category{}
}

// Column is the read-only view shared by numeric and categorical columns
type Column interface {
	Name() string
	Len() int
	Type() StatisticalType
	IsMissing(i int) bool
	// Key renders row i as a comparable token; missing rows share one token.
	Key(i int) string
}

const missingKey = "\x00<missing>"

// NumericColumn is a named float64 column with explicit missing markers
type NumericColumn struct {
	name   string
	values []Float
}

// NewNumericColumn creates a numeric column; values are copied
func NewNumericColumn(name string, values []Float) *NumericColumn {
	cp := make([]Float, len(values))
	copy(cp, values)
	return &NumericColumn{name: name, values: cp}
}

// FloatColumn builds a numeric column from raw floats, NaN marks missing
func FloatColumn(name string, values ...float64) *NumericColumn {
	cells := make([]Float, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		cells[i] = Some(v)
	}
	return &NumericColumn{name: name, values: cells}
}

func (c *NumericColumn) Name() string          { return c.name }
func (c *NumericColumn) Len() int              { return len(c.values) }
func (c *NumericColumn) Type() StatisticalType { return TypeNumeric }
func (c *NumericColumn) At(i int) Float        { return c.values[i] }
func (c *NumericColumn) IsMissing(i int) bool  { return c.values[i].IsMissing() }

func (c *NumericColumn) Key(i int) string {
	if c.values[i].IsMissing() {
		return missingKey
	}
	return strconv.FormatFloat(c.values[i].Value, 'g', -1, 64)
}

// Present returns the non-missing values in row order
func (c *NumericColumn) Present() []float64 {
	out := make([]float64, 0, len(c.values))
	for _, v := range c.values {
		if !v.IsMissing() {
			out = append(out, v.Value)
		}
	}
	return out
}

// Sorted returns the non-missing values in ascending order
func (c *NumericColumn) Sorted() []float64 {
	out := c.Present()
	sort.Float64s(out)
	return out
}

// NonFiniteCount counts present values that are ±Inf
func (c *NumericColumn) NonFiniteCount() int {
	n := 0
	for _, v := range c.values {
		if !v.IsMissing() && math.IsInf(v.Value, 0) {
			n++
		}
	}
	return n
}

// MissingCount counts missing rows
func (c *NumericColumn) MissingCount() int {
	n := 0
	for _, v := range c.values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

// CategoricalColumn is a named string column with explicit missing markers
type CategoricalColumn struct {
	name   string
	values []Category
}

// NewCategoricalColumn creates a categorical column; values are copied
func NewCategoricalColumn(name string, values []Category) *CategoricalColumn {
	cp := make([]Category, len(values))
	copy(cp, values)
	return &CategoricalColumn{name: name, values: cp}
}

// StringColumn builds a categorical column; empty strings mark missing
func StringColumn(name string, values ...string) *CategoricalColumn {
	cells := make([]Category, len(values))
	for i, v := range values {
		if v == "" {
			continue
		}
		cells[i] = Level(v)
	}
	return &CategoricalColumn{name: name, values: cells}
}

func (c *CategoricalColumn) Name() string          { return c.name }
func (c *CategoricalColumn) Len() int              { return len(c.values) }
func (c *CategoricalColumn) Type() StatisticalType { return TypeCategorical }
func (c *CategoricalColumn) At(i int) Category     { return c.values[i] }
func (c *CategoricalColumn) IsMissing(i int) bool  { return !c.values[i].Valid }

func (c *CategoricalColumn) Key(i int) string {
	if !c.values[i].Valid {
		return missingKey
	}
	return c.values[i].Value
}

// Present returns the non-missing values in row order
func (c *CategoricalColumn) Present() []string {
	out := make([]string, 0, len(c.values))
	for _, v := range c.values {
		if v.Valid {
			out = append(out, v.Value)
		}
	}
	return out
}

// Levels returns the distinct non-missing categories sorted lexicographically
func (c *CategoricalColumn) Levels() []string {
	seen := make(map[string]struct{})
	levels := make([]string, 0)
	for _, v := range c.values {
		if !v.Valid {
			continue
		}
		if _, ok := seen[v.Value]; ok {
			continue
		}
		seen[v.Value] = struct{}{}
		levels = append(levels, v.Value)
	}
	sort.Strings(levels)
	return levels
}

// FirstSeen returns the distinct non-missing categories in order of first appearance
func (c *CategoricalColumn) FirstSeen() []string {
	seen := make(map[string]struct{})
	levels := make([]string, 0)
	for _, v := range c.values {
		if !v.Valid {
			continue
		}
		if _, ok := seen[v.Value]; !ok {
			seen[v.Value] = struct{}{}
			levels = append(levels, v.Value)
		}
	}
	return levels
}

// MissingCount counts missing rows
func (c *CategoricalColumn) MissingCount() int {
	n := 0
	for _, v := range c.values {
		if !v.Valid {
			n++
		}
	}
	return n
}
