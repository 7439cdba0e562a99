package dataset

import (
	"math"
	"testing"

	"edakit/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatColumn_NaNIsMissing(t *testing.T) {
	col := FloatColumn("x", 1, math.NaN(), 3)

	assert.Equal(t, 3, col.Len())
	assert.True(t, col.IsMissing(1))
	assert.Equal(t, 1, col.MissingCount())
	assert.Equal(t, []float64{1, 3}, col.Present())
}

func TestNumericColumn_MissingDistinctFromZero(t *testing.T) {
	col := NewNumericColumn("x", []Float{Some(0), Null()})

	assert.False(t, col.IsMissing(0))
	assert.True(t, col.IsMissing(1))
	assert.Equal(t, []float64{0}, col.Present())
	assert.NotEqual(t, col.Key(0), col.Key(1))
}

func TestNumericColumn_SortedDoesNotMutate(t *testing.T) {
	col := FloatColumn("x", 3, 1, 2)

	assert.Equal(t, []float64{1, 2, 3}, col.Sorted())
	assert.Equal(t, []float64{3, 1, 2}, col.Present())
}

func TestCategoricalColumn_Levels(t *testing.T) {
	col := StringColumn("c", "b", "a", "", "b", "c")

	assert.Equal(t, []string{"a", "b", "c"}, col.Levels())
	assert.Equal(t, []string{"b", "a", "c"}, col.FirstSeen())
	assert.Equal(t, 1, col.MissingCount())
}

func TestTable_LookupFailsClosed(t *testing.T) {
	table, err := NewTable(FloatColumn("x", 1, 2), StringColumn("c", "a", "b"))
	require.NoError(t, err)

	_, err = table.Column("missing")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)

	_, err = table.Numeric("c")
	assert.ErrorIs(t, err, core.ErrColumnType)

	_, err = table.Categorical("x")
	assert.ErrorIs(t, err, core.ErrColumnType)

	num, err := table.Numeric("x")
	require.NoError(t, err)
	assert.Equal(t, "x", num.Name())
}

func TestTable_RejectsRaggedAndDuplicateColumns(t *testing.T) {
	_, err := NewTable(FloatColumn("x", 1, 2), FloatColumn("y", 1))
	assert.ErrorIs(t, err, core.ErrLengthMismatch)

	_, err = NewTable(FloatColumn("x", 1), FloatColumn("x", 2))
	assert.ErrorIs(t, err, core.ErrDuplicateColumn)
}

func TestTable_SelectPreservesRequestedOrder(t *testing.T) {
	table, err := NewTable(FloatColumn("a", 1), FloatColumn("b", 2), StringColumn("c", "z"))
	require.NoError(t, err)

	sub, err := table.Select("c", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, sub.ColumnNames())
	assert.Len(t, sub.NumericColumns(), 1)
	assert.Len(t, sub.CategoricalColumns(), 1)

	_, err = table.Select("nope")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestTable_FingerprintStable(t *testing.T) {
	build := func() *Table {
		table, err := NewTable(FloatColumn("x", 1, math.NaN()), StringColumn("c", "a", ""))
		require.NoError(t, err)
		return table
	}

	assert.Equal(t, build().Fingerprint(), build().Fingerprint())

	other, err := NewTable(FloatColumn("x", 1, 0), StringColumn("c", "a", ""))
	require.NoError(t, err)
	assert.NotEqual(t, build().Fingerprint(), other.Fingerprint())
}
