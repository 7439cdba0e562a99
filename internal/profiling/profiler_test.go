package profiling

import (
	"context"
	"math"
	"testing"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/config"
	"edakit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.NewTable(
		dataset.FloatColumn("age", 22, 35, 35, 41, math.NaN(), 22),
		dataset.FloatColumn("income", 10, 12, 12, 11, 500, 10),
		dataset.StringColumn("city", "oslo", "rome", "rome", "", "oslo", "oslo"),
	)
	require.NoError(t, err)
	return table
}

func TestDescribe(t *testing.T) {
	desc, err := Describe(dataset.FloatColumn("v", 4, 1, 2, 2, 3, math.NaN()))
	require.NoError(t, err)

	assert.Equal(t, 5, desc.Count)
	assert.Equal(t, 1, desc.Missing)
	assert.InDelta(t, 2.4, desc.Mean, 1e-12)
	assert.Equal(t, 2.0, desc.Median)
	assert.Equal(t, 2.0, desc.Mode)
	assert.InDelta(t, math.Sqrt(1.3), desc.StdDev, 1e-12)
	assert.Equal(t, 3.0, desc.Range)
	assert.Equal(t, 1.0, desc.Min)
	assert.Equal(t, 2.0, desc.Q1)
	assert.Equal(t, 2.0, desc.Q2)
	assert.Equal(t, 3.0, desc.Q3)
	assert.Equal(t, 4.0, desc.Max)
}

func TestDescribe_EmptyColumn(t *testing.T) {
	_, err := Describe(dataset.FloatColumn("v", math.NaN()))
	assert.ErrorIs(t, err, core.ErrEmptyColumn)
}

func TestMode_SmallestMostFrequent(t *testing.T) {
	assert.Equal(t, 1.0, Mode([]float64{1, 2, 3}))
	assert.Equal(t, 2.0, Mode([]float64{1, 2, 2, 5, 5}))
	assert.Equal(t, 5.0, Mode([]float64{1, 5, 5, 5}))
	assert.Equal(t, 0.0, Mode(nil))
}

func TestExplore(t *testing.T) {
	exp := Explore(sampleTable(t))

	assert.Equal(t, 6, exp.TotalRows)
	assert.Equal(t, 2, exp.DuplicateRows)
	assert.InDelta(t, 200.0/6, exp.DuplicatePercentage, 1e-9)

	require.Len(t, exp.Columns, 3)
	age := exp.Columns[0]
	assert.Equal(t, "age", age.Column)
	assert.Equal(t, string(dataset.TypeNumeric), age.Type)
	assert.Equal(t, 1, age.MissingCount)
	assert.Equal(t, 3, age.UniqueCount)
	assert.Equal(t, []string{"22", "35", "41"}, age.UniqueItems)

	city := exp.Columns[2]
	assert.Equal(t, 1, city.MissingCount)
	assert.Equal(t, []string{"oslo", "rome"}, city.UniqueItems)
}

func TestMissingComparison(t *testing.T) {
	train := sampleTable(t)
	test, err := dataset.NewTable(
		dataset.FloatColumn("age", math.NaN(), math.NaN(), 30, 31),
	)
	require.NoError(t, err)

	shares, err := MissingComparison(train, test, []string{"age"})
	require.NoError(t, err)
	require.Len(t, shares, 1)
	assert.Equal(t, "age", shares[0].Column)
	assert.InDelta(t, 100.0/6, shares[0].TrainPercent, 1e-9)
	assert.Equal(t, 50.0, shares[0].TestPercent)
}

func TestMissingComparison_UnknownFeatureFails(t *testing.T) {
	train := sampleTable(t)
	test, err := dataset.NewTable(
		dataset.FloatColumn("age", math.NaN(), math.NaN(), 30, 31),
	)
	require.NoError(t, err)

	_, err = MissingComparison(train, test, []string{"age", "city"})
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
	assert.Contains(t, err.Error(), "test table")

	_, err = MissingComparison(train, test, []string{"age", "typo"})
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
	assert.Contains(t, err.Error(), "train table")
}

func TestDescribeTable_ReportsFailures(t *testing.T) {
	table, err := dataset.NewTable(
		dataset.FloatColumn("ok", 1, 2, 3),
		dataset.FloatColumn("gone", math.NaN(), math.NaN(), math.NaN()),
		dataset.FloatColumn("inf", 1, math.Inf(1), 3),
	)
	require.NoError(t, err)

	desc, failures := DescribeTable(table)
	require.Len(t, desc, 1)
	assert.Equal(t, "ok", desc[0].Column)

	require.Len(t, failures, 2)
	assert.Equal(t, stats.ColumnFailure{Column: "gone", Code: errors.CodeEmptyColumn, Message: failures[0].Message}, failures[0])
	assert.Equal(t, "inf", failures[1].Column)
	assert.Equal(t, errors.CodeNonFinite, failures[1].Code)
}

func TestValuePercentages(t *testing.T) {
	shares, err := ValuePercentages(sampleTable(t), "city")
	require.NoError(t, err)

	require.Len(t, shares, 2)
	assert.Equal(t, stats.ValueShare{Value: "oslo", Count: 3, Percentage: 50}, shares[0])
	assert.Equal(t, "rome", shares[1].Value)
	assert.Equal(t, 2, shares[1].Count)

	_, err = ValuePercentages(sampleTable(t), "nope")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)
}

func TestCategoryCounts(t *testing.T) {
	counts := CategoryCounts(dataset.StringColumn("c", "b", "a", "b", ""))
	require.Len(t, counts, 2)
	assert.Equal(t, "b", counts[0].Value)
	assert.Equal(t, 2, counts[0].Count)
	assert.Equal(t, 50.0, counts[0].Percentage)
	assert.Equal(t, "a", counts[1].Value)
}

func TestNumericHistogram(t *testing.T) {
	bins, err := NumericHistogram(dataset.FloatColumn("v", 0, 1, 2, 3, 4, 5, 6, 7, 8, 10), 5)
	require.NoError(t, err)

	require.Len(t, bins, 5)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 0.0, bins[0].Lower)
	assert.Equal(t, 10.0, bins[4].Upper)
	assert.Equal(t, 2, bins[0].Count)
	assert.Equal(t, 2, bins[4].Count)
}

func TestNumericHistogram_SturgesAndConstant(t *testing.T) {
	assert.Equal(t, 5, SturgesBins(10))
	assert.Equal(t, 1, SturgesBins(1))

	bins, err := NumericHistogram(dataset.FloatColumn("v", 1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 0)
	require.NoError(t, err)
	assert.Len(t, bins, 5)

	bins, err = NumericHistogram(dataset.FloatColumn("c", 3, 3, 3), 4)
	require.NoError(t, err)
	require.Len(t, bins, 1)
	assert.Equal(t, 3, bins[0].Count)
}

func TestBoundsPlot(t *testing.T) {
	col := dataset.FloatColumn("y", 1, 1, 1, 1, 100)
	res, err := defaultClassifier().ClassifyColumn(col)
	require.NoError(t, err)

	plot := defaultClassifier().BoundsPlot(res, col)
	assert.Equal(t, 1.0, plot.Min)
	assert.Equal(t, 1.0, plot.Median)
	assert.Equal(t, 100.0, plot.Max)
	assert.Equal(t, []float64{100}, plot.Outliers)
	assert.Contains(t, plot.Title, "skewed")
}

func TestBoundsPlot_UsesUnroundedBounds(t *testing.T) {
	values := make([]float64, 20)
	values = append(values, 0.05, -0.05)
	col := dataset.FloatColumn("narrow", values...)

	c := defaultClassifier()
	res, err := c.ClassifyColumn(col)
	require.NoError(t, err)
	require.Equal(t, stats.LabelNormal, res.Distribution)
	assert.Equal(t, 0.05, res.UpperBound)
	assert.Equal(t, 2, res.OutlierCount)

	plot := c.BoundsPlot(res, col)
	assert.InDelta(t, 3*math.Sqrt(0.005/21), plot.UpperBound, 1e-12)
	assert.InDelta(t, -3*math.Sqrt(0.005/21), plot.LowerBound, 1e-12)
	assert.Equal(t, []float64{-0.05, 0.05}, plot.Outliers)
	assert.Len(t, plot.Outliers, res.OutlierCount)
}

func TestDataProfiler_ProfileTable(t *testing.T) {
	profiler := NewDataProfiler(config.Default().Outlier)

	profile, err := profiler.ProfileTable(context.Background(), sampleTable(t))
	require.NoError(t, err)

	assert.Equal(t, 6, profile.Exploration.TotalRows)
	assert.Len(t, profile.Descriptive, 2)
	assert.Empty(t, profile.DescriptiveFailures)
	require.Len(t, profile.Outliers.Results, 2)
	assert.Len(t, profile.BoxPlots, 2)

	income, ok := profile.Outliers.Lookup("income")
	require.True(t, ok)
	assert.Equal(t, stats.LabelSkewed, income.Distribution)
	assert.Equal(t, 1, income.OutlierCount)
}
