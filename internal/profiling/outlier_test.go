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

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultClassifier() *Classifier {
	return NewClassifier(config.Default().Outlier)
}

func TestClassifyColumn_SymmetricColumnIsNormal(t *testing.T) {
	res, err := defaultClassifier().ClassifyColumn(dataset.FloatColumn("x", 1, 2, 3, 4, 5))
	require.NoError(t, err)

	assert.Equal(t, "x", res.Column)
	assert.Equal(t, 0.0, res.Skewness)
	assert.Equal(t, stats.LabelNormal, res.Distribution)
	assert.Equal(t, stats.RuleMeanStd, res.Rule)
	assert.Equal(t, -1.74, res.LowerBound)
	assert.Equal(t, 7.74, res.UpperBound)
	assert.Equal(t, 0, res.OutlierCount)
	assert.Equal(t, 0.0, res.OutlierPercentage)
}

func TestClassifyColumn_HeavyTailIsSkewed(t *testing.T) {
	res, err := defaultClassifier().ClassifyColumn(dataset.FloatColumn("y", 1, 1, 1, 1, 100))
	require.NoError(t, err)

	assert.Equal(t, 2.2, res.Skewness)
	assert.Equal(t, stats.LabelSkewed, res.Distribution)
	assert.Equal(t, stats.RuleIQR, res.Rule)
	assert.Equal(t, 1.0, res.LowerBound)
	assert.Equal(t, 1.0, res.UpperBound)
	assert.Equal(t, 1, res.OutlierCount)
	assert.InDelta(t, 20.0, res.OutlierPercentage, 1e-9)
}

func TestClassifyColumn_ConstantColumn(t *testing.T) {
	res, err := defaultClassifier().ClassifyColumn(dataset.FloatColumn("c", 7, 7, 7, 7))
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Skewness)
	assert.Equal(t, stats.LabelNormal, res.Distribution)
	assert.Equal(t, 7.0, res.LowerBound)
	assert.Equal(t, 7.0, res.UpperBound)
	assert.Equal(t, 0, res.OutlierCount)
}

func TestClassifyColumn_EmptyAndSmallColumns(t *testing.T) {
	c := defaultClassifier()

	_, err := c.ClassifyColumn(dataset.FloatColumn("e", math.NaN(), math.NaN()))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrEmptyColumn)

	_, err = c.ClassifyColumn(dataset.FloatColumn("s", 1, 2))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrInsufficientSample)

	_, err = c.ClassifyColumn(dataset.FloatColumn("inf", 1, 2, 3, math.Inf(-1)))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNonFinite)
}

func TestClassifyColumn_RoundsSkewBeforeThreshold(t *testing.T) {
	// unrounded G1 is 0.512, above the threshold until rounded
	res, err := defaultClassifier().ClassifyColumn(dataset.FloatColumn("near", 1, 1, 2, 2, 3))
	require.NoError(t, err)

	assert.Equal(t, 0.5, res.Skewness)
	assert.Equal(t, stats.LabelNormal, res.Distribution)
	assert.Equal(t, -0.71, res.LowerBound)
	assert.Equal(t, 4.31, res.UpperBound)
	assert.Equal(t, 0, res.OutlierCount)
}

func TestClassifyColumn_OrderIndependent(t *testing.T) {
	c := defaultClassifier()
	a, err := c.ClassifyColumn(dataset.FloatColumn("v", 3, 9, 1, 4, 1, 5, 9, 2, 6, 50))
	require.NoError(t, err)
	b, err := c.ClassifyColumn(dataset.FloatColumn("v", 50, 6, 2, 9, 5, 1, 4, 1, 9, 3))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestClassifyColumn_Idempotent(t *testing.T) {
	c := defaultClassifier()
	col := dataset.FloatColumn("v", 2, 4, 4, 4, 5, 5, 7, 9)

	first, err := c.ClassifyColumn(col)
	require.NoError(t, err)
	second, err := c.ClassifyColumn(col)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, first.LowerBound, first.UpperBound)
}

func TestClassifyColumn_Denominator(t *testing.T) {
	col := dataset.FloatColumn("d", 1, 1, 1, 1, 100, math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN())

	total := defaultClassifier()
	res, err := total.ClassifyColumn(col)
	require.NoError(t, err)
	assert.Equal(t, 1, res.OutlierCount)
	assert.InDelta(t, 10.0, res.OutlierPercentage, 1e-9)
	assert.Equal(t, 5, res.SampleSize)
	assert.Equal(t, 10, res.RowCount)

	cfg := config.Default().Outlier
	cfg.Denominator = config.DenominatorNonMissing
	res, err = NewClassifier(cfg).ClassifyColumn(col)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, res.OutlierPercentage, 1e-9)
}

func TestClassifier_LabelBoundary(t *testing.T) {
	c := defaultClassifier()

	assert.Equal(t, stats.LabelNormal, c.Label(0.5))
	assert.Equal(t, stats.LabelNormal, c.Label(-0.5))
	assert.Equal(t, stats.LabelSkewed, c.Label(0.6))
	assert.Equal(t, stats.LabelSkewed, c.Label(-0.6))
	assert.Equal(t, stats.LabelSkewed, c.Label(math.NaN()))
}

func TestRound_HalfEvenOnDecimalExpansion(t *testing.T) {
	assert.Equal(t, 0.5, Round(0.54, 1))
	assert.Equal(t, 0.6, Round(0.56, 1))
	assert.Equal(t, -1.74, Round(-1.7434164902525691, 2))
	assert.Equal(t, 0.0, Round(-0.04, 1))
	assert.False(t, math.Signbit(Round(-0.04, 1)))
}

func TestQuantile_Linear(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	assert.Equal(t, 1.75, Quantile(sorted, 0.25))
	assert.Equal(t, 2.5, Quantile(sorted, 0.5))
	assert.Equal(t, 3.25, Quantile(sorted, 0.75))
	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestClassifyColumns_FailuresDoNotStopBatch(t *testing.T) {
	cols := []*dataset.NumericColumn{
		dataset.FloatColumn("x", 1, 2, 3, 4, 5),
		dataset.FloatColumn("empty", math.NaN(), math.NaN(), math.NaN(), math.NaN(), math.NaN()),
		dataset.FloatColumn("y", 1, 1, 1, 1, 100),
	}

	report, err := defaultClassifier().ClassifyColumns(context.Background(), cols)
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	assert.Equal(t, "x", report.Results[0].Column)
	assert.Equal(t, "y", report.Results[1].Column)

	failure, ok := report.Failed("empty")
	require.True(t, ok)
	assert.Equal(t, errors.CodeEmptyColumn, failure.Code)

	_, ok = report.Lookup("empty")
	assert.False(t, ok)
}

func TestClassifyColumns_InfiniteColumnFails(t *testing.T) {
	cols := []*dataset.NumericColumn{
		dataset.FloatColumn("inf", 1, 2, 3, math.Inf(1)),
		dataset.FloatColumn("x", 1, 2, 3, 4, 5),
	}

	report, err := defaultClassifier().ClassifyColumns(context.Background(), cols)
	require.NoError(t, err)

	require.Len(t, report.Results, 1)
	assert.Equal(t, "x", report.Results[0].Column)

	failure, ok := report.Failed("inf")
	require.True(t, ok)
	assert.Equal(t, errors.CodeNonFinite, failure.Code)
	assert.Contains(t, failure.Message, "1 infinite values")

	_, err = json.Marshal(report)
	assert.NoError(t, err)
}

func TestClassifyColumns_ParallelKeepsOrder(t *testing.T) {
	var cols []*dataset.NumericColumn
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		cols = append(cols, dataset.FloatColumn(name, 1, 2, 3, 4, 40))
	}

	cfg := config.Default().Outlier
	cfg.Parallelism = 3
	parallel, err := NewClassifier(cfg).ClassifyColumns(context.Background(), cols)
	require.NoError(t, err)
	sequential, err := defaultClassifier().ClassifyColumns(context.Background(), cols)
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
}

func TestClassifyColumns_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := defaultClassifier().ClassifyColumns(ctx, []*dataset.NumericColumn{dataset.FloatColumn("x", 1, 2, 3)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClassifyTable_OnlyNumericColumns(t *testing.T) {
	table, err := dataset.NewTable(
		dataset.FloatColumn("x", 1, 2, 3, 4, 5),
		dataset.StringColumn("s", "a", "b", "a", "b", "c"),
	)
	require.NoError(t, err)

	report, err := defaultClassifier().ClassifyTable(context.Background(), table)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Equal(t, "x", report.Results[0].Column)
	assert.Empty(t, report.Failures)
}
