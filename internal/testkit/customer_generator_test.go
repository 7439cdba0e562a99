package testkit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edakit/domain/stats"
	"edakit/internal/analysis"
	"edakit/internal/config"
	"edakit/internal/profiling"
)

func generate(t *testing.T, cfg CustomerGeneratorConfig) *CustomerDataGenerator {
	t.Helper()
	return NewCustomerDataGenerator(cfg)
}

func TestCustomerDataGenerator_Shape(t *testing.T) {
	table, err := generate(t, DefaultCustomerConfig()).Generate()
	require.NoError(t, err)

	assert.Equal(t, 500, table.RowCount())
	assert.Equal(t, []string{
		ColumnAge, ColumnAnnualSpend, ColumnSatisfaction, ColumnStoreCredit,
		ColumnVisits, ColumnPlan, ColumnRegion, ColumnChurn,
	}, table.ColumnNames())
	assert.Len(t, table.NumericColumns(), 5)
	assert.Len(t, table.CategoricalColumns(), 3)

	churn, err := table.Categorical(ColumnChurn)
	require.NoError(t, err)
	assert.Equal(t, []string{"no", "yes"}, churn.Levels())
}

func TestCustomerDataGenerator_Deterministic(t *testing.T) {
	a, err := generate(t, DefaultCustomerConfig()).Generate()
	require.NoError(t, err)
	b, err := generate(t, DefaultCustomerConfig()).Generate()
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	cfg := DefaultCustomerConfig()
	cfg.Seed = 7
	c, err := generate(t, cfg).Generate()
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestCustomerDataGenerator_MissingRate(t *testing.T) {
	table, err := generate(t, DefaultCustomerConfig()).Generate()
	require.NoError(t, err)

	visits, err := table.Numeric(ColumnVisits)
	require.NoError(t, err)
	assert.InDelta(t, 0.1, float64(visits.MissingCount())/500, 0.05)

	age, err := table.Numeric(ColumnAge)
	require.NoError(t, err)
	assert.Zero(t, age.MissingCount())

	cfg := DefaultCustomerConfig()
	cfg.MissingRate = 0
	table, err = generate(t, cfg).Generate()
	require.NoError(t, err)
	visits, err = table.Numeric(ColumnVisits)
	require.NoError(t, err)
	assert.Zero(t, visits.MissingCount())
}

func TestCustomerDataGenerator_InvalidConfig(t *testing.T) {
	_, err := generate(t, CustomerGeneratorConfig{Rows: 0}).Generate()
	assert.Error(t, err)

	_, err = generate(t, CustomerGeneratorConfig{Rows: 10, MissingRate: 1}).Generate()
	assert.Error(t, err)
}

func TestCustomerData_Shapes(t *testing.T) {
	table, err := generate(t, DefaultCustomerConfig()).Generate()
	require.NoError(t, err)

	report, err := profiling.NewClassifier(config.Default().Outlier).ClassifyTable(context.Background(), table)
	require.NoError(t, err)
	require.Empty(t, report.Failures)

	age, ok := report.Lookup(ColumnAge)
	require.True(t, ok)
	assert.Equal(t, stats.LabelNormal, age.Distribution)

	spend, ok := report.Lookup(ColumnAnnualSpend)
	require.True(t, ok)
	assert.Equal(t, stats.LabelSkewed, spend.Distribution)
	assert.Equal(t, stats.RuleIQR, spend.Rule)

	credit, ok := report.Lookup(ColumnStoreCredit)
	require.True(t, ok)
	assert.Equal(t, 0.0, credit.Skewness)
	assert.Zero(t, credit.OutlierCount)

	satisfaction, ok := report.Lookup(ColumnSatisfaction)
	require.True(t, ok)
	assert.Greater(t, satisfaction.OutlierCount, 0)
}

func TestCustomerData_PlantedChurnRelationship(t *testing.T) {
	table, err := generate(t, DefaultCustomerConfig()).Generate()
	require.NoError(t, err)

	res, err := analysis.NewAnalyzer(config.Default()).ChiSquare(table, ColumnChurn, ColumnPlan, analysis.TestOptions{})
	require.NoError(t, err)
	assert.True(t, res.Result.Significant)
	require.NotNil(t, res.ChiSquare)
	assert.Greater(t, res.ChiSquare.CramersV, 0.25)
}
