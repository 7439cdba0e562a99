package testkit

import (
	"fmt"
	"math"
	"math/rand"

	"edakit/domain/dataset"
	"edakit/internal/errors"
)

// Column names of the generated customer table
const (
	ColumnAge          = "age"            // normal
	ColumnAnnualSpend  = "annual_spend"   // lognormal, right skewed
	ColumnSatisfaction = "satisfaction"   // normal with planted outliers
	ColumnStoreCredit  = "store_credit"   // constant
	ColumnVisits       = "monthly_visits" // partially missing
	ColumnPlan         = "plan"
	ColumnRegion       = "region" // partially missing
	ColumnChurn        = "churn"  // binary target, depends on plan and visits
)

// Plans in ascending order of churn risk
var Plans = []string{"basic", "plus", "pro"}

var regions = []string{"north", "south", "east", "west"}

// CustomerGeneratorConfig configures the customer table generator
type CustomerGeneratorConfig struct {
	Rows        int     `json:"rows"`
	MissingRate float64 `json:"missing_rate"`
	OutlierRate float64 `json:"outlier_rate"`
	Seed        int64   `json:"seed"`
}

// DefaultCustomerConfig returns the defaults used by tests and the CLI demo
func DefaultCustomerConfig() CustomerGeneratorConfig {
	return CustomerGeneratorConfig{
		Rows:        500,
		MissingRate: 0.1,
		OutlierRate: 0.02,
		Seed:        42,
	}
}

// CustomerDataGenerator builds a synthetic customer table. The same seed
// always yields the same table.
type CustomerDataGenerator struct {
	config CustomerGeneratorConfig
	rng    *rand.Rand
}

// NewCustomerDataGenerator creates a new customer data generator
func NewCustomerDataGenerator(config CustomerGeneratorConfig) *CustomerDataGenerator {
	return &CustomerDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces the table
func (g *CustomerDataGenerator) Generate() (*dataset.Table, error) {
	n := g.config.Rows
	if n < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("row count must be positive, got %d", n))
	}
	if g.config.MissingRate < 0 || g.config.MissingRate >= 1 {
		return nil, errors.InvalidInput("missing rate must be in [0, 1)")
	}

	age := make([]dataset.Float, n)
	spend := make([]dataset.Float, n)
	satisfaction := make([]dataset.Float, n)
	credit := make([]dataset.Float, n)
	visits := make([]dataset.Float, n)
	plan := make([]dataset.Category, n)
	region := make([]dataset.Category, n)
	churn := make([]dataset.Category, n)

	for i := 0; i < n; i++ {
		age[i] = dataset.Some(math.Round(clamp(40+g.rng.NormFloat64()*10, 18, 80)))
		spend[i] = dataset.Some(math.Round(math.Exp(7+g.rng.NormFloat64()*0.8)*100) / 100)
		satisfaction[i] = dataset.Some(g.satisfaction())
		credit[i] = dataset.Some(25)

		v := math.Max(0, math.Round(8+g.rng.NormFloat64()*3))
		if g.rng.Float64() < g.config.MissingRate {
			visits[i] = dataset.Null()
		} else {
			visits[i] = dataset.Some(v)
		}

		p := g.rng.Intn(len(Plans))
		plan[i] = dataset.Level(Plans[p])

		if g.rng.Float64() < g.config.MissingRate {
			region[i] = dataset.NullCategory()
		} else {
			region[i] = dataset.Level(regions[g.rng.Intn(len(regions))])
		}

		if g.rng.Float64() < churnProbability(p, v) {
			churn[i] = dataset.Level("yes")
		} else {
			churn[i] = dataset.Level("no")
		}
	}

	return dataset.NewTable(
		dataset.NewNumericColumn(ColumnAge, age),
		dataset.NewNumericColumn(ColumnAnnualSpend, spend),
		dataset.NewNumericColumn(ColumnSatisfaction, satisfaction),
		dataset.NewNumericColumn(ColumnStoreCredit, credit),
		dataset.NewNumericColumn(ColumnVisits, visits),
		dataset.NewCategoricalColumn(ColumnPlan, plan),
		dataset.NewCategoricalColumn(ColumnRegion, region),
		dataset.NewCategoricalColumn(ColumnChurn, churn),
	)
}

// satisfaction draws around 70 and plants far values at OutlierRate
func (g *CustomerDataGenerator) satisfaction() float64 {
	if g.rng.Float64() < g.config.OutlierRate {
		return math.Round(70 + 8*(8+g.rng.Float64()*2))
	}
	return math.Round((70+g.rng.NormFloat64()*8)*10) / 10
}

// churnProbability rises with plan index and falls with visit frequency
func churnProbability(plan int, visits float64) float64 {
	logit := -2 + 1.5*float64(plan) - 0.15*(visits-8)
	return 1 / (1 + math.Exp(-logit))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
