package analysis

import (
	"log"
	"math"

	"edakit/adapters/stats/inference"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/config"
	"edakit/internal/profiling"
)

// Analyzer runs the table-level statistical analyses
type Analyzer struct {
	skewCutoff float64
	alpha      float64
	moments    *profiling.DistributionAnalyzer
}

// NewAnalyzer creates an analyzer from configuration
func NewAnalyzer(cfg *config.Config) *Analyzer {
	return &Analyzer{
		skewCutoff: cfg.Correlation.SkewCutoff,
		alpha:      cfg.Significance.Alpha,
		moments:    profiling.NewDistributionAnalyzer(),
	}
}

// CorrelationResult groups the correlation matrices of a table
type CorrelationResult struct {
	NormalColumns      []string                 `json:"normal_columns"`
	SkewedColumns      []string                 `json:"skewed_columns"`
	CategoricalColumns []string                 `json:"categorical_columns"`
	Pearson            *stats.CorrelationMatrix `json:"pearson,omitempty"`
	Spearman           *stats.CorrelationMatrix `json:"spearman,omitempty"`
	Kendall            *stats.CorrelationMatrix `json:"kendall,omitempty"`
}

// Matrices returns the non-nil matrices in Pearson, Spearman, Kendall order
func (r *CorrelationResult) Matrices() []*stats.CorrelationMatrix {
	out := make([]*stats.CorrelationMatrix, 0, 3)
	for _, m := range []*stats.CorrelationMatrix{r.Pearson, r.Spearman, r.Kendall} {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}

type pairTest func(x, y []float64) (stats.TestResult, error)

// CorrelationAnalysis splits numeric columns by |skew| < cutoff. A Pearson
// matrix over every numeric column is built when any column is normal and a
// Spearman matrix when any is skewed; p-values are only computed between
// columns of the matching group. Categorical columns are ordinal encoded and
// correlated with Kendall's tau-b.
func (a *Analyzer) CorrelationAnalysis(table *dataset.Table) (*CorrelationResult, error) {
	result := &CorrelationResult{
		NormalColumns:      make([]string, 0),
		SkewedColumns:      make([]string, 0),
		CategoricalColumns: make([]string, 0),
	}

	numeric := make([]*dataset.NumericColumn, 0)
	for _, col := range table.NumericColumns() {
		present := col.Present()
		if len(present) == 0 {
			log.Printf("[Analyzer] skipping empty column %q in correlation analysis", col.Name())
			continue
		}
		if n := col.NonFiniteCount(); n > 0 {
			log.Printf("[Analyzer] skipping column %q in correlation analysis: %d infinite values", col.Name(), n)
			continue
		}
		numeric = append(numeric, col)
		m, err := a.moments.Analyze(present)
		if err != nil {
			return nil, err
		}
		if math.Abs(m.Skewness) < a.skewCutoff {
			result.NormalColumns = append(result.NormalColumns, col.Name())
		} else {
			result.SkewedColumns = append(result.SkewedColumns, col.Name())
		}
	}

	names := make([]string, len(numeric))
	series := make([][]float64, len(numeric))
	for i, col := range numeric {
		names[i] = col.Name()
		series[i] = values(col)
	}

	if len(result.NormalColumns) > 0 {
		result.Pearson = a.matrix(stats.TestPearson, inference.Pearson, names, series, result.NormalColumns)
	}
	if len(result.SkewedColumns) > 0 {
		result.Spearman = a.matrix(stats.TestSpearman, inference.Spearman, names, series, result.SkewedColumns)
	}

	categorical := table.CategoricalColumns()
	if len(categorical) > 0 {
		catNames := make([]string, len(categorical))
		codes := make([][]float64, len(categorical))
		for i, col := range categorical {
			catNames[i] = col.Name()
			codes[i], _ = inference.OrdinalEncode(col)
		}
		result.CategoricalColumns = catNames
		result.Kendall = a.matrix(stats.TestKendall, inference.Kendall, catNames, codes, catNames)
	}

	return result, nil
}

// matrix computes coefficients for every pair and p-values for pairs inside
// the tested group. Untested cells keep p = 1; tested diagonal cells are 0.
func (a *Analyzer) matrix(method stats.TestName, test pairTest, names []string, series [][]float64, tested []string) *stats.CorrelationMatrix {
	n := len(names)
	inGroup := make(map[string]bool, len(tested))
	for _, name := range tested {
		inGroup[name] = true
	}

	m := &stats.CorrelationMatrix{
		Method:       method,
		Columns:      names,
		Tested:       tested,
		Coefficients: make([][]float64, n),
		PValues:      make([][]float64, n),
		Alpha:        a.alpha,
	}
	for i := range names {
		m.Coefficients[i] = make([]float64, n)
		m.PValues[i] = make([]float64, n)
		for j := range names {
			m.PValues[i][j] = 1.0
		}
	}

	for i := 0; i < n; i++ {
		m.Coefficients[i][i] = 1.0
		if inGroup[names[i]] {
			m.PValues[i][i] = 0
		}
		for j := i + 1; j < n; j++ {
			x, y := complete(series[i], series[j])
			res, err := test(x, y)
			if err != nil {
				continue
			}
			m.Coefficients[i][j] = res.Statistic
			m.Coefficients[j][i] = res.Statistic
			if inGroup[names[i]] && inGroup[names[j]] {
				m.PValues[i][j] = res.PValue
				m.PValues[j][i] = res.PValue
			}
		}
	}
	return m
}

// values expands a column to a slice with NaN marking missing rows
func values(col *dataset.NumericColumn) []float64 {
	out := make([]float64, col.Len())
	for i := range out {
		cell := col.At(i)
		if cell.IsMissing() {
			out[i] = math.NaN()
			continue
		}
		out[i] = cell.Value
	}
	return out
}

// complete keeps the rows where both series are present
func complete(x, y []float64) ([]float64, []float64) {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}
