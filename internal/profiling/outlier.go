package profiling

import (
	"context"
	"log"
	"math"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/config"
	"edakit/internal/errors"

	"golang.org/x/sync/errgroup"
)

// Classifier labels numeric columns "normal" or "skewed" and derives outlier
// bounds with the matching rule. It holds no state between calls.
type Classifier struct {
	cfg      config.OutlierConfig
	analyzer *DistributionAnalyzer
}

// NewClassifier creates a classifier from outlier settings
func NewClassifier(cfg config.OutlierConfig) *Classifier {
	if cfg.Parallelism < 1 {
		cfg.Parallelism = 1
	}
	return &Classifier{cfg: cfg, analyzer: NewDistributionAnalyzer()}
}

// Label applies the threshold to an already rounded skewness. NaN is skewed.
func (c *Classifier) Label(roundedSkew float64) stats.DistributionLabel {
	if math.Abs(roundedSkew) <= c.cfg.SkewThreshold {
		return stats.LabelNormal
	}
	return stats.LabelSkewed
}

// ClassifyColumn computes the classification result for one column
func (c *Classifier) ClassifyColumn(col *dataset.NumericColumn) (stats.OutlierResult, error) {
	values := col.Sorted()
	if len(values) == 0 {
		return stats.OutlierResult{}, core.NewEmptyColumnError(col.Name())
	}
	if n := col.NonFiniteCount(); n > 0 {
		return stats.OutlierResult{}, core.NewNonFiniteError(col.Name(), n)
	}
	if len(values) < c.cfg.MinSampleSize {
		return stats.OutlierResult{}, core.NewInsufficientSampleError(col.Name(), len(values), c.cfg.MinSampleSize)
	}

	moments, err := c.analyzer.Analyze(values)
	if err != nil {
		return stats.OutlierResult{}, errors.Wrapf(err, "moments for %q", col.Name())
	}

	skew := Round(moments.Skewness, 1)
	label := c.Label(skew)
	lower, upper, rule := c.bounds(label, values, moments)

	count := 0
	for _, v := range values {
		if v > upper || v < lower {
			count++
		}
	}

	denominator := col.Len()
	if c.cfg.Denominator == config.DenominatorNonMissing {
		denominator = len(values)
	}

	return stats.OutlierResult{
		Column:            col.Name(),
		Skewness:          skew,
		Distribution:      label,
		Rule:              rule,
		LowerBound:        Round(lower, 2),
		UpperBound:        Round(upper, 2),
		OutlierCount:      count,
		OutlierPercentage: 100 * float64(count) / float64(denominator),
		SampleSize:        len(values),
		RowCount:          col.Len(),
	}, nil
}

// bounds returns unrounded bounds; outliers are counted against these
func (c *Classifier) bounds(label stats.DistributionLabel, sorted []float64, m Moments) (float64, float64, stats.BoundRule) {
	k := c.cfg.BoundMultiplier
	if label == stats.LabelSkewed {
		q1 := Quantile(sorted, 0.25)
		q3 := Quantile(sorted, 0.75)
		iqr := q3 - q1
		return q1 - k*iqr, q3 + k*iqr, stats.RuleIQR
	}
	return m.Mean - k*m.StdDev, m.Mean + k*m.StdDev, stats.RuleMeanStd
}

type classification struct {
	result stats.OutlierResult
	err    error
}

// ClassifyColumns classifies every column, keeping input order. A failing
// column is reported in Failures and never stops the batch; only context
// cancellation aborts.
func (c *Classifier) ClassifyColumns(ctx context.Context, cols []*dataset.NumericColumn) (*stats.OutlierReport, error) {
	outcomes := make([]classification, len(cols))

	if c.cfg.Parallelism <= 1 || len(cols) <= 1 {
		for i, col := range cols {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			res, err := c.ClassifyColumn(col)
			outcomes[i] = classification{result: res, err: err}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(c.cfg.Parallelism)
		for i, col := range cols {
			i, col := i, col
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				res, err := c.ClassifyColumn(col)
				outcomes[i] = classification{result: res, err: err}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	report := &stats.OutlierReport{
		Results: make([]stats.OutlierResult, 0, len(cols)),
	}
	for i, out := range outcomes {
		if out.err != nil {
			if core.IsSampleError(out.err) {
				log.Printf("[Classifier] skipping column %q: %v", cols[i].Name(), out.err)
			} else {
				log.Printf("[Classifier] ERROR: column %q failed: %v", cols[i].Name(), out.err)
			}
			report.Failures = append(report.Failures, stats.ColumnFailure{
				Column:  cols[i].Name(),
				Code:    errors.GetCode(out.err),
				Message: out.err.Error(),
			})
			continue
		}
		report.Results = append(report.Results, out.result)
	}

	return report, nil
}

// ClassifyTable classifies all numeric columns of a table
func (c *Classifier) ClassifyTable(ctx context.Context, table *dataset.Table) (*stats.OutlierReport, error) {
	return c.ClassifyColumns(ctx, table.NumericColumns())
}
