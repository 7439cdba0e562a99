package profiling

import (
	"fmt"

	"edakit/domain/dataset"
	"edakit/domain/stats"
)

// BoundsPlot builds box plot markers for a classified column: the five-number
// summary, the unrounded bounds and the values falling strictly outside them,
// so len(Outliers) always equals result.OutlierCount.
func (c *Classifier) BoundsPlot(result stats.OutlierResult, col *dataset.NumericColumn) stats.BoxPlot {
	sorted := col.Sorted()
	plot := stats.BoxPlot{
		Column:     col.Name(),
		Title:      fmt.Sprintf("%s (%s, skew %.1f)", col.Name(), result.Distribution, result.Skewness),
		LowerBound: result.LowerBound,
		UpperBound: result.UpperBound,
	}
	if len(sorted) == 0 {
		return plot
	}

	if moments, err := c.analyzer.Analyze(sorted); err == nil {
		plot.LowerBound, plot.UpperBound, _ = c.bounds(result.Distribution, sorted, moments)
	}

	plot.Min = sorted[0]
	plot.Q1 = Quantile(sorted, 0.25)
	plot.Median = Quantile(sorted, 0.5)
	plot.Q3 = Quantile(sorted, 0.75)
	plot.Max = sorted[len(sorted)-1]

	for _, v := range sorted {
		if v < plot.LowerBound || v > plot.UpperBound {
			plot.Outliers = append(plot.Outliers, v)
		}
	}
	return plot
}
