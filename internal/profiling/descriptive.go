package profiling

import (
	"log"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/errors"

	mstats "github.com/montanaflynn/stats"
)

// Describe summarizes one numeric column. Quartiles use the linear estimator
// shared with the outlier bounds.
func Describe(col *dataset.NumericColumn) (stats.DescriptiveStats, error) {
	sorted := col.Sorted()
	if len(sorted) == 0 {
		return stats.DescriptiveStats{}, core.NewEmptyColumnError(col.Name())
	}
	if n := col.NonFiniteCount(); n > 0 {
		return stats.DescriptiveStats{}, core.NewNonFiniteError(col.Name(), n)
	}

	moments, err := NewDistributionAnalyzer().Analyze(sorted)
	if err != nil {
		return stats.DescriptiveStats{}, err
	}

	median, _ := mstats.Median(sorted)
	min := sorted[0]
	max := sorted[len(sorted)-1]

	return stats.DescriptiveStats{
		Column:   col.Name(),
		Count:    len(sorted),
		Missing:  col.MissingCount(),
		Mean:     moments.Mean,
		Median:   median,
		Mode:     Mode(sorted),
		StdDev:   moments.StdDev,
		Range:    max - min,
		Skewness: moments.Skewness,
		Kurtosis: moments.Kurtosis,
		Min:      min,
		Q1:       Quantile(sorted, 0.25),
		Q2:       Quantile(sorted, 0.5),
		Q3:       Quantile(sorted, 0.75),
		Max:      max,
	}, nil
}

// DescribeTable summarizes every numeric column in table order. Columns that
// cannot be described are returned as failures.
func DescribeTable(table *dataset.Table) ([]stats.DescriptiveStats, []stats.ColumnFailure) {
	out := make([]stats.DescriptiveStats, 0)
	var failures []stats.ColumnFailure
	for _, col := range table.NumericColumns() {
		desc, err := Describe(col)
		if err != nil {
			log.Printf("[Describe] skipping column %q: %v", col.Name(), err)
			failures = append(failures, stats.ColumnFailure{
				Column:  col.Name(),
				Code:    errors.GetCode(err),
				Message: err.Error(),
			})
			continue
		}
		out = append(out, desc)
	}
	return out, failures
}

// Mode returns the smallest of the most frequent values in sorted data
func Mode(sorted []float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	best, bestRun := sorted[0], 0
	run := 0
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			run++
		} else {
			run = 1
		}
		if run > bestRun {
			best, bestRun = v, run
		}
	}
	return best
}
