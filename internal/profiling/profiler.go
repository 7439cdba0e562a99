package profiling

import (
	"context"
	"log"

	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/config"
)

// Profile bundles the per-table outputs of the profiling package
type Profile struct {
	Exploration         stats.Exploration
	Descriptive         []stats.DescriptiveStats
	DescriptiveFailures []stats.ColumnFailure
	Outliers            *stats.OutlierReport
	BoxPlots            []stats.BoxPlot
}

// DataProfiler orchestrates exploration, descriptive statistics and outlier
// classification of a table
type DataProfiler struct {
	classifier *Classifier
}

// NewDataProfiler creates a new data profiler
func NewDataProfiler(cfg config.OutlierConfig) *DataProfiler {
	return &DataProfiler{
		classifier: NewClassifier(cfg),
	}
}

// Classifier exposes the underlying classifier
func (dp *DataProfiler) Classifier() *Classifier {
	return dp.classifier
}

// ProfileTable runs every profiling step over a table
func (dp *DataProfiler) ProfileTable(ctx context.Context, table *dataset.Table) (*Profile, error) {
	outliers, err := dp.classifier.ClassifyTable(ctx, table)
	if err != nil {
		return nil, err
	}

	descriptive, failures := DescribeTable(table)
	profile := &Profile{
		Exploration:         Explore(table),
		Descriptive:         descriptive,
		DescriptiveFailures: failures,
		Outliers:            outliers,
		BoxPlots:            make([]stats.BoxPlot, 0, len(outliers.Results)),
	}

	for _, res := range outliers.Results {
		col, err := table.Numeric(res.Column)
		if err != nil {
			return nil, err
		}
		profile.BoxPlots = append(profile.BoxPlots, dp.classifier.BoundsPlot(res, col))
	}

	log.Printf("[DataProfiler] profiled %d columns over %d rows (%d classified, %d failed)",
		table.ColumnCount(), table.RowCount(), len(outliers.Results), len(outliers.Failures))

	return profile, nil
}
