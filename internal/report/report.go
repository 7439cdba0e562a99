package report

import (
	"context"
	"log"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/analysis"
	"edakit/internal/config"
	"edakit/internal/errors"
	"edakit/internal/profiling"
)

// DatasetInfo identifies the table a report was built from
type DatasetInfo struct {
	Rows        int       `json:"rows"`
	Columns     []string  `json:"columns"`
	Fingerprint core.Hash `json:"fingerprint"`
}

// Report is the envelope every renderer consumes
type Report struct {
	ID                  core.ReportID                `json:"id"`
	Title               string                       `json:"title"`
	GeneratedAt         core.Timestamp               `json:"generated_at"`
	Dataset             DatasetInfo                  `json:"dataset"`
	Exploration         *stats.Exploration           `json:"exploration,omitempty"`
	Descriptive         []stats.DescriptiveStats     `json:"descriptive,omitempty"`
	DescriptiveFailures []stats.ColumnFailure        `json:"descriptive_failures,omitempty"`
	Outliers            *stats.OutlierReport         `json:"outliers,omitempty"`
	Correlation         *analysis.CorrelationResult  `json:"correlation,omitempty"`
	BinaryTarget        *analysis.BinaryTargetResult `json:"binary_target,omitempty"`
	BoxPlots            []stats.BoxPlot              `json:"box_plots,omitempty"`
}

// BuildOptions selects optional report sections
type BuildOptions struct {
	Title        string // overrides the configured title
	Target       string // binary target column; empty skips the target section
	SkipAnalysis bool   // profile only: no correlation or target sections
}

// Builder assembles reports from a table
type Builder struct {
	cfg      *config.Config
	profiler *profiling.DataProfiler
	analyzer *analysis.Analyzer
}

// NewBuilder creates a report builder
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		cfg:      cfg,
		profiler: profiling.NewDataProfiler(cfg.Outlier),
		analyzer: analysis.NewAnalyzer(cfg),
	}
}

// Build profiles and analyzes a table into a report
func (b *Builder) Build(ctx context.Context, table *dataset.Table, opts BuildOptions) (*Report, error) {
	if table == nil || table.ColumnCount() == 0 {
		return nil, errors.InvalidInput("report needs a table with at least one column")
	}

	title := opts.Title
	if title == "" {
		title = b.cfg.Report.Title
	}

	profile, err := b.profiler.ProfileTable(ctx, table)
	if err != nil {
		return nil, errors.Wrap(err, "profiling failed")
	}

	r := &Report{
		ID:          core.NewReportID(),
		Title:       title,
		GeneratedAt: core.Now(),
		Dataset: DatasetInfo{
			Rows:        table.RowCount(),
			Columns:     table.ColumnNames(),
			Fingerprint: table.Fingerprint(),
		},
		Exploration:         &profile.Exploration,
		Descriptive:         profile.Descriptive,
		DescriptiveFailures: profile.DescriptiveFailures,
		Outliers:            profile.Outliers,
		BoxPlots:            profile.BoxPlots,
	}

	if opts.SkipAnalysis {
		return r, nil
	}

	r.Correlation, err = b.analyzer.CorrelationAnalysis(table)
	if err != nil {
		return nil, errors.Wrap(err, "correlation analysis failed")
	}

	if opts.Target != "" {
		r.BinaryTarget, err = b.analyzer.BinaryTargetAnalysis(table, opts.Target, analysis.TestOptions{})
		if err != nil {
			return nil, errors.Wrapf(err, "binary target analysis on %q failed", opts.Target)
		}
	}

	log.Printf("[ReportBuilder] built report %s for dataset %s", r.ID, r.Dataset.Fingerprint.Short())
	return r, nil
}
