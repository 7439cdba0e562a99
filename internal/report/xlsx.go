package report

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"edakit/domain/stats"
	"edakit/internal/analysis"
	"edakit/internal/errors"
)

// Sheet names of the workbook
const (
	SheetSummary     = "Summary"
	SheetExploration = "Exploration"
	SheetDescriptive = "Descriptive"
	SheetOutliers    = "Outliers"
	SheetCorrelation = "Correlation"
	SheetTarget      = "Target"
	SheetBoxPlots    = "BoxPlots"
)

// XLSXRenderer writes the report as an Excel workbook, one sheet per section
type XLSXRenderer struct{}

// NewXLSXRenderer creates an Excel renderer
func NewXLSXRenderer() *XLSXRenderer {
	return &XLSXRenderer{}
}

func (x *XLSXRenderer) Format() string { return "xlsx" }

func (x *XLSXRenderer) Render(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return errors.RenderError(x.Format(), err)
	}

	summary := [][]interface{}{
		{"Title", r.Title},
		{"Report ID", r.ID.String()},
		{"Generated At", r.GeneratedAt.Time().Format(time.RFC3339)},
		{"Rows", r.Dataset.Rows},
		{"Columns", len(r.Dataset.Columns)},
		{"Fingerprint", r.Dataset.Fingerprint.String()},
	}
	if err := writeRows(f, SheetSummary, 1, summary); err != nil {
		return errors.RenderError(x.Format(), err)
	}

	sections := []func(*excelize.File, *Report) error{
		explorationSheet, descriptiveSheet, outliersSheet, correlationSheet, targetSheet, boxPlotSheet,
	}
	for _, section := range sections {
		if err := section(f, r); err != nil {
			return errors.RenderError(x.Format(), err)
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return errors.RenderError(x.Format(), err)
	}
	return nil
}

func explorationSheet(f *excelize.File, r *Report) error {
	if r.Exploration == nil {
		return nil
	}
	e := r.Exploration
	rows := [][]interface{}{
		{"Total Rows", e.TotalRows},
		{"Duplicate Rows", e.DuplicateRows},
		{"Duplicate %", e.DuplicatePercentage},
		{},
		{"Column", "Type", "Missing", "Missing %", "Unique"},
	}
	for _, c := range e.Columns {
		rows = append(rows, []interface{}{c.Column, c.Type, c.MissingCount, c.MissingPercentage, c.UniqueCount})
	}
	return newSheet(f, SheetExploration, rows)
}

func descriptiveSheet(f *excelize.File, r *Report) error {
	if len(r.Descriptive) == 0 && len(r.DescriptiveFailures) == 0 {
		return nil
	}
	rows := [][]interface{}{{"Column", "Count", "Missing", "Mean", "Median", "Mode", "Std", "Range",
		"Skewness", "Kurtosis", "Min", "Q1", "Q2", "Q3", "Max"}}
	for _, d := range r.Descriptive {
		rows = append(rows, []interface{}{d.Column, d.Count, d.Missing, d.Mean, d.Median, d.Mode, d.StdDev,
			d.Range, d.Skewness, d.Kurtosis, d.Min, d.Q1, d.Q2, d.Q3, d.Max})
	}
	rows = appendFailures(rows, r.DescriptiveFailures)
	return newSheet(f, SheetDescriptive, rows)
}

func outliersSheet(f *excelize.File, r *Report) error {
	if r.Outliers == nil {
		return nil
	}
	rows := [][]interface{}{{"Column", "Skewness", "Distribution", "Rule", "Lower Bound", "Upper Bound",
		"Outliers", "Outliers %", "Sample Size", "Rows"}}
	for _, o := range r.Outliers.Results {
		rows = append(rows, []interface{}{o.Column, o.Skewness, string(o.Distribution), string(o.Rule),
			o.LowerBound, o.UpperBound, o.OutlierCount, o.OutlierPercentage, o.SampleSize, o.RowCount})
	}
	rows = appendFailures(rows, r.Outliers.Failures)
	return newSheet(f, SheetOutliers, rows)
}

func appendFailures(rows [][]interface{}, failures []stats.ColumnFailure) [][]interface{} {
	if len(failures) == 0 {
		return rows
	}
	rows = append(rows, []interface{}{}, []interface{}{"Failed Column", "Code", "Message"})
	for _, fail := range failures {
		rows = append(rows, []interface{}{fail.Column, fail.Code, fail.Message})
	}
	return rows
}

func correlationSheet(f *excelize.File, r *Report) error {
	if r.Correlation == nil || len(r.Correlation.Matrices()) == 0 {
		return nil
	}
	rows := make([][]interface{}, 0)
	for _, m := range r.Correlation.Matrices() {
		header := []interface{}{methodTitle(m.Method)}
		for _, c := range m.Columns {
			header = append(header, c)
		}
		rows = append(rows, header)
		for i, name := range m.Columns {
			row := []interface{}{name}
			for j := range m.Columns {
				row = append(row, m.Coefficients[i][j])
			}
			rows = append(rows, row)
		}

		pHeader := []interface{}{fmt.Sprintf("%s p-values", methodTitle(m.Method))}
		pHeader = append(pHeader, header[1:]...)
		rows = append(rows, pHeader)
		for i, name := range m.Columns {
			row := []interface{}{name}
			for j := range m.Columns {
				row = append(row, m.PValues[i][j])
			}
			rows = append(rows, row)
		}
		rows = append(rows, []interface{}{})
	}
	return newSheet(f, SheetCorrelation, rows)
}

func targetSheet(f *excelize.File, r *Report) error {
	t := r.BinaryTarget
	if t == nil {
		return nil
	}
	rows := [][]interface{}{
		{"Target", t.Target},
		{"Alpha", t.Alpha},
		{},
		{"Feature", "Test", "Statistic", "p-value", "Significance", "Cramér's V", "Conclusion"},
	}
	tests := make([]*analysis.HypothesisTest, 0, len(t.PointBiserial)+len(t.ChiSquare))
	tests = append(append(tests, t.PointBiserial...), t.ChiSquare...)
	for _, h := range tests {
		var v interface{} = ""
		if h.ChiSquare != nil {
			v = h.ChiSquare.CramersV
		}
		rows = append(rows, []interface{}{h.Feature, string(h.Result.Test), h.Result.Statistic,
			h.Result.PValue, h.Result.Verdict(), v, h.Conclusion})
	}
	return newSheet(f, SheetTarget, rows)
}

func boxPlotSheet(f *excelize.File, r *Report) error {
	if len(r.BoxPlots) == 0 {
		return nil
	}
	rows := [][]interface{}{{"Column", "Title", "Min", "Q1", "Median", "Q3", "Max", "Lower Bound", "Upper Bound", "Outliers"}}
	for _, p := range r.BoxPlots {
		rows = append(rows, []interface{}{p.Column, p.Title, p.Min, p.Q1, p.Median, p.Q3, p.Max,
			p.LowerBound, p.UpperBound, len(p.Outliers)})
	}
	return newSheet(f, SheetBoxPlots, rows)
}

func newSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	return writeRows(f, name, 1, rows)
}

func writeRows(f *excelize.File, sheet string, start int, rows [][]interface{}) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, start+i)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
