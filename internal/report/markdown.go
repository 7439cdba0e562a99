package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"edakit/domain/stats"
	"edakit/internal/analysis"
	"edakit/internal/errors"
)

// MarkdownRenderer renders a report as GitHub flavored markdown
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a markdown renderer
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

func (m *MarkdownRenderer) Format() string { return "markdown" }

// Render writes the markdown document
func (m *MarkdownRenderer) Render(w io.Writer, r *Report) error {
	if _, err := io.WriteString(w, m.Markdown(r)); err != nil {
		return errors.RenderError(m.Format(), err)
	}
	return nil
}

// Markdown builds the document text
func (m *MarkdownRenderer) Markdown(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "Report `%s` generated %s.\n\n", r.ID, r.GeneratedAt.Time().Format(time.RFC3339))
	fmt.Fprintf(&b, "Dataset: %d rows, %d columns, fingerprint `%s`.\n\n",
		r.Dataset.Rows, len(r.Dataset.Columns), r.Dataset.Fingerprint.Short())

	if r.Exploration != nil {
		writeExploration(&b, r.Exploration)
	}
	if len(r.Descriptive) > 0 || len(r.DescriptiveFailures) > 0 {
		writeDescriptive(&b, r.Descriptive)
		writeFailures(&b, "Columns not described", r.DescriptiveFailures)
	}
	if r.Outliers != nil {
		writeOutliers(&b, r.Outliers)
	}
	if r.Correlation != nil {
		writeCorrelation(&b, r.Correlation)
	}
	if r.BinaryTarget != nil {
		writeBinaryTarget(&b, r.BinaryTarget)
	}
	if len(r.BoxPlots) > 0 {
		writeBoxPlots(&b, r.BoxPlots)
	}

	return b.String()
}

func writeExploration(b *strings.Builder, e *stats.Exploration) {
	b.WriteString("## Data Exploration\n\n")
	fmt.Fprintf(b, "Total rows: %d. Duplicate rows: %d (%s%%).\n\n",
		e.TotalRows, e.DuplicateRows, num(e.DuplicatePercentage, 2))

	rows := make([][]string, 0, len(e.Columns))
	for _, c := range e.Columns {
		rows = append(rows, []string{
			c.Column, c.Type,
			strconv.Itoa(c.MissingCount), num(c.MissingPercentage, 2),
			strconv.Itoa(c.UniqueCount), sample(c.UniqueItems, 5),
		})
	}
	writeTable(b, []string{"Column", "Type", "Missing", "Missing %", "Unique", "Unique Items"}, rows)
}

func writeDescriptive(b *strings.Builder, ds []stats.DescriptiveStats) {
	b.WriteString("## Descriptive Statistics\n\n")
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []string{
			d.Column, strconv.Itoa(d.Count), num(d.Mean, 4), num(d.Median, 4), num(d.Mode, 4),
			num(d.StdDev, 4), num(d.Range, 4), num(d.Skewness, 4), num(d.Kurtosis, 4),
			num(d.Min, 4), num(d.Q1, 4), num(d.Q2, 4), num(d.Q3, 4), num(d.Max, 4),
		})
	}
	writeTable(b, []string{"Column", "Count", "Mean", "Median", "Mode", "Std", "Range",
		"Skewness", "Kurtosis", "Min", "Q1", "Q2", "Q3", "Max"}, rows)
}

func writeOutliers(b *strings.Builder, o *stats.OutlierReport) {
	b.WriteString("## Outliers\n\n")
	rows := make([][]string, 0, len(o.Results))
	for _, r := range o.Results {
		rows = append(rows, []string{
			r.Column, num(r.Skewness, 1), string(r.Distribution),
			num(r.LowerBound, 2), num(r.UpperBound, 2),
			strconv.Itoa(r.OutlierCount), num(r.OutlierPercentage, 2),
		})
	}
	writeTable(b, []string{"Column", "Skewness", "Distribution", "Lower Bound", "Upper Bound", "Outliers", "Outliers %"}, rows)

	writeFailures(b, "Columns not classified", o.Failures)
}

func writeFailures(b *strings.Builder, heading string, failures []stats.ColumnFailure) {
	if len(failures) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n\n", heading)
	for _, f := range failures {
		fmt.Fprintf(b, "- `%s` (%s): %s\n", f.Column, f.Code, cell(f.Message))
	}
	b.WriteString("\n")
}

func writeCorrelation(b *strings.Builder, c *analysis.CorrelationResult) {
	b.WriteString("## Correlation\n\n")
	fmt.Fprintf(b, "- Normal columns: %s\n", listOrNone(c.NormalColumns))
	fmt.Fprintf(b, "- Skewed columns: %s\n", listOrNone(c.SkewedColumns))
	fmt.Fprintf(b, "- Categorical columns: %s\n\n", listOrNone(c.CategoricalColumns))

	for _, m := range c.Matrices() {
		title := methodTitle(m.Method)
		fmt.Fprintf(b, "### %s\n\n", title)
		writeMatrix(b, m, func(i, j int) string { return num(m.Coefficients[i][j], 2) })

		fmt.Fprintf(b, "Significance (p < %s), %s:\n\n", num(m.Alpha, 2), title)
		writeMatrix(b, m, func(i, j int) string {
			return fmt.Sprintf("%t (%s)", m.Significant(i, j), num(m.PValues[i][j], 4))
		})
	}
}

func writeMatrix(b *strings.Builder, m *stats.CorrelationMatrix, value func(i, j int) string) {
	header := append([]string{""}, m.Columns...)
	rows := make([][]string, len(m.Columns))
	for i, name := range m.Columns {
		rows[i] = make([]string, 0, len(m.Columns)+1)
		rows[i] = append(rows[i], name)
		for j := range m.Columns {
			rows[i] = append(rows[i], value(i, j))
		}
	}
	writeTable(b, header, rows)
}

func writeBinaryTarget(b *strings.Builder, t *analysis.BinaryTargetResult) {
	fmt.Fprintf(b, "## Binary Target: %s\n\n", t.Target)
	fmt.Fprintf(b, "Levels coded 0/1: %s. Alpha: %s.\n\n", strings.Join(t.Levels, " / "), num(t.Alpha, 2))

	if len(t.PointBiserial) > 0 {
		b.WriteString("### Point-Biserial Correlation\n\n")
		rows := make([][]string, 0, len(t.PointBiserial))
		for _, h := range t.PointBiserial {
			rows = append(rows, []string{h.Feature, num(h.Result.Statistic, 3), num(h.Result.PValue, 10), h.Result.Verdict()})
		}
		writeTable(b, []string{"Feature", "r_pb", "p-value", "Significance"}, rows)
	}

	if len(t.ChiSquare) > 0 {
		b.WriteString("### Chi-Square\n\n")
		rows := make([][]string, 0, len(t.ChiSquare))
		for _, h := range t.ChiSquare {
			v, interp := "", ""
			if h.ChiSquare != nil {
				v = num(h.ChiSquare.CramersV, 3)
				interp = string(h.ChiSquare.Interpretation)
			}
			rows = append(rows, []string{h.Feature, num(h.Result.Statistic, 3), num(h.Result.PValue, 10), h.Result.Verdict(), v, interp})
		}
		writeTable(b, []string{"Feature", "Chi2", "p-value", "Significance", "Cramér's V", "Interpretation"}, rows)
	}

	b.WriteString("### Conclusions\n\n")
	for _, group := range [][]*analysis.HypothesisTest{t.PointBiserial, t.ChiSquare} {
		for _, h := range group {
			fmt.Fprintf(b, "- **%s**: H0: %s H1: %s Conclusion: %s\n", h.Feature, h.Hypothesis.H0, h.Hypothesis.H1, h.Conclusion)
		}
	}
	b.WriteString("\n")

	if len(t.Skipped) > 0 {
		b.WriteString("Skipped features:\n\n")
		for _, s := range t.Skipped {
			fmt.Fprintf(b, "- `%s` (%s)\n", s.Column, s.Code)
		}
		b.WriteString("\n")
	}
}

func writeBoxPlots(b *strings.Builder, plots []stats.BoxPlot) {
	b.WriteString("## Box Plots\n\n")
	rows := make([][]string, 0, len(plots))
	for _, p := range plots {
		rows = append(rows, []string{
			p.Title, num(p.Min, 4), num(p.Q1, 4), num(p.Median, 4), num(p.Q3, 4), num(p.Max, 4),
			num(p.LowerBound, 2), num(p.UpperBound, 2), strconv.Itoa(len(p.Outliers)),
		})
	}
	writeTable(b, []string{"Column", "Min", "Q1", "Median", "Q3", "Max", "Lower Bound", "Upper Bound", "Outliers"}, rows)
}

func writeTable(b *strings.Builder, header []string, rows [][]string) {
	b.WriteString("|")
	for _, h := range header {
		b.WriteString(" " + cell(h) + " |")
	}
	b.WriteString("\n|")
	for range header {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString("|")
		for _, v := range row {
			b.WriteString(" " + cell(v) + " |")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func methodTitle(method stats.TestName) string {
	switch method {
	case stats.TestPearson:
		return "Pearson"
	case stats.TestSpearman:
		return "Spearman"
	case stats.TestKendall:
		return "Kendall"
	}
	return string(method)
}

func num(x float64, places int) string {
	return strconv.FormatFloat(x, 'f', places, 64)
}

func cell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}

func sample(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return strings.Join(items[:n], ", ") + fmt.Sprintf(", ... (+%d)", len(items)-n)
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
