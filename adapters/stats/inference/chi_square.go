package inference

import (
	"math"
	"sort"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
)

// Crosstab counts co-occurrences of two paired label sequences. Row and
// column labels are sorted lexicographically.
func Crosstab(rows, cols []string) (stats.ContingencyTable, error) {
	if len(rows) != len(cols) {
		return stats.ContingencyTable{}, core.ErrLabelsMismatched
	}

	rowLabels := distinctSorted(rows)
	colLabels := distinctSorted(cols)
	rowIndex := indexOf(rowLabels)
	colIndex := indexOf(colLabels)

	observed := make([][]float64, len(rowLabels))
	for i := range observed {
		observed[i] = make([]float64, len(colLabels))
	}
	for i := range rows {
		observed[rowIndex[rows[i]]][colIndex[cols[i]]]++
	}

	return stats.ContingencyTable{
		RowLabels: rowLabels,
		ColLabels: colLabels,
		Observed:  observed,
	}, nil
}

// ChiSquare tests independence of a contingency table. Tables with one degree
// of freedom get Yates' continuity correction. The result carries the
// expected frequencies, Cramér's V and eta-squared (χ²/(n+χ²)).
func ChiSquare(table stats.ContingencyTable) (stats.ChiSquareResult, error) {
	r := len(table.Observed)
	if r < 2 || len(table.Observed[0]) < 2 {
		return stats.ChiSquareResult{}, core.ErrDegenerateTable
	}
	c := len(table.Observed[0])

	rowSums := make([]float64, r)
	colSums := make([]float64, c)
	n := 0.0
	for i, row := range table.Observed {
		if len(row) != c {
			return stats.ChiSquareResult{}, core.ErrLabelsMismatched
		}
		for j, v := range row {
			rowSums[i] += v
			colSums[j] += v
			n += v
		}
	}

	expected := make([][]float64, r)
	for i := range expected {
		expected[i] = make([]float64, c)
		for j := range expected[i] {
			expected[i][j] = rowSums[i] * colSums[j] / n
			if expected[i][j] == 0 {
				return stats.ChiSquareResult{}, core.ErrDegenerateTable
			}
		}
	}

	dof := (r - 1) * (c - 1)
	chi2 := 0.0
	for i := range expected {
		for j, e := range expected[i] {
			o := table.Observed[i][j]
			if dof == 1 {
				diff := e - o
				o += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
			}
			chi2 += (o - e) * (o - e) / e
		}
	}

	minDim := math.Min(float64(r), float64(c))
	cramersV := math.Sqrt(chi2 / (n * (minDim - 1)))

	out := stats.ChiSquareResult{
		TestResult: stats.TestResult{
			Test:      stats.TestChiSquare,
			Statistic: chi2,
			PValue:    ChiSquarePValue(chi2, float64(dof)),
			DF:        float64(dof),
			N:         int(n),
		},
		CramersV:       cramersV,
		EtaSquared:     chi2 / (n + chi2),
		Interpretation: stats.InterpretCramersV(cramersV),
		Table: stats.ContingencyTable{
			RowLabels: table.RowLabels,
			ColLabels: table.ColLabels,
			Observed:  table.Observed,
			Expected:  expected,
		},
	}
	return out, nil
}

// OrdinalEncode maps categories to their position among the sorted levels.
// Missing rows become NaN.
func OrdinalEncode(col *dataset.CategoricalColumn) ([]float64, []string) {
	levels := col.Levels()
	index := indexOf(levels)

	codes := make([]float64, col.Len())
	for i := range codes {
		cell := col.At(i)
		if !cell.Valid {
			codes[i] = math.NaN()
			continue
		}
		codes[i] = float64(index[cell.Value])
	}
	return codes, levels
}

func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func indexOf(labels []string) map[string]int {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return index
}
