package profiling

import (
	"sort"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/errors"
)

// Explore reports missingness and uniqueness per column plus duplicate rows
func Explore(table *dataset.Table) stats.Exploration {
	rows := table.RowCount()
	exp := stats.Exploration{
		Columns:   make([]stats.ColumnSummary, 0, table.ColumnCount()),
		TotalRows: rows,
	}

	for _, col := range table.Columns() {
		missing := 0
		seen := make(map[string]struct{})
		items := make([]string, 0)
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				missing++
				continue
			}
			key := col.Key(i)
			if _, ok := seen[key]; !ok {
				seen[key] = struct{}{}
				items = append(items, key)
			}
		}

		exp.Columns = append(exp.Columns, stats.ColumnSummary{
			Column:            col.Name(),
			Type:              string(col.Type()),
			MissingCount:      missing,
			MissingPercentage: percentage(missing, rows),
			UniqueCount:       len(items),
			UniqueItems:       items,
		})
	}

	seenRows := make(map[string]struct{}, rows)
	for r := 0; r < rows; r++ {
		key := table.RowKey(r)
		if _, ok := seenRows[key]; ok {
			exp.DuplicateRows++
			continue
		}
		seenRows[key] = struct{}{}
	}
	exp.DuplicatePercentage = percentage(exp.DuplicateRows, rows)

	return exp
}

// MissingComparison compares missing percentages of features in two tables.
// A feature absent from either table fails the whole comparison.
func MissingComparison(train, test *dataset.Table, features []string) ([]stats.MissingShare, error) {
	for _, name := range features {
		if !train.Has(name) {
			return nil, errors.Wrap(core.NewColumnNotFoundError(name), "train table")
		}
		if !test.Has(name) {
			return nil, errors.Wrap(core.NewColumnNotFoundError(name), "test table")
		}
	}

	out := make([]stats.MissingShare, 0, len(features))
	for _, name := range features {
		a, _ := train.Column(name)
		b, _ := test.Column(name)
		out = append(out, stats.MissingShare{
			Column:       name,
			TrainPercent: percentage(countMissing(a), a.Len()),
			TestPercent:  percentage(countMissing(b), b.Len()),
		})
	}
	return out, nil
}

// ValuePercentages counts each value of a column. Results are ordered by count
// descending with ties kept in order of first appearance; percentages are over
// all rows.
func ValuePercentages(table *dataset.Table, column string) ([]stats.ValueShare, error) {
	col, err := table.Column(column)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int)
	shares := make([]stats.ValueShare, 0)
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			continue
		}
		key := col.Key(i)
		pos, ok := index[key]
		if !ok {
			pos = len(shares)
			index[key] = pos
			shares = append(shares, stats.ValueShare{Value: key})
		}
		shares[pos].Count++
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	for i := range shares {
		shares[i].Percentage = percentage(shares[i].Count, col.Len())
	}
	return shares, nil
}

func countMissing(col dataset.Column) int {
	n := 0
	for i := 0; i < col.Len(); i++ {
		if col.IsMissing(i) {
			n++
		}
	}
	return n
}

func percentage(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return 100 * float64(part) / float64(whole)
}
