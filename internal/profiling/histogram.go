package profiling

import (
	"math"

	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"

	"gonum.org/v1/gonum/floats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// CategoryCounts tallies each level in order of first appearance
func CategoryCounts(col *dataset.CategoricalColumn) []stats.ValueShare {
	levels := col.FirstSeen()
	index := make(map[string]int, len(levels))
	out := make([]stats.ValueShare, len(levels))
	for i, level := range levels {
		index[level] = i
		out[i].Value = level
	}
	for _, v := range col.Present() {
		out[index[v]].Count++
	}
	for i := range out {
		out[i].Percentage = percentage(out[i].Count, col.Len())
	}
	return out
}

// SturgesBins returns ceil(log2(n)) + 1
func SturgesBins(n int) int {
	if n < 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n)))) + 1
}

// NumericHistogram splits the non-missing values into equal-width bins
// spanning [min, max]. bins <= 0 selects Sturges' rule. A constant column
// yields a single bin.
func NumericHistogram(col *dataset.NumericColumn, bins int) ([]stats.HistogramBin, error) {
	sorted := col.Sorted()
	if len(sorted) == 0 {
		return nil, core.NewEmptyColumnError(col.Name())
	}
	if bins <= 0 {
		bins = SturgesBins(len(sorted))
	}

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if lo == hi {
		return []stats.HistogramBin{{Lower: lo, Upper: hi, Count: len(sorted)}}, nil
	}

	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// gonum excludes the upper edge; widen it so the maximum lands in the last bin
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := gonumstat.Histogram(nil, dividers, sorted, nil)

	out := make([]stats.HistogramBin, bins)
	for i := range out {
		out[i] = stats.HistogramBin{
			Lower: dividers[i],
			Upper: dividers[i+1],
			Count: int(counts[i]),
		}
	}
	out[bins-1].Upper = hi
	return out, nil
}
