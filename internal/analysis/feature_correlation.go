package analysis

import (
	"log"
	"math"
	"sort"
	"strconv"

	"edakit/adapters/stats/inference"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/errors"
	"edakit/internal/profiling"
)

// FeatureGroups assigns features to the method used against the target
type FeatureGroups struct {
	Numeric []string // Spearman against target codes
	Ordinal []string // Kendall tau-b on level codes
	Nominal []string // chi-square eta-squared
	Binary  []string // chi-square eta-squared
}

// Correlation method labels
const (
	MethodSpearman   = "Spearman"
	MethodKendall    = "Kendall"
	MethodEtaSquared = "Chi-square (Eta-squared)"
)

// FeatureCorrelation ranks one feature's association with the target
type FeatureCorrelation struct {
	Feature     string  `json:"feature"`
	Method      string  `json:"method"`
	PValue      float64 `json:"p_value"` // rounded to 4 decimals
	Value       float64 `json:"value"`   // |coefficient| or eta-squared, rounded to 4 decimals
	Significant bool    `json:"significant"`
}

// Verdict renders the significance decision
func (f FeatureCorrelation) Verdict() string {
	if f.Significant {
		return "Significant"
	}
	return "Not Significant"
}

// FeatureCorrelations scores each grouped feature against the target and
// sorts by value descending. Features missing from the table are skipped.
func (a *Analyzer) FeatureCorrelations(table *dataset.Table, target string, groups FeatureGroups, alpha float64) ([]FeatureCorrelation, error) {
	if alpha <= 0 {
		alpha = a.alpha
	}
	tcol, err := table.Column(target)
	if err != nil {
		return nil, err
	}
	targetCodes, _ := levelCodes(tcol)

	out := make([]FeatureCorrelation, 0)
	add := func(feature, method string, res stats.TestResult, value float64) {
		res = res.Judge(alpha)
		out = append(out, FeatureCorrelation{
			Feature:     feature,
			Method:      method,
			PValue:      profiling.Round(res.PValue, 4),
			Value:       profiling.Round(value, 4),
			Significant: res.Significant,
		})
	}

	for _, name := range groups.Numeric {
		col, err := table.Numeric(name)
		if err != nil {
			logSkip(name, err)
			continue
		}
		x, y := complete(values(col), targetCodes)
		res, err := inference.Spearman(x, y)
		if err != nil {
			logSkip(name, err)
			continue
		}
		add(name, MethodSpearman, res, math.Abs(res.Statistic))
	}

	for _, name := range groups.Ordinal {
		col, err := table.Column(name)
		if err != nil {
			logSkip(name, err)
			continue
		}
		codes, _ := levelCodes(col)
		x, y := complete(codes, targetCodes)
		res, err := inference.Kendall(x, y)
		if err != nil {
			logSkip(name, err)
			continue
		}
		add(name, MethodKendall, res, math.Abs(res.Statistic))
	}

	for _, name := range append(append([]string{}, groups.Nominal...), groups.Binary...) {
		chi, err := chiSquareColumns(table, name, target)
		if err != nil {
			logSkip(name, err)
			continue
		}
		add(name, MethodEtaSquared, chi.TestResult, chi.EtaSquared)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out, nil
}

func logSkip(feature string, err error) {
	log.Printf("[Analyzer] feature %q skipped (%s): %v", feature, errors.GetCode(err), err)
}

// levelCodes maps each cell to the index of its level among the sorted
// distinct values (numeric order for numeric columns, lexicographic
// otherwise). Missing cells are NaN.
func levelCodes(col dataset.Column) ([]float64, []string) {
	if cat, ok := col.(*dataset.CategoricalColumn); ok {
		return inference.OrdinalEncode(cat)
	}

	levels := make([]string, 0)
	if num, ok := col.(*dataset.NumericColumn); ok {
		sorted := num.Sorted()
		for i, v := range sorted {
			if i == 0 || v != sorted[i-1] {
				levels = append(levels, strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
	} else {
		seen := make(map[string]struct{})
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) {
				continue
			}
			if _, ok := seen[col.Key(i)]; !ok {
				seen[col.Key(i)] = struct{}{}
				levels = append(levels, col.Key(i))
			}
		}
		sort.Strings(levels)
	}

	index := make(map[string]int, len(levels))
	for i, l := range levels {
		index[l] = i
	}
	codes := make([]float64, col.Len())
	for i := range codes {
		if col.IsMissing(i) {
			codes[i] = math.NaN()
			continue
		}
		codes[i] = float64(index[col.Key(i)])
	}
	return codes, levels
}
