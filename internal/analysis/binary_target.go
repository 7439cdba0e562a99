package analysis

import (
	"fmt"
	"log"
	"math"
	"sort"

	"edakit/adapters/stats/inference"
	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
	"edakit/internal/errors"
)

// BinaryTargetResult holds every feature's association with a binary target
type BinaryTargetResult struct {
	Target        string                `json:"target"`
	Levels        []string              `json:"levels"` // Levels[0] is coded 0
	Alpha         float64               `json:"alpha"`
	PointBiserial []*HypothesisTest     `json:"point_biserial"` // by r descending
	ChiSquare     []*HypothesisTest     `json:"chi_square"`     // by chi-square descending
	Skipped       []stats.ColumnFailure `json:"skipped,omitempty"`
}

// BinaryTargetAnalysis correlates numeric features with the target through
// point-biserial r and categorical features through chi-square with Cramér's
// V. Features failing a precondition are listed in Skipped.
func (a *Analyzer) BinaryTargetAnalysis(table *dataset.Table, target string, opts TestOptions) (*BinaryTargetResult, error) {
	tcol, err := table.Column(target)
	if err != nil {
		return nil, err
	}
	codes, levels, err := binaryCodes(tcol)
	if err != nil {
		return nil, err
	}

	alpha := opts.alpha(a.alpha)
	result := &BinaryTargetResult{
		Target:        target,
		Levels:        levels,
		Alpha:         alpha,
		PointBiserial: make([]*HypothesisTest, 0),
		ChiSquare:     make([]*HypothesisTest, 0),
	}

	for _, col := range table.NumericColumns() {
		if col.Name() == target {
			continue
		}
		x := make([]float64, 0, col.Len())
		y := make([]float64, 0, col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsMissing(i) || math.IsNaN(codes[i]) {
				continue
			}
			x = append(x, col.At(i).Value)
			y = append(y, codes[i])
		}
		if distinct(y) != 2 {
			result.skip(col.Name(), fmt.Errorf("%w: %q has one target level after dropping missing rows", core.ErrNotBinary, col.Name()))
			continue
		}
		res, err := inference.PointBiserial(x, y)
		if err != nil {
			result.skip(col.Name(), err)
			continue
		}
		res = res.Judge(alpha)
		result.PointBiserial = append(result.PointBiserial, &HypothesisTest{
			Target:     target,
			Feature:    col.Name(),
			Result:     res,
			Hypothesis: opts.hypothesis(RelationshipHypothesis(target, col.Name())),
			Conclusion: Conclusion(res, target, col.Name()),
		})
	}

	for _, col := range table.CategoricalColumns() {
		if col.Name() == target {
			continue
		}
		chi, err := chiSquareColumns(table, col.Name(), target)
		if err != nil {
			result.skip(col.Name(), err)
			continue
		}
		chi.TestResult = chi.TestResult.Judge(alpha)
		result.ChiSquare = append(result.ChiSquare, &HypothesisTest{
			Target:     target,
			Feature:    col.Name(),
			Result:     chi.TestResult,
			Hypothesis: opts.hypothesis(RelationshipHypothesis(target, col.Name())),
			Conclusion: Conclusion(chi.TestResult, target, col.Name()),
			ChiSquare:  &chi,
		})
	}

	sort.SliceStable(result.PointBiserial, func(i, j int) bool {
		return result.PointBiserial[i].Result.Statistic > result.PointBiserial[j].Result.Statistic
	})
	sort.SliceStable(result.ChiSquare, func(i, j int) bool {
		return result.ChiSquare[i].Result.Statistic > result.ChiSquare[j].Result.Statistic
	})

	return result, nil
}

func (r *BinaryTargetResult) skip(column string, err error) {
	log.Printf("[Analyzer] skipping %q against target %q: %v", column, r.Target, err)
	r.Skipped = append(r.Skipped, stats.ColumnFailure{
		Column:  column,
		Code:    errors.GetCode(err),
		Message: err.Error(),
	})
}

// binaryCodes codes a two-level column as 0/1 in level order. Missing rows
// become NaN.
func binaryCodes(col dataset.Column) ([]float64, []string, error) {
	codes, levels := levelCodes(col)
	if len(levels) != 2 {
		return nil, nil, fmt.Errorf("%w: %q has %d levels", core.ErrNotBinary, col.Name(), len(levels))
	}
	return codes, levels, nil
}

func distinct(values []float64) int {
	seen := make(map[float64]struct{})
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
