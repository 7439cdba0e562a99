package analysis

import (
	"fmt"

	"edakit/adapters/stats/inference"
	"edakit/domain/core"
	"edakit/domain/dataset"
	"edakit/domain/stats"
)

// Hypothesis is a null/alternative statement pair
type Hypothesis struct {
	H0 string `json:"h0"`
	H1 string `json:"h1"`
}

// TestOptions tunes a single hypothesis test. Zero Alpha falls back to the
// analyzer's alpha; a nil or incomplete Hypothesis falls back to the default
// wording of the test.
type TestOptions struct {
	Alpha      float64
	Hypothesis *Hypothesis
}

// HypothesisTest is the outcome of testing one feature against a target
type HypothesisTest struct {
	Target     string                 `json:"target"`
	Feature    string                 `json:"feature"`
	Result     stats.TestResult       `json:"result"`
	Hypothesis Hypothesis             `json:"hypothesis"`
	Conclusion string                 `json:"conclusion"`
	Groups     []string               `json:"groups,omitempty"`
	ChiSquare  *stats.ChiSquareResult `json:"chi_square,omitempty"`
}

// RelationshipHypothesis is the default pair for association tests
func RelationshipHypothesis(target, feature string) Hypothesis {
	return Hypothesis{
		H0: fmt.Sprintf("There is no relationship between %s and %s.", target, feature),
		H1: fmt.Sprintf("There is a relationship between %s and %s.", target, feature),
	}
}

// MeanDifferenceHypothesis is the default pair for two-group mean tests
func MeanDifferenceHypothesis(feature string) Hypothesis {
	return Hypothesis{
		H0: fmt.Sprintf("There is no difference in means between the two groups on feature '%s'.", feature),
		H1: fmt.Sprintf("There is a difference in means between the two groups on feature '%s'.", feature),
	}
}

// GroupMeansHypothesis is the default pair for ANOVA
func GroupMeansHypothesis(feature string) Hypothesis {
	return Hypothesis{
		H0: fmt.Sprintf("There is no difference in means among the groups on feature '%s'.", feature),
		H1: fmt.Sprintf("There is a difference in means among the groups on feature '%s'.", feature),
	}
}

// Conclusion states whether target and feature are related at the judged alpha
func Conclusion(result stats.TestResult, target, feature string) string {
	if result.Significant {
		return fmt.Sprintf("There is a relationship between %s and %s.", target, feature)
	}
	return fmt.Sprintf("There is no relationship between %s and %s.", target, feature)
}

func (o TestOptions) alpha(fallback float64) float64 {
	if o.Alpha > 0 {
		return o.Alpha
	}
	return fallback
}

func (o TestOptions) hypothesis(fallback Hypothesis) Hypothesis {
	if o.Hypothesis == nil || o.Hypothesis.H0 == "" || o.Hypothesis.H1 == "" {
		return fallback
	}
	return *o.Hypothesis
}

// TTest compares the feature's means between the two target groups, taken in
// order of first appearance, with Welch's t-test.
func (a *Analyzer) TTest(table *dataset.Table, target, feature string, opts TestOptions) (*HypothesisTest, error) {
	groups, labels, err := splitByTarget(table, target, feature)
	if err != nil {
		return nil, err
	}
	if len(labels) != 2 {
		return nil, fmt.Errorf("%w: %q has %d categories", core.ErrNotBinary, target, len(labels))
	}

	res, err := inference.WelchTTest(groups[0], groups[1])
	if err != nil {
		return nil, err
	}
	res = res.Judge(opts.alpha(a.alpha))

	return &HypothesisTest{
		Target:     target,
		Feature:    feature,
		Result:     res,
		Hypothesis: opts.hypothesis(MeanDifferenceHypothesis(feature)),
		Conclusion: Conclusion(res, target, feature),
		Groups:     labels,
	}, nil
}

// ANOVA compares the feature's means across more than two target categories
func (a *Analyzer) ANOVA(table *dataset.Table, target, feature string, opts TestOptions) (*HypothesisTest, error) {
	groups, labels, err := splitByTarget(table, target, feature)
	if err != nil {
		return nil, err
	}
	if len(labels) <= 2 {
		return nil, fmt.Errorf("%w: %q has %d categories, need more than 2", core.ErrTooFewGroups, target, len(labels))
	}

	res, err := inference.ANOVA(groups...)
	if err != nil {
		return nil, err
	}
	res = res.Judge(opts.alpha(a.alpha))

	return &HypothesisTest{
		Target:     target,
		Feature:    feature,
		Result:     res,
		Hypothesis: opts.hypothesis(GroupMeansHypothesis(feature)),
		Conclusion: Conclusion(res, target, feature),
		Groups:     labels,
	}, nil
}

// ChiSquare tests independence of two columns of any type. Rows are target
// levels and columns are feature levels.
func (a *Analyzer) ChiSquare(table *dataset.Table, target, feature string, opts TestOptions) (*HypothesisTest, error) {
	chi, err := chiSquareColumns(table, target, feature)
	if err != nil {
		return nil, err
	}
	chi.TestResult = chi.TestResult.Judge(opts.alpha(a.alpha))

	return &HypothesisTest{
		Target:     target,
		Feature:    feature,
		Result:     chi.TestResult,
		Hypothesis: opts.hypothesis(RelationshipHypothesis(target, feature)),
		Conclusion: Conclusion(chi.TestResult, target, feature),
		ChiSquare:  &chi,
	}, nil
}

func chiSquareColumns(table *dataset.Table, target, feature string) (stats.ChiSquareResult, error) {
	tcol, err := table.Column(target)
	if err != nil {
		return stats.ChiSquareResult{}, err
	}
	fcol, err := table.Column(feature)
	if err != nil {
		return stats.ChiSquareResult{}, err
	}

	rows := make([]string, 0, tcol.Len())
	cols := make([]string, 0, fcol.Len())
	for i := 0; i < tcol.Len(); i++ {
		if tcol.IsMissing(i) || fcol.IsMissing(i) {
			continue
		}
		rows = append(rows, tcol.Key(i))
		cols = append(cols, fcol.Key(i))
	}

	ct, err := inference.Crosstab(rows, cols)
	if err != nil {
		return stats.ChiSquareResult{}, err
	}
	return inference.ChiSquare(ct)
}

// splitByTarget groups the numeric feature by target value. Groups follow the
// first appearance of each target value; rows missing either cell are dropped.
func splitByTarget(table *dataset.Table, target, feature string) ([][]float64, []string, error) {
	tcol, err := table.Column(target)
	if err != nil {
		return nil, nil, err
	}
	fcol, err := table.Numeric(feature)
	if err != nil {
		return nil, nil, err
	}

	index := make(map[string]int)
	labels := make([]string, 0)
	groups := make([][]float64, 0)
	for i := 0; i < tcol.Len(); i++ {
		if tcol.IsMissing(i) {
			continue
		}
		key := tcol.Key(i)
		pos, ok := index[key]
		if !ok {
			pos = len(labels)
			index[key] = pos
			labels = append(labels, key)
			groups = append(groups, make([]float64, 0))
		}
		if fcol.IsMissing(i) {
			continue
		}
		groups[pos] = append(groups[pos], fcol.At(i).Value)
	}
	return groups, labels, nil
}
