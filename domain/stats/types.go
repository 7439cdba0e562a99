package stats

import (
	"math"
)

// ============================================================================
// DISTRIBUTION CLASSIFICATION
// ============================================================================

// DistributionLabel is the shape verdict driving bound and method selection
type DistributionLabel string

const (
	LabelNormal DistributionLabel = "normal"
	LabelSkewed DistributionLabel = "skewed"
)

// BoundRule names the rule used to derive outlier bounds
type BoundRule string

const (
	RuleMeanStd BoundRule = "mean_std" // mean ± k·std
	RuleIQR     BoundRule = "iqr"      // [Q1 − k·IQR, Q3 + k·IQR]
)

// OutlierResult is the per-column output of the outlier classifier.
// INVARIANTS:
// - Distribution is LabelNormal iff |Skewness| <= threshold (Skewness already rounded)
// - LowerBound <= UpperBound
// - 0 <= OutlierPercentage <= 100
type OutlierResult struct {
	Column            string            `json:"column"`
	Skewness          float64           `json:"skewness"` // rounded to 1 decimal
	Distribution      DistributionLabel `json:"distribution"`
	Rule              BoundRule         `json:"rule"`
	LowerBound        float64           `json:"lower_bound"` // rounded to 2 decimals
	UpperBound        float64           `json:"upper_bound"` // rounded to 2 decimals
	OutlierCount      int               `json:"outlier_count"`
	OutlierPercentage float64           `json:"outlier_percentage"`
	SampleSize        int               `json:"sample_size"` // non-missing values
	RowCount          int               `json:"row_count"`   // all rows, missing included
}

// ColumnFailure tags a column that could not be processed
type ColumnFailure struct {
	Column  string `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OutlierReport holds batch classification output in input column order
type OutlierReport struct {
	Results  []OutlierResult `json:"results"`
	Failures []ColumnFailure `json:"failures,omitempty"`
}

// Lookup finds the result for a column
func (r *OutlierReport) Lookup(column string) (OutlierResult, bool) {
	for _, res := range r.Results {
		if res.Column == column {
			return res, true
		}
	}
	return OutlierResult{}, false
}

// Failed reports whether a column ended up in the failure list
func (r *OutlierReport) Failed(column string) (ColumnFailure, bool) {
	for _, f := range r.Failures {
		if f.Column == column {
			return f, true
		}
	}
	return ColumnFailure{}, false
}

// ============================================================================
// DESCRIPTIVE STATISTICS
// ============================================================================

// DescriptiveStats summarizes a numeric column
type DescriptiveStats struct {
	Column   string  `json:"column"`
	Count    int     `json:"count"`
	Missing  int     `json:"missing"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Mode     float64 `json:"mode"`
	StdDev   float64 `json:"std_dev"`
	Range    float64 `json:"range"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess
	Min      float64 `json:"min"`
	Q1       float64 `json:"q1"`
	Q2       float64 `json:"q2"`
	Q3       float64 `json:"q3"`
	Max      float64 `json:"max"`
}

// ============================================================================
// HYPOTHESIS TESTS
// ============================================================================

// TestName identifies a statistical test
type TestName string

const (
	TestPearson       TestName = "pearson"
	TestSpearman      TestName = "spearman"
	TestKendall       TestName = "kendall"
	TestPointBiserial TestName = "point_biserial"
	TestChiSquare     TestName = "chi_square"
	TestWelchTTest    TestName = "welch_ttest"
	TestANOVA         TestName = "anova"
)

// TestResult is the common output of every statistical test
type TestResult struct {
	Test        TestName `json:"test"`
	Statistic   float64  `json:"statistic"`
	PValue      float64  `json:"p_value"`
	DF          float64  `json:"df,omitempty"`
	N           int      `json:"n"`
	Alpha       float64  `json:"alpha"`
	Significant bool     `json:"significant"`
}

// Judge fills Alpha and Significant; a NaN p-value is never significant
func (r TestResult) Judge(alpha float64) TestResult {
	r.Alpha = alpha
	r.Significant = !math.IsNaN(r.PValue) && r.PValue < alpha
	return r
}

// Verdict renders the significance decision
func (r TestResult) Verdict() string {
	if r.Significant {
		return "Significant"
	}
	return "Not Significant"
}

// AssociationStrength buckets Cramér's V
type AssociationStrength string

const (
	StrengthVeryStrong AssociationStrength = "Very Strong"
	StrengthStrong     AssociationStrength = "Strong"
	StrengthModerate   AssociationStrength = "Moderate"
	StrengthWeak       AssociationStrength = "Weak"
	StrengthNone       AssociationStrength = "No or Very Weak"
)

// InterpretCramersV maps V onto the strength buckets
func InterpretCramersV(v float64) AssociationStrength {
	switch {
	case v > 0.25:
		return StrengthVeryStrong
	case v > 0.15:
		return StrengthStrong
	case v > 0.10:
		return StrengthModerate
	case v > 0.05:
		return StrengthWeak
	default:
		return StrengthNone
	}
}

// ContingencyTable holds observed and expected counts for a chi-square test
type ContingencyTable struct {
	RowLabels []string    `json:"row_labels"`
	ColLabels []string    `json:"col_labels"`
	Observed  [][]float64 `json:"observed"`
	Expected  [][]float64 `json:"expected,omitempty"`
}

// Total sums all observed counts
func (t ContingencyTable) Total() float64 {
	total := 0.0
	for _, row := range t.Observed {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// ChiSquareResult extends TestResult with effect sizes
type ChiSquareResult struct {
	TestResult
	CramersV       float64             `json:"cramers_v"`
	EtaSquared     float64             `json:"eta_squared"`
	Interpretation AssociationStrength `json:"interpretation"`
	Table          ContingencyTable    `json:"table"`
}

// CorrelationMatrix is a square matrix of coefficients with p-values
type CorrelationMatrix struct {
	Method       TestName    `json:"method"`
	Columns      []string    `json:"columns"`
	Tested       []string    `json:"tested"` // columns whose pairwise p-values were computed
	Coefficients [][]float64 `json:"coefficients"`
	PValues      [][]float64 `json:"p_values"`
	Alpha        float64     `json:"alpha"`
}

// Significant reports p < alpha for cell (i, j)
func (m CorrelationMatrix) Significant(i, j int) bool {
	return m.PValues[i][j] < m.Alpha
}

// Index returns the position of a column in the matrix
func (m CorrelationMatrix) Index(column string) int {
	for i, c := range m.Columns {
		if c == column {
			return i
		}
	}
	return -1
}
