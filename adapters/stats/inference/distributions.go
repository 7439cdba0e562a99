package inference

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Upper-tail probabilities use Survival rather than 1-CDF so tiny p-values do
// not collapse to zero.

// TTestPValue computes a two-sided p-value from Student's t distribution
func TTestPValue(t, df float64) float64 {
	if df <= 0 || math.IsNaN(t) {
		return 1.0
	}
	if math.IsInf(t, 0) {
		return 0
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return clampP(2 * dist.Survival(math.Abs(t)))
}

// CorrelationPValue tests r = 0 via t = r·sqrt(df/(1-r²)) with n-2 df
func CorrelationPValue(r float64, n int) float64 {
	if n < 3 || math.IsNaN(r) {
		return 1.0
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	return TTestPValue(r*math.Sqrt(df/(1-r*r)), df)
}

// FTestPValue computes the upper-tail p-value of the F distribution
func FTestPValue(f, df1, df2 float64) float64 {
	if df1 <= 0 || df2 <= 0 || math.IsNaN(f) {
		return 1.0
	}
	if math.IsInf(f, 1) {
		return 0
	}
	dist := distuv.F{D1: df1, D2: df2}
	return clampP(dist.Survival(f))
}

// ChiSquarePValue computes the upper-tail p-value of the chi-square distribution
func ChiSquarePValue(chi2, df float64) float64 {
	if df <= 0 || math.IsNaN(chi2) {
		return 1.0
	}
	dist := distuv.ChiSquared{K: df}
	return clampP(dist.Survival(chi2))
}

// NormalPValue computes a two-sided p-value for a standard normal z score
func NormalPValue(z float64) float64 {
	if math.IsNaN(z) {
		return 1.0
	}
	return clampP(2 * distuv.UnitNormal.Survival(math.Abs(z)))
}

func clampP(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1.0
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}
