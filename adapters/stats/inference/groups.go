package inference

import (
	"math"

	"edakit/domain/core"
	"edakit/domain/stats"

	mstats "github.com/montanaflynn/stats"
)

// WelchTTest compares two group means without assuming equal variances.
// DF is the Welch–Satterthwaite approximation. Two constant groups yield
// t = 0, p = 1.
func WelchTTest(a, b []float64) (stats.TestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return stats.TestResult{}, core.ErrInsufficientData
	}
	if !finite(a) || !finite(b) {
		return stats.TestResult{}, core.ErrNonFinite
	}
	res := stats.TestResult{Test: stats.TestWelchTTest, N: len(a) + len(b), PValue: 1.0}

	ma, _ := mstats.Mean(a)
	mb, _ := mstats.Mean(b)
	va, _ := mstats.SampleVariance(a)
	vb, _ := mstats.SampleVariance(b)

	sa := va / float64(len(a))
	sb := vb / float64(len(b))
	se := math.Sqrt(sa + sb)
	if se == 0 {
		return res, nil
	}

	res.Statistic = (ma - mb) / se
	res.DF = (sa + sb) * (sa + sb) / (sa*sa/float64(len(a)-1) + sb*sb/float64(len(b)-1))
	res.PValue = TTestPValue(res.Statistic, res.DF)
	return res, nil
}

// ANOVA runs a one-way analysis of variance across groups. Groups without
// values are ignored; at least two must remain. Zero within-group variance
// yields F = 0, p = 1.
func ANOVA(groups ...[]float64) (stats.TestResult, error) {
	kept := make([][]float64, 0, len(groups))
	total := 0
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		if !finite(g) {
			return stats.TestResult{}, core.ErrNonFinite
		}
		kept = append(kept, g)
		total += len(g)
	}
	if len(kept) < 2 {
		return stats.TestResult{}, core.ErrTooFewGroups
	}
	dfBetween := float64(len(kept) - 1)
	dfWithin := float64(total - len(kept))
	if dfWithin <= 0 {
		return stats.TestResult{}, core.ErrInsufficientData
	}

	grand := 0.0
	for _, g := range kept {
		for _, v := range g {
			grand += v
		}
	}
	grand /= float64(total)

	var ssBetween, ssWithin float64
	for _, g := range kept {
		m, _ := mstats.Mean(g)
		ssBetween += float64(len(g)) * (m - grand) * (m - grand)
		for _, v := range g {
			ssWithin += (v - m) * (v - m)
		}
	}

	res := stats.TestResult{Test: stats.TestANOVA, N: total, DF: dfBetween, PValue: 1.0}
	if ssWithin == 0 {
		return res, nil
	}
	res.Statistic = (ssBetween / dfBetween) / (ssWithin / dfWithin)
	res.PValue = FTestPValue(res.Statistic, dfBetween, dfWithin)
	return res, nil
}
