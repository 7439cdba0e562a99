package inference

import (
	"math"
	"sort"

	"edakit/domain/core"
	"edakit/domain/stats"

	gonumstat "gonum.org/v1/gonum/stat"
)

// Pearson computes the linear correlation coefficient with a two-sided
// t-distribution p-value. A constant input yields r = 0, p = 1.
func Pearson(x, y []float64) (stats.TestResult, error) {
	if err := checkPaired(x, y); err != nil {
		return stats.TestResult{}, err
	}
	r := pearson(x, y)
	return stats.TestResult{
		Test:      stats.TestPearson,
		Statistic: r,
		PValue:    correlationP(r, x, y),
		DF:        float64(len(x) - 2),
		N:         len(x),
	}, nil
}

// Spearman computes Pearson's r over average ranks
func Spearman(x, y []float64) (stats.TestResult, error) {
	if err := checkPaired(x, y); err != nil {
		return stats.TestResult{}, err
	}
	rx, ry := Ranks(x), Ranks(y)
	rho := pearson(rx, ry)
	return stats.TestResult{
		Test:      stats.TestSpearman,
		Statistic: rho,
		PValue:    correlationP(rho, rx, ry),
		DF:        float64(len(x) - 2),
		N:         len(x),
	}, nil
}

// PointBiserial correlates a numeric variable with a 0/1 coded binary one
func PointBiserial(x, binary []float64) (stats.TestResult, error) {
	if err := checkPaired(x, binary); err != nil {
		return stats.TestResult{}, err
	}
	for _, v := range binary {
		if v != 0 && v != 1 {
			return stats.TestResult{}, core.ErrNotBinary
		}
	}
	res, err := Pearson(x, binary)
	if err != nil {
		return stats.TestResult{}, err
	}
	res.Test = stats.TestPointBiserial
	return res, nil
}

// Kendall computes tau-b with the tie-corrected asymptotic normal p-value.
// Small tie-free samples also use the normal approximation, never the exact
// null distribution, so their p-values can differ from an exact test.
func Kendall(x, y []float64) (stats.TestResult, error) {
	if err := checkPaired(x, y); err != nil {
		return stats.TestResult{}, err
	}
	n := len(x)
	res := stats.TestResult{Test: stats.TestKendall, N: n, PValue: 1.0}

	var con, dis float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			s := sign(x[i]-x[j]) * sign(y[i]-y[j])
			switch {
			case s > 0:
				con++
			case s < 0:
				dis++
			}
		}
	}

	xt := countTies(x)
	yt := countTies(y)
	total := float64(n) * float64(n-1) / 2
	if total == xt.pairs || total == yt.pairs {
		return res, nil
	}

	diff := con - dis
	res.Statistic = diff / math.Sqrt(total-xt.pairs) / math.Sqrt(total-yt.pairs)

	m := float64(n) * float64(n-1)
	nf := float64(n)
	variance := (m*(2*nf+5)-xt.v1-yt.v1)/18 +
		(2*xt.pairs*yt.pairs)/m +
		xt.v0*yt.v0/(9*m*(nf-2))
	if variance > 0 {
		res.PValue = NormalPValue(diff / math.Sqrt(variance))
	}
	return res, nil
}

// Ranks assigns 1-based ranks, averaging over ties
func Ranks(data []float64) []float64 {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return data[idx[a]] < data[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		avg := float64(i+1) + float64(j-i-1)/2
		for k := i; k < j; k++ {
			ranks[idx[k]] = avg
		}
		i = j
	}
	return ranks
}

type tieCounts struct {
	pairs float64 // Σ t(t-1)/2
	v0    float64 // Σ t(t-1)(t-2)
	v1    float64 // Σ t(t-1)(2t+5)
}

func countTies(data []float64) tieCounts {
	counts := make(map[float64]int)
	for _, v := range data {
		counts[v]++
	}
	var tc tieCounts
	for _, c := range counts {
		if c < 2 {
			continue
		}
		t := float64(c)
		tc.pairs += t * (t - 1) / 2
		tc.v0 += t * (t - 1) * (t - 2)
		tc.v1 += t * (t - 1) * (2*t + 5)
	}
	return tc
}

func pearson(x, y []float64) float64 {
	if isConstant(x) || isConstant(y) {
		return 0
	}
	r := gonumstat.Correlation(x, y, nil)
	return math.Max(-1, math.Min(1, r))
}

func correlationP(r float64, x, y []float64) float64 {
	if isConstant(x) || isConstant(y) {
		return 1.0
	}
	return CorrelationPValue(r, len(x))
}

func checkPaired(x, y []float64) error {
	if len(x) != len(y) {
		return core.NewLengthMismatchError("y", len(y), len(x))
	}
	if len(x) < 3 {
		return core.ErrInsufficientData
	}
	if !finite(x) || !finite(y) {
		return core.ErrNonFinite
	}
	return nil
}

func finite(data []float64) bool {
	for _, v := range data {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func isConstant(data []float64) bool {
	for _, v := range data[1:] {
		if v != data[0] {
			return false
		}
	}
	return true
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
