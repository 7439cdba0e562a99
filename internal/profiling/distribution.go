package profiling

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// Moments holds the location, spread and shape of a sample
type Moments struct {
	N        int
	Mean     float64
	StdDev   float64 // sample (n-1)
	Skewness float64 // adjusted Fisher-Pearson G1
	Kurtosis float64 // excess, bias corrected G2
}

// DistributionAnalyzer computes shape statistics over non-missing values
type DistributionAnalyzer struct{}

// NewDistributionAnalyzer creates a new distribution analyzer
func NewDistributionAnalyzer() *DistributionAnalyzer {
	return &DistributionAnalyzer{}
}

// Analyze computes moments. Degenerate samples yield neutral values rather than
// NaN: std 0 below two values, skewness 0 below three values or with zero
// variance, kurtosis 0 below four values or with zero variance.
func (da *DistributionAnalyzer) Analyze(data []float64) (Moments, error) {
	m := Moments{N: len(data)}

	mean, err := stats.Mean(data)
	if err != nil {
		return m, err
	}
	m.Mean = mean

	if len(data) < 2 {
		return m, nil
	}

	stdDev, err := stats.StandardDeviationSample(data)
	if err != nil {
		return m, err
	}
	m.StdDev = stdDev

	if stdDev == 0 {
		return m, nil
	}
	if len(data) >= 3 {
		m.Skewness = gonumstat.Skew(data, nil)
	}
	if len(data) >= 4 {
		m.Kurtosis = gonumstat.ExKurtosis(data, nil)
	}

	return m, nil
}

// Quantile computes the p-quantile of sorted data by linear interpolation
// between closest ranks (h = (n-1)p), the same estimator pandas uses.
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 || p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Round rounds half-to-even on the exact decimal expansion of x, matching
// Python's round(x, places).
func Round(x float64, places int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	v, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', places, 64), 64)
	if err != nil {
		return x
	}
	if v == 0 {
		return 0
	}
	return v
}
