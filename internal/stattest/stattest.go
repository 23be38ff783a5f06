// Package stattest provides the statistical acceptance checks used to judge
// generator output: a Kolmogorov-Smirnov test for discrete uniform samples
// and a chi-squared test for boolean splits.
package stattest

import "math"

// Statistic computes the Kolmogorov-Smirnov statistic for a sample of
// offsets in [0, rangeSize): the largest absolute difference between the
// empirical distribution function and the uniform CDF.
func Statistic(sample []uint64, rangeSize int) float64 {
	edf := make([]float64, rangeSize)
	for _, x := range sample {
		edf[x]++
	}
	for i := 1; i < rangeSize; i++ {
		edf[i] += edf[i-1]
	}

	n := float64(len(sample))
	statistic := 0.0
	for i, cum := range edf {
		cdf := float64(i+1) / float64(rangeSize)
		if d := math.Abs(cum/n - cdf); d > statistic {
			statistic = d
		}
	}
	return statistic
}

// CriticalValue returns the Kolmogorov-Smirnov critical value at the 0.05
// significance level for the given sample size.
func CriticalValue(sampleSize int) float64 {
	return 1.63 / math.Sqrt(float64(sampleSize))
}

// ChiSquaredBool returns the chi-squared statistic of an observed true count
// against a fair coin.
func ChiSquaredBool(trues, total int) float64 {
	expected := float64(total) / 2
	dTrue := float64(trues) - expected
	dFalse := float64(total-trues) - expected
	return dTrue*dTrue/expected + dFalse*dFalse/expected
}

// ChiSquaredBoolCritical is the chi-squared critical value at the 0.05
// significance level with one degree of freedom.
const ChiSquaredBoolCritical = 3.841
