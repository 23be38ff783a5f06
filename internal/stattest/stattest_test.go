package stattest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatisticPerfectlyUniform(t *testing.T) {
	// Every value appears exactly once: the EDF tracks the CDF exactly.
	sample := make([]uint64, 100)
	for i := range sample {
		sample[i] = uint64(i % 10)
	}
	assert.InDelta(t, 0, Statistic(sample, 10), 1e-12)
}

func TestStatisticDetectsConstantSample(t *testing.T) {
	sample := make([]uint64, 1000)
	statistic := Statistic(sample, 10)

	// All mass on the first value: the EDF jumps to 1 immediately while the
	// CDF is still 1/10.
	assert.InDelta(t, 0.9, statistic, 1e-12)
	assert.Greater(t, statistic, CriticalValue(len(sample)))
}

func TestCriticalValueShrinksWithSampleSize(t *testing.T) {
	assert.InDelta(t, 0.00163, CriticalValue(1_000_000), 1e-9)
	assert.Greater(t, CriticalValue(100), CriticalValue(10_000))
}

func TestChiSquaredBool(t *testing.T) {
	assert.Equal(t, 0.0, ChiSquaredBool(500, 1000))

	// A 60/40 split over a thousand trials is far beyond the critical value.
	assert.Greater(t, ChiSquaredBool(600, 1000), ChiSquaredBoolCritical)

	// A 502/498 split is comfortably inside it.
	assert.Less(t, ChiSquaredBool(502, 1000), ChiSquaredBoolCritical)
}
