package rng

import (
	"errors"
	"fmt"
	"math"
	"unsafe"
)

// ErrInvalidInterval is returned by NewUniformFloat when a bound is not
// finite or the interval is empty.
var ErrInvalidInterval = errors.New("invalid interval")

// Float is the closed set of floating-point types UniformFloat supports.
type Float interface {
	float32 | float64
}

// UniformFloat samples floats of type T from a uniform distribution over the
// half-open interval [low, high). Like UniformInt it is immutable after
// construction and safe to reuse across any number of draws.
type UniformFloat[T Float] struct {
	low   T
	scale T
}

// NewUniformFloat builds a sampler for the interval [low, high). It returns
// ErrInvalidInterval unless both bounds are finite and high > low.
func NewUniformFloat[T Float](low, high T) (UniformFloat[T], error) {
	if !isFinite(low) || !isFinite(high) || high <= low {
		return UniformFloat[T]{}, fmt.Errorf("%w: %v..%v", ErrInvalidInterval, low, high)
	}
	return UniformFloat[T]{low: low, scale: high - low}, nil
}

// Sample draws one uniformly distributed value in [low, high).
func (u UniformFloat[T]) Sample(r *Rng) T {
	return u.low + u.scale*unitFloat[T](r)
}

func isFinite[T Float](v T) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// unitFloat draws a [0, 1) value at T's precision.
func unitFloat[T Float](r *Rng) T {
	var z T
	if unsafe.Sizeof(z) == 4 {
		return T(r.Float32())
	}
	return T(r.Float64())
}
