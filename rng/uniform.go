package rng

import (
	"errors"
	"fmt"
	"math/bits"
	"unsafe"
)

// ErrEmptyRange is returned by NewUniformInt when the normalized bounds
// describe a range with zero or negative width.
var ErrEmptyRange = errors.New("empty range")

// Integer is the closed set of integer types UniformInt supports.
type Integer interface {
	int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint | uintptr
}

type boundKind int

const (
	boundIncl boundKind = iota
	boundExcl
	boundOpen
)

// Bound is one end of an integer range.
type Bound[T Integer] struct {
	kind  boundKind
	value T
}

// Incl returns a bound that includes v.
func Incl[T Integer](v T) Bound[T] { return Bound[T]{kind: boundIncl, value: v} }

// Excl returns a bound that excludes v.
func Excl[T Integer](v T) Bound[T] { return Bound[T]{kind: boundExcl, value: v} }

// Unbounded returns a bound at the corresponding extreme of the type.
func Unbounded[T Integer]() Bound[T] { return Bound[T]{kind: boundOpen} }

func (b Bound[T]) String() string {
	switch b.kind {
	case boundIncl:
		return fmt.Sprintf("[%v]", b.value)
	case boundExcl:
		return fmt.Sprintf("(%v)", b.value)
	default:
		return "unbounded"
	}
}

// UniformInt samples integers of type T from a uniform distribution over a
// fixed range. It is immutable after construction: all validation and
// bias-correction setup happens in NewUniformInt, and Sample only runs the
// debiased draw. A UniformInt may be reused for any number of draws and read
// from multiple goroutines.
//
// The zero value samples the full range of T.
type UniformInt[T Integer] struct {
	lower T
	size  uint64 // number of values in the range; 0 means the full type range
}

// NewUniformInt builds a sampler for the range described by the two bounds.
// It returns ErrEmptyRange when the normalized bounds contain fewer than two
// values, including bounds that cannot be normalized without overflowing T.
// A range covering the whole type is detected and sampled through the raw
// full-width path with no bias-correction overhead.
func NewUniformInt[T Integer](lower, upper Bound[T]) (UniformInt[T], error) {
	var lo, hi T
	switch lower.kind {
	case boundIncl:
		lo = lower.value
	case boundExcl:
		lo = lower.value + 1
		if lo < lower.value { // wrapped past the type maximum
			return UniformInt[T]{}, emptyRangeError(lower, upper)
		}
	case boundOpen:
		lo = minValue[T]()
	}
	switch upper.kind {
	case boundIncl:
		hi = upper.value
	case boundExcl:
		hi = upper.value - 1
		if hi > upper.value { // wrapped past the type minimum
			return UniformInt[T]{}, emptyRangeError(lower, upper)
		}
	case boundOpen:
		hi = maxValue[T]()
	}

	if lo >= hi {
		return UniformInt[T]{}, emptyRangeError(lower, upper)
	}

	mask := ^uint64(0) >> (64 - typeBits[T]())
	width := (uint64(hi) - uint64(lo)) & mask
	if width == mask {
		// Full type range: no modulus fits, sample raw draws instead.
		return UniformInt[T]{}, nil
	}
	return UniformInt[T]{lower: lo, size: width + 1}, nil
}

func emptyRangeError[T Integer](lower, upper Bound[T]) error {
	return fmt.Errorf("%w: %v..%v", ErrEmptyRange, lower, upper)
}

// Sample draws one uniformly distributed value. It never fails and performs
// no validation; an invalid range cannot reach this point.
func (u UniformInt[T]) Sample(r *Rng) T {
	if u.size == 0 {
		return fullWidth[T](r)
	}
	return u.lower + T(sampleUint64InRange(r, u.size))
}

// fullWidth draws a value covering the entire range of T from the top bits of
// one draw.
func fullWidth[T Integer](r *Rng) T {
	return T(r.Uint64() >> (64 - typeBits[T]()))
}

// sampleUint64InRange returns a uniform value in [0, n) with no modulo bias,
// using Lemire's widening-multiply method: the high word of x*n is the
// candidate, and a draw is biased only when the low word lands below n. In
// that case redraw until the low word clears the rejection threshold
// (-n mod 2^64). The slow path is entered with probability n/2^64, so almost
// every sample costs exactly one draw.
func sampleUint64InRange(r *Rng, n uint64) uint64 {
	x := r.Uint64()
	hi, lo := bits.Mul64(x, n)
	if lo < n {
		threshold := -n
		for {
			x = r.Uint64()
			hi, lo = bits.Mul64(x, n)
			if lo >= threshold {
				break
			}
		}
	}
	return hi
}

func typeBits[T Integer]() int {
	var z T
	return int(unsafe.Sizeof(z)) * 8
}

func minValue[T Integer]() T {
	var allOnes T
	allOnes--
	if allOnes > 0 { // unsigned
		return 0
	}
	one := T(1)
	return one << (typeBits[T]() - 1)
}

func maxValue[T Integer]() T {
	var allOnes T
	allOnes--
	if allOnes > 0 { // unsigned
		return allOnes
	}
	return allOnes ^ minValue[T]()
}
