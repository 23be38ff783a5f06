package rng

import (
	"encoding/binary"
	"math/bits"
	"unsafe"
)

// Uint128 is an unsigned 128-bit integer composed of two 64-bit words.
type Uint128 struct {
	Lo uint64
	Hi uint64
}

// Int128 is a signed 128-bit integer composed of two 64-bit words.
type Int128 struct {
	Lo uint64
	Hi int64
}

// Uint8 returns a uniformly distributed uint8, taken from the top bits of
// one draw. The low-order bits of xoshiro output are the weakest, so narrow
// values always keep the high-order bits.
func (r *Rng) Uint8() uint8 { return uint8(r.Uint64() >> 56) }

// Uint16 returns a uniformly distributed uint16.
func (r *Rng) Uint16() uint16 { return uint16(r.Uint64() >> 48) }

// Uint32 returns a uniformly distributed uint32.
func (r *Rng) Uint32() uint32 { return uint32(r.Uint64() >> 32) }

// Uint returns a uniformly distributed uint.
func (r *Rng) Uint() uint { return uint(r.Uint64() >> (64 - bits.UintSize)) }

// Uintptr returns a uniformly distributed uintptr.
func (r *Rng) Uintptr() uintptr { return uintptr(r.Uint64() >> (64 - bits.UintSize)) }

// Int8 returns a uniformly distributed int8.
func (r *Rng) Int8() int8 { return int8(r.Uint64() >> 56) }

// Int16 returns a uniformly distributed int16.
func (r *Rng) Int16() int16 { return int16(r.Uint64() >> 48) }

// Int32 returns a uniformly distributed int32.
func (r *Rng) Int32() int32 { return int32(r.Uint64() >> 32) }

// Int64 returns a uniformly distributed int64.
func (r *Rng) Int64() int64 { return int64(r.Uint64()) }

// Int returns a uniformly distributed int.
func (r *Rng) Int() int { return int(r.Uint64() >> (64 - bits.UintSize)) }

// Bool returns true and false with equal probability. It is derived from the
// sign of a 64-bit draw; the single value zero maps to false, a one-in-2^64
// asymmetry kept for bit-compatibility with the reference behaviour.
func (r *Rng) Bool() bool { return r.Int64() > 0 }

// Uint128 returns a uniformly distributed Uint128, composed from two
// consecutive draws, low word first.
func (r *Rng) Uint128() Uint128 {
	lo := r.Uint64()
	hi := r.Uint64()
	return Uint128{Lo: lo, Hi: hi}
}

// Int128 returns a uniformly distributed Int128, composed from two
// consecutive draws, low word first.
func (r *Rng) Int128() Int128 {
	lo := r.Uint64()
	hi := r.Uint64()
	return Int128{Lo: lo, Hi: int64(hi)}
}

const (
	float32Shift = 64 - 23 // keep exactly the mantissa width of a float32
	float64Shift = 64 - 52 // keep exactly the mantissa width of a float64

	float32Scale = 0x1p-23
	float64Scale = 0x1p-52
)

// Float32 returns a uniformly distributed float32 in [0, 1). The draw is
// truncated to the mantissa width before scaling, so every result is exactly
// representable and 1.0 is unreachable.
func (r *Rng) Float32() float32 {
	return float32(r.Uint64()>>float32Shift) * float32Scale
}

// Float64 returns a uniformly distributed float64 in [0, 1). The draw is
// truncated to the mantissa width before scaling, so every result is exactly
// representable and 1.0 is unreachable.
func (r *Rng) Float64() float64 {
	return float64(r.Uint64()>>float64Shift) * float64Scale
}

// Value is the closed set of types Random and Fill can generate: booleans,
// the fixed-width and pointer-sized integers, 128-bit integers and floats.
type Value interface {
	bool |
		int8 | int16 | int32 | int64 | int |
		uint8 | uint16 | uint32 | uint64 | uint | uintptr |
		Uint128 | Int128 |
		float32 | float64
}

// Random generates one value of type T from the stream:
//   - bool samples true and false with equal probability
//   - integers are uniform over the entire range of the type
//   - floats are uniform over the half-open interval [0, 1)
func Random[T Value](r *Rng) T {
	var v T
	switch p := any(&v).(type) {
	case *bool:
		*p = r.Bool()
	case *int8:
		*p = r.Int8()
	case *int16:
		*p = r.Int16()
	case *int32:
		*p = r.Int32()
	case *int64:
		*p = r.Int64()
	case *int:
		*p = r.Int()
	case *uint8:
		*p = r.Uint8()
	case *uint16:
		*p = r.Uint16()
	case *uint32:
		*p = r.Uint32()
	case *uint64:
		*p = r.Uint64()
	case *uint:
		*p = r.Uint()
	case *uintptr:
		*p = r.Uintptr()
	case *Uint128:
		*p = r.Uint128()
	case *Int128:
		*p = r.Int128()
	case *float32:
		*p = r.Float32()
	case *float64:
		*p = r.Float64()
	}
	return v
}

// Fill fills data with random values, in index order.
//
// For fixed-width integer element types on little-endian targets the slice is
// filled through FillBytes in one pass, so the raw bytes of the result equal
// the concatenated little-endian draws. That packs eight bytes of stream per
// draw and is therefore NOT equivalent to len(data) calls of Random, which
// consume one draw per element; it is a platform-dependent fast path, and
// other targets fall back to per-element generation.
func Fill[T Value](r *Rng, data []T) {
	if len(data) == 0 {
		return
	}
	var zero T
	switch any(zero).(type) {
	case int8, int16, int32, int64, int,
		uint8, uint16, uint32, uint64, uint, uintptr,
		Uint128, Int128:
		if hostLittleEndian {
			r.FillBytes(asByteSlice(data))
			return
		}
	}
	for i := range data {
		data[i] = Random[T](r)
	}
}

var hostLittleEndian = binary.NativeEndian.Uint16([]byte{0x01, 0x02}) == 0x0201

// asByteSlice reinterprets the slice's backing array as raw bytes. Only
// meaningful for element types whose in-memory layout matches their stream
// encoding, which the caller has already checked.
func asByteSlice[T Value](data []T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), len(data)*int(unsafe.Sizeof(data[0])))
}

// Random2 through Random12 generate fixed groups of values, drawing each
// element from left to right. The element order is part of the contract:
// Random2[A, B] consumes the stream exactly like Random[A] followed by
// Random[B].

func Random2[A, B Value](r *Rng) (A, B) {
	a := Random[A](r)
	b := Random[B](r)
	return a, b
}

func Random3[A, B, C Value](r *Rng) (A, B, C) {
	a, b := Random2[A, B](r)
	c := Random[C](r)
	return a, b, c
}

func Random4[A, B, C, D Value](r *Rng) (A, B, C, D) {
	a, b, c := Random3[A, B, C](r)
	d := Random[D](r)
	return a, b, c, d
}

func Random5[A, B, C, D, E Value](r *Rng) (A, B, C, D, E) {
	a, b, c, d := Random4[A, B, C, D](r)
	e := Random[E](r)
	return a, b, c, d, e
}

func Random6[A, B, C, D, E, F Value](r *Rng) (A, B, C, D, E, F) {
	a, b, c, d, e := Random5[A, B, C, D, E](r)
	f := Random[F](r)
	return a, b, c, d, e, f
}

func Random7[A, B, C, D, E, F, G Value](r *Rng) (A, B, C, D, E, F, G) {
	a, b, c, d, e, f := Random6[A, B, C, D, E, F](r)
	g := Random[G](r)
	return a, b, c, d, e, f, g
}

func Random8[A, B, C, D, E, F, G, H Value](r *Rng) (A, B, C, D, E, F, G, H) {
	a, b, c, d, e, f, g := Random7[A, B, C, D, E, F, G](r)
	h := Random[H](r)
	return a, b, c, d, e, f, g, h
}

func Random9[A, B, C, D, E, F, G, H, I Value](r *Rng) (A, B, C, D, E, F, G, H, I) {
	a, b, c, d, e, f, g, h := Random8[A, B, C, D, E, F, G, H](r)
	i := Random[I](r)
	return a, b, c, d, e, f, g, h, i
}

func Random10[A, B, C, D, E, F, G, H, I, J Value](r *Rng) (A, B, C, D, E, F, G, H, I, J) {
	a, b, c, d, e, f, g, h, i := Random9[A, B, C, D, E, F, G, H, I](r)
	j := Random[J](r)
	return a, b, c, d, e, f, g, h, i, j
}

func Random11[A, B, C, D, E, F, G, H, I, J, K Value](r *Rng) (A, B, C, D, E, F, G, H, I, J, K) {
	a, b, c, d, e, f, g, h, i, j := Random10[A, B, C, D, E, F, G, H, I, J](r)
	k := Random[K](r)
	return a, b, c, d, e, f, g, h, i, j, k
}

func Random12[A, B, C, D, E, F, G, H, I, J, K, L Value](r *Rng) (A, B, C, D, E, F, G, H, I, J, K, L) {
	a, b, c, d, e, f, g, h, i, j, k := Random11[A, B, C, D, E, F, G, H, I, J, K](r)
	l := Random[L](r)
	return a, b, c, d, e, f, g, h, i, j, k, l
}
