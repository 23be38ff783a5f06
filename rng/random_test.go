package rng

import (
	"math/bits"
	"testing"

	"github.com/lox/xoshiro/internal/stattest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNarrowIntegersUseTopBits(t *testing.T) {
	r := SeedFromUint64(5)
	raw := r.Clone()

	assert.Equal(t, uint8(raw.Uint64()>>56), r.Uint8())
	assert.Equal(t, uint16(raw.Uint64()>>48), r.Uint16())
	assert.Equal(t, uint32(raw.Uint64()>>32), r.Uint32())
	assert.Equal(t, uint(raw.Uint64()>>(64-bits.UintSize)), r.Uint())
	assert.Equal(t, uintptr(raw.Uint64()>>(64-bits.UintSize)), r.Uintptr())
	assert.Equal(t, int8(raw.Uint64()>>56), r.Int8())
	assert.Equal(t, int16(raw.Uint64()>>48), r.Int16())
	assert.Equal(t, int32(raw.Uint64()>>32), r.Int32())
	assert.Equal(t, int64(raw.Uint64()), r.Int64())
	assert.Equal(t, int(raw.Uint64()>>(64-bits.UintSize)), r.Int())
}

func TestBoolFollowsSignOfDraw(t *testing.T) {
	r := SeedFromUint64(5)
	raw := r.Clone()

	for i := 0; i < 1000; i++ {
		want := int64(raw.Uint64()) > 0
		require.Equal(t, want, r.Bool(), "draw %d", i)
	}
}

func TestBoolChiSquared(t *testing.T) {
	const sampleSize = 1_000_000

	r := FromEntropy()
	trues := 0
	for i := 0; i < sampleSize; i++ {
		if r.Bool() {
			trues++
		}
	}

	chi := stattest.ChiSquaredBool(trues, sampleSize)
	assert.Less(t, chi, stattest.ChiSquaredBoolCritical)
}

func Test128BitComposition(t *testing.T) {
	r := SeedFromUint64(5)
	raw := r.Clone()

	lo := raw.Uint64()
	hi := raw.Uint64()
	assert.Equal(t, Uint128{Lo: lo, Hi: hi}, r.Uint128())

	lo = raw.Uint64()
	hi = raw.Uint64()
	assert.Equal(t, Int128{Lo: lo, Hi: int64(hi)}, r.Int128())
}

func TestFloatsStayInUnitInterval(t *testing.T) {
	const draws = 10_000_000

	r := FromEntropy()
	for i := 0; i < draws; i++ {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64 out of [0, 1): %v", f)
		}
	}
	for i := 0; i < draws; i++ {
		f := r.Float32()
		if f < 0 || f >= 1 {
			t.Fatalf("Float32 out of [0, 1): %v", f)
		}
	}
}

func TestFloatScalingDiscardsLowBits(t *testing.T) {
	r := SeedFromUint64(5)
	raw := r.Clone()
	assert.Equal(t, float64(raw.Uint64()>>12)*0x1p-52, r.Float64())

	r32 := SeedFromUint64(5)
	raw = r32.Clone()
	assert.Equal(t, float32(raw.Uint64()>>41)*0x1p-23, r32.Float32())

	// The largest possible mantissa value must scale strictly below 1.
	assert.Less(t, float64(uint64(1)<<52-1)*0x1p-52, 1.0)
	assert.Less(t, float32(uint64(1)<<23-1)*0x1p-23, float32(1.0))
}

func TestRandomMatchesTypedMethods(t *testing.T) {
	r := SeedFromUint64(5)
	raw := r.Clone()

	assert.Equal(t, raw.Uint32(), Random[uint32](r))
	assert.Equal(t, raw.Int8(), Random[int8](r))
	assert.Equal(t, raw.Float64(), Random[float64](r))
	assert.Equal(t, raw.Bool(), Random[bool](r))
	assert.Equal(t, raw.Uint128(), Random[Uint128](r))
}

func TestRandomTuplesDrawLeftToRight(t *testing.T) {
	r := SeedFromUint64(5)
	raw := r.Clone()

	wantA := raw.Uint8()
	wantB := raw.Float64()
	wantC := raw.Int64()
	a, b, c := Random3[uint8, float64, int64](r)
	assert.Equal(t, wantA, a)
	assert.Equal(t, wantB, b)
	assert.Equal(t, wantC, c)

	// A 12-element group consumes twelve draws in order.
	raw = r.Clone()
	want := drawN(raw, 12)
	g1, g2, g3, g4, g5, g6, g7, g8, g9, g10, g11, g12 := Random12[uint64, uint64, uint64, uint64, uint64, uint64, uint64, uint64, uint64, uint64, uint64, uint64](r)
	got := []uint64{g1, g2, g3, g4, g5, g6, g7, g8, g9, g10, g11, g12}
	assert.Equal(t, want, got)
}

func TestFillIntegersMatchesFillBytes(t *testing.T) {
	if !hostLittleEndian {
		t.Skip("bulk fill equivalence only holds on little-endian targets")
	}

	r := SeedFromUint64(5)
	raw := r.Clone()

	data := make([]uint32, 11)
	Fill(r, data)

	buf := make([]byte, 11*4)
	raw.FillBytes(buf)
	assert.Equal(t, buf, asByteSlice(data))

	// Element count not a multiple of a draw still leaves both generators at
	// the same position.
	assert.Equal(t, raw.Uint64(), r.Uint64())
}

func TestFillFloatsAndBoolsDrawPerElement(t *testing.T) {
	r := SeedFromUint64(5)
	raw := r.Clone()

	floats := make([]float64, 9)
	Fill(r, floats)
	for i, f := range floats {
		require.Equal(t, raw.Float64(), f, "index %d", i)
	}

	bools := make([]bool, 9)
	Fill(r, bools)
	for i, b := range bools {
		require.Equal(t, raw.Bool(), b, "index %d", i)
	}
}
