// Package rng implements the xoshiro256++ pseudo-random number generator
// together with unbiased sampling of integers, floats and aggregate values
// from its output stream.
//
// The generator follows the reference implementation by David Blackman and
// Sebastiano Vigna bit for bit; see https://prng.di.unimi.it/ and
// https://prng.di.unimi.it/xoshiro256plusplus.c. It is fast, has a 256-bit
// state and passes the usual statistical batteries, but it is NOT
// cryptographically secure.
//
// A *Rng is not safe for concurrent use. For parallel work, derive one
// generator per goroutine by cloning a base generator and calling Jump (or
// LongJump) a distinct number of times on each clone; the jump polynomials
// guarantee the resulting substreams never overlap.
package rng

import (
	"encoding/binary"
	"hash/maphash"
	"math/bits"
)

// SplitMix64 constants, shared with the seed mixer.
const (
	goldenRatio64 = 0x9e3779b97f4a7c15
	mixMul1       = 0xbf58476d1ce4e5b9
	mixMul2       = 0x94d049bb133111eb
)

// Rng is a xoshiro256++ generator. The zero value has all-zero state and is
// invalid; use FromSeed, SeedFromUint64 or FromEntropy to construct one.
type Rng struct {
	state [4]uint64
}

// FromSeed creates a generator from a 32-byte seed, interpreted as four
// little-endian 64-bit state words. An all-zero seed would produce the
// generator's single invalid state, so it is remapped to SeedFromUint64(0).
func FromSeed(seed [32]byte) *Rng {
	if seed == ([32]byte{}) {
		return SeedFromUint64(0)
	}
	return &Rng{state: [4]uint64{
		binary.LittleEndian.Uint64(seed[0:8]),
		binary.LittleEndian.Uint64(seed[8:16]),
		binary.LittleEndian.Uint64(seed[16:24]),
		binary.LittleEndian.Uint64(seed[24:32]),
	}}
}

// SeedFromUint64 creates a generator by expanding a 64-bit seed into four
// state words with SplitMix64. Any seed is valid, including zero; the mixer's
// avalanche behaviour keeps the resulting state well distributed and never
// all-zero.
func SeedFromUint64(seed uint64) *Rng {
	sm := splitMix64{state: seed}
	return &Rng{state: [4]uint64{sm.next(), sm.next(), sm.next(), sm.next()}}
}

// FromEntropy creates a generator seeded from process-level entropy. It
// hashes an incrementing counter with a process-random maphash key until the
// result is non-zero, then feeds that through SeedFromUint64.
func FromEntropy() *Rng {
	seed := maphash.MakeSeed()
	var buf [8]byte
	for counter := uint64(0); ; counter++ {
		binary.LittleEndian.PutUint64(buf[:], counter)
		if v := maphash.Bytes(seed, buf[:]); v != 0 {
			return SeedFromUint64(v)
		}
	}
}

// Clone returns an independent generator that continues the stream from the
// same point. Drawing from the clone does not affect the original.
func (r *Rng) Clone() *Rng {
	c := *r
	return &c
}

// Uint64 returns the next value of the raw 64-bit output stream.
func (r *Rng) Uint64() uint64 {
	result := bits.RotateLeft64(r.state[0]+r.state[3], 23) + r.state[0]

	t := r.state[1] << 17

	r.state[2] ^= r.state[0]
	r.state[3] ^= r.state[1]
	r.state[1] ^= r.state[2]
	r.state[0] ^= r.state[3]

	r.state[2] ^= t

	r.state[3] = bits.RotateLeft64(r.state[3], 45)

	return result
}

// FillBytes fills dest with random bytes, writing each draw in little-endian
// order. It consumes exactly ceil(len(dest)/8) draws: full 8-byte chunks take
// one draw each, and a trailing partial chunk takes one more draw of which
// only the leading bytes are used.
func (r *Rng) FillBytes(dest []byte) {
	for len(dest) >= 8 {
		binary.LittleEndian.PutUint64(dest, r.Uint64())
		dest = dest[8:]
	}
	if len(dest) > 0 {
		var tail [8]byte
		binary.LittleEndian.PutUint64(tail[:], r.Uint64())
		copy(dest, tail[:])
	}
}

// Jump polynomials from the reference implementation.
var (
	jumpPoly     = [4]uint64{0x180ec6d33cfd0aba, 0xd5a61266f0c9392c, 0xa9582618e03fc9aa, 0x39abdc4529b1661c}
	longJumpPoly = [4]uint64{0x76e15d3efefdcbbf, 0xc5004e441c522fb3, 0x77710069854ee241, 0x39109bb02acbe635}
)

// Jump advances the generator as if Uint64 had been called 2^128 times. It
// can be used to generate 2^128 non-overlapping substreams for parallel use.
func (r *Rng) Jump() {
	r.jump(&jumpPoly)
}

// LongJump advances the generator as if Uint64 had been called 2^192 times,
// for coarser stream partitioning than Jump.
func (r *Rng) LongJump() {
	r.jump(&longJumpPoly)
}

// jump multiplies the state by the given polynomial over GF(2) using binary
// exponentiation: for every set bit the accumulator absorbs the current
// state, and the generator advances once per bit regardless.
func (r *Rng) jump(poly *[4]uint64) {
	var acc [4]uint64
	for _, word := range poly {
		for bit := 0; bit < 64; bit++ {
			if word&(1<<bit) != 0 {
				acc[0] ^= r.state[0]
				acc[1] ^= r.state[1]
				acc[2] ^= r.state[2]
				acc[3] ^= r.state[3]
			}
			r.Uint64()
		}
	}
	r.state = acc
}

// splitMix64 is the SplitMix64 generator used to expand scalar seeds into
// xoshiro state, translated from https://xorshift.di.unimi.it/splitmix64.c.
type splitMix64 struct {
	state uint64
}

func (s *splitMix64) next() uint64 {
	s.state += goldenRatio64

	z := s.state
	z = (z ^ (z >> 30)) * mixMul1
	z = (z ^ (z >> 27)) * mixMul2
	return z ^ (z >> 31)
}
