package common

import "hash/fnv"

// SeededRNG implements a Mulberry32 seeded pseudo-random number generator.
// Decorative randomness (particle layout, simulated equalizer bars) draws from
// it so a given seed always reproduces the same picture.
type SeededRNG struct {
	state       uint32
	initialSeed uint32
}

// NewSeededRNG creates a new seeded random number generator.
func NewSeededRNG(seed uint32) *SeededRNG {
	return &SeededRNG{
		state:       seed,
		initialSeed: seed,
	}
}

// SetSeed sets a new seed and resets the generator state.
func (r *SeededRNG) SetSeed(seed uint32) {
	r.state = seed
	r.initialSeed = seed
}

// Reset rewinds the generator to its initial seed.
func (r *SeededRNG) Reset() {
	r.state = r.initialSeed
}

// Seed returns the seed the generator was created or last re-seeded with.
func (r *SeededRNG) Seed() uint32 {
	return r.initialSeed
}

// Random returns the next value in [0, 1).
func (r *SeededRNG) Random() float64 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// RandomInt returns an integer in [lo, hi).
func (r *SeededRNG) RandomInt(lo, hi int) int {
	return int(r.Random()*float64(hi-lo)) + lo
}

// RandomFloat returns a float in [lo, hi).
func (r *SeededRNG) RandomFloat(lo, hi float64) float64 {
	return r.Random()*(hi-lo) + lo
}

// Centered returns a value in [-span/2, span/2).
func (r *SeededRNG) Centered(span float64) float64 {
	return (r.Random() - 0.5) * span
}

// StringSeed derives a stable seed from a name such as a theme ("dark", "light").
func StringSeed(name string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(name))
	return mix(h.Sum32())
}

// DeriveSeed mixes a base seed with a salt, used to give independent
// generators (particles, shapes) distinct streams from one theme seed.
func DeriveSeed(base uint32, salt int) uint32 {
	return mix(base ^ (uint32(salt) * 2654435761))
}

func mix(seed uint32) uint32 {
	seed = (seed ^ (seed >> 16)) * 0x85ebca6b
	seed = (seed ^ (seed >> 13)) * 0xc2b2ae35
	return seed ^ (seed >> 16)
}
