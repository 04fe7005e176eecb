// Package rng provides reproducible pseudo-random streams derived from a
// single root seed.
//
// Each subsystem that needs randomness derives its own Stream from the
// session's Root, so draws in one subsystem never shift the sequence seen by
// another. The generator is a 32-bit xorshift; it is fast, tiny and fully
// deterministic across platforms, which is all a replayable game needs.
package rng

// Well-known stream identifiers. Values are part of the replay contract:
// changing them changes every seeded playthrough.
const (
	StreamEncounters uint32 = 1
	StreamSkills     uint32 = 2
	StreamAutoplay   uint32 = 3
)

// fallbackState replaces an all-zero state, which is a fixed point of xorshift.
const fallbackState uint32 = 0x6D2B79F5

// Root is the session-wide seed every stream is derived from.
type Root uint32

// New returns a Root for the given seed.
func New(seed uint32) Root {
	return Root(seed)
}

// Seed returns the raw root seed.
func (r Root) Seed() uint32 {
	return uint32(r)
}

// Derive returns a fresh Stream for streamID. Deriving the same ID twice
// yields two streams that replay the same sequence.
func (r Root) Derive(streamID uint32) *Stream {
	return &Stream{state: Mix(uint32(r), streamID)}
}

// Stream is an independent xorshift32 sequence. Every read advances it.
type Stream struct {
	state uint32
}

// State returns the current internal word without advancing.
func (s *Stream) State() uint32 {
	return s.state
}

// Uint32 advances the stream and returns the new state.
func (s *Stream) Uint32() uint32 {
	x := s.state
	if x == 0 {
		x = fallbackState
	}
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	s.state = x
	return x
}

// IntRange returns a value in [lo, hi). A degenerate range (hi <= lo)
// returns lo without advancing the stream.
//
// The reduction is a plain modulo and therefore slightly biased toward low
// values when hi-lo does not divide 2^32. Ranges here are pool sizes, so the
// bias is negligible, and changing it would change every seeded replay.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	span := uint32(hi - lo)
	return lo + int(s.Uint32()%span)
}

// Mix hashes a root seed and a stream ID into a non-zero initial state.
func Mix(a, b uint32) uint32 {
	x := a
	x ^= b + 0x9E3779B9 + (x << 6) + (x >> 2)
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	if x == 0 {
		return 1
	}
	return x
}
