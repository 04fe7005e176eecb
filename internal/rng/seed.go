package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed draws a non-zero root seed from crypto/rand. Used when the player
// does not pin a seed.
func NewSeed() (uint32, error) {
	var b [4]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := binary.LittleEndian.Uint32(b[:])
	if seed == 0 {
		seed = 1
	}
	return seed, nil
}
