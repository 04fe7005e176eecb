package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMix_KnownValues(t *testing.T) {
	tests := []struct {
		root, stream uint32
		want         uint32
	}{
		{42, 1, 0x13396bc0},
		{42, 2, 0x31617464},
		{0, 0, 0x01fce552},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Mix(tt.root, tt.stream), "Mix(%d, %d)", tt.root, tt.stream)
	}
}

func TestStream_KnownSequence(t *testing.T) {
	s := New(42).Derive(StreamEncounters)
	want := []uint32{4134529248, 1695434361, 367469497}
	for i, w := range want {
		assert.Equal(t, w, s.Uint32(), "draw %d", i)
	}
}

func TestStream_ZeroStateFallsBack(t *testing.T) {
	s := &Stream{}
	assert.Equal(t, uint32(1085196063), s.Uint32())
	assert.NotZero(t, s.State())
}

func TestDerive_SameIDReplays(t *testing.T) {
	root := New(1234)
	a := root.Derive(StreamSkills)
	b := root.Derive(StreamSkills)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint32(), b.Uint32(), "draw %d", i)
	}
}

func TestDerive_StreamsIndependent(t *testing.T) {
	root := New(42)

	// Baseline skill draws with no encounter activity.
	skills := root.Derive(StreamSkills)
	var baseline []int
	for i := 0; i < 20; i++ {
		baseline = append(baseline, skills.IntRange(0, 10))
	}

	// Burn encounter draws first; the skill stream must not notice.
	enc := root.Derive(StreamEncounters)
	for i := 0; i < 500; i++ {
		enc.Uint32()
	}
	skills = root.Derive(StreamSkills)
	for i, want := range baseline {
		assert.Equal(t, want, skills.IntRange(0, 10), "draw %d", i)
	}
}

func TestDerive_DistinctStreamsDiffer(t *testing.T) {
	root := New(7)
	a := root.Derive(StreamEncounters)
	b := root.Derive(StreamSkills)
	assert.NotEqual(t, a.State(), b.State())

	same := 0
	for i := 0; i < 64; i++ {
		if a.Uint32() == b.Uint32() {
			same++
		}
	}
	assert.Less(t, same, 2)
}

func TestIntRange(t *testing.T) {
	t.Run("degenerate range returns lo without advancing", func(t *testing.T) {
		s := New(9).Derive(1)
		before := s.State()
		assert.Equal(t, 5, s.IntRange(5, 5))
		assert.Equal(t, 5, s.IntRange(5, 2))
		assert.Equal(t, before, s.State())
	})

	t.Run("values stay in range", func(t *testing.T) {
		s := New(99).Derive(StreamEncounters)
		for i := 0; i < 1000; i++ {
			v := s.IntRange(-3, 4)
			require.GreaterOrEqual(t, v, -3)
			require.Less(t, v, 4)
		}
	})

	t.Run("modulo reduction of the next draw", func(t *testing.T) {
		s := New(42).Derive(StreamEncounters)
		assert.Equal(t, int(4134529248%7), s.IntRange(0, 7))
	})
}

func TestNewSeed_NonZero(t *testing.T) {
	for i := 0; i < 10; i++ {
		seed, err := NewSeed()
		require.NoError(t, err)
		assert.NotZero(t, seed)
	}
}
