package autoplay

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masquerade/internal/content"
	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/session"
	"github.com/abhisek/masquerade/internal/skills"
)

func testPool(n int, correct encounter.Mask) []encounter.Encounter {
	pool := make([]encounter.Encounter, n)
	for i := range pool {
		pool[i] = encounter.Encounter{
			ID:       fmt.Sprintf("enc-%02d", i),
			Dialogue: fmt.Sprintf("line %d", i),
			Options:  [encounter.MaskCount]string{"a", "b", "c", "d"},
			Feedback: [encounter.MaskCount]string{"fa", "fb", "fc", "fd"},
			Correct:  correct,
			Neutral:  []encounter.Mask{encounter.Mask2},
		}
	}
	return pool
}

func testConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.TotalDays = 2
	cfg.EncountersPerDay = []int{3}
	cfg.DecisionTimes = []time.Duration{5 * time.Second}
	cfg.StartHealth = 4
	cfg.MaxHealth = 4
	cfg.Penalty = 1
	return cfg
}

var catalog = []skills.Definition{{Type: skills.InnerDeduction, Name: "Inner Deduction"}}

func newSession(t *testing.T, correct encounter.Mask, seed uint32) *session.Session {
	t.Helper()
	s, err := session.New(testConfig(), testPool(8, correct), catalog, seed)
	require.NoError(t, err)
	return s
}

func TestParseStrategy(t *testing.T) {
	st, err := ParseStrategy("Random")
	require.NoError(t, err)
	assert.Equal(t, StrategyRandom, st)

	_, err = ParseStrategy("psychic")
	assert.Error(t, err)
}

func TestRun_CorrectWins(t *testing.T) {
	var out bytes.Buffer
	res, err := New(newSession(t, encounter.Mask3, 1), StrategyCorrect, &out).Run()
	require.NoError(t, err)

	assert.True(t, res.Won)
	assert.Equal(t, 6, res.TotalAnswers)
	assert.Equal(t, 6, res.CorrectAnswers)
	assert.Equal(t, []string{"Inner Deduction"}, res.Skills)

	log := out.String()
	assert.Contains(t, log, "seed 1 strategy correct\n")
	assert.Contains(t, log, "skill offer inner_deduction\n")
	assert.Contains(t, log, "skill acquired inner_deduction stacks=1\n")
	assert.Contains(t, log, "day 2\n")
	assert.True(t, strings.HasSuffix(log, "game won day=2 health=4 answers=6 correct=6 skills=[Inner Deduction]\n"), log)
}

func TestRun_FirstLosesOnWrongMask(t *testing.T) {
	var out bytes.Buffer
	res, err := New(newSession(t, encounter.Mask3, 1), StrategyFirst, &out).Run()
	require.NoError(t, err)

	assert.False(t, res.Won)
	assert.Zero(t, res.CorrectAnswers)
	assert.Contains(t, out.String(), "answer mask1 wrong retry=false \"fa\"\n")
	assert.Contains(t, out.String(), "game over")
}

func TestRun_IdleTimesOut(t *testing.T) {
	var out bytes.Buffer
	res, err := New(newSession(t, encounter.Mask1, 1), StrategyIdle, &out).Run()
	require.NoError(t, err)

	assert.False(t, res.Won)
	assert.Equal(t, 2, res.Day)
	assert.Equal(t, 4, res.TotalAnswers)
	assert.Contains(t, out.String(), "answer - timeout")
	assert.Contains(t, out.String(), "time 0s\n")
}

func TestRun_RandomNeverPicksRuledOutMask(t *testing.T) {
	// Masks 3 and 4 are plain wrong. Once the hint is held on day 2 the
	// random player only chooses between the correct and neutral masks.
	for seed := uint32(1); seed <= 20; seed++ {
		var out bytes.Buffer
		_, err := New(newSession(t, encounter.Mask1, seed), StrategyRandom, &out).Run()
		require.NoError(t, err)

		_, day2, found := strings.Cut(out.String(), "day 2\n")
		if !found {
			continue
		}
		assert.NotContains(t, day2, "answer mask3", "seed %d", seed)
		assert.NotContains(t, day2, "answer mask4", "seed %d", seed)
	}
}

func TestRun_DeterministicTranscript(t *testing.T) {
	pack, err := content.Default()
	require.NoError(t, err)

	run := func() string {
		s, err := session.New(session.DefaultConfig(), pack.Encounters, pack.Skills, 42)
		require.NoError(t, err)
		var out bytes.Buffer
		_, err = New(s, StrategyRandom, &out).Run()
		require.NoError(t, err)
		return out.String()
	}
	first := run()
	assert.NotEmpty(t, first)
	assert.Equal(t, first, run())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRun_WriteErrorStops(t *testing.T) {
	_, err := New(newSession(t, encounter.Mask1, 1), StrategyCorrect, failWriter{}).Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
