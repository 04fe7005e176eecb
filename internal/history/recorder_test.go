package history

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/session"
	"github.com/abhisek/masquerade/internal/skills"
	"github.com/abhisek/masquerade/internal/store"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	pool := make([]encounter.Encounter, 4)
	for i := range pool {
		pool[i] = encounter.Encounter{
			ID:      fmt.Sprintf("e%d", i),
			Options: [encounter.MaskCount]string{"a", "b", "c", "d"},
			Correct: encounter.Mask1,
		}
	}
	cfg := session.DefaultConfig()
	cfg.TotalDays = 2
	cfg.EncountersPerDay = []int{2}
	catalog := []skills.Definition{{Type: skills.Eloquence, Name: "Eloquence"}}

	s, err := session.New(cfg, pool, catalog, 42)
	require.NoError(t, err)
	return s
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRecorder_PersistsWholeGame(t *testing.T) {
	st := openStore(t)
	sess := newSession(t)
	rec := Attach(sess, st.EventRepo(), st.ResultRepo(), st.StatsRepo())
	defer rec.Detach()

	require.NoError(t, sess.Start())
	sess.SelectMask(encounter.Mask1)
	sess.SelectMask(encounter.Mask1)
	require.Equal(t, session.PhaseDayEnd, sess.Phase())
	require.NoError(t, sess.AcquireSkill(skills.Eloquence))
	require.NoError(t, sess.AdvanceDay())
	sess.SelectMask(encounter.Mask2) // retry granted
	sess.SelectMask(encounter.Mask2) // penalty
	sess.SelectMask(encounter.Mask1)
	require.Equal(t, session.PhaseGameEnd, sess.Phase())
	require.NoError(t, rec.Err())

	ctx := context.Background()
	answers, err := st.EventRepo().AnswersForSession(ctx, sess.ID())
	require.NoError(t, err)
	require.Len(t, answers, 6)
	assert.Equal(t, "wrong", answers[2].Outcome)
	assert.True(t, answers[3].Retry)
	assert.Equal(t, 2, answers[5].Day)

	picks, err := st.EventRepo().SkillPicks(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"eloquence": 1}, picks)

	recent, err := st.ResultRepo().Recent(ctx, store.QueryOpts{Limit: 1})
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, sess.ID(), recent[0].SessionID)
	assert.True(t, recent[0].Won)
	assert.Equal(t, 5, recent[0].TotalAnswers)
	assert.Equal(t, 3, recent[0].CorrectAnswers)
	assert.Equal(t, []string{"Eloquence"}, recent[0].Skills)

	last, err := st.StatsRepo().LastGame(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, store.LastGame{TotalAnswers: 5, CorrectAnswers: 3, GameWon: true}, *last)
}

func TestRecorder_Detach(t *testing.T) {
	st := openStore(t)
	sess := newSession(t)
	rec := Attach(sess, st.EventRepo(), nil, nil)
	rec.Detach()
	rec.Detach()

	require.NoError(t, sess.Start())
	sess.SelectMask(encounter.Mask1)

	answers, err := st.EventRepo().AnswersForSession(context.Background(), sess.ID())
	require.NoError(t, err)
	assert.Empty(t, answers)
	assert.Zero(t, sess.AnswerResult.Len())
}

type failingEvents struct{ store.EventRepo }

func (failingEvents) AppendAnswer(context.Context, store.AnswerEventData) error {
	return errors.New("disk full")
}

func TestRecorder_CollectsErrors(t *testing.T) {
	sess := newSession(t)
	rec := Attach(sess, failingEvents{}, nil, nil)
	defer rec.Detach()

	require.NoError(t, sess.Start())
	sess.SelectMask(encounter.Mask1)
	assert.ErrorContains(t, rec.Err(), "disk full")
	assert.Equal(t, 1, sess.State().TotalAnswers, "play continues")
}
