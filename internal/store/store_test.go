package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked with a file-based DB below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDBUsesWAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	tables := []string{
		"global_sequence",
		"game_results",
		"answer_events",
		"skill_events",
		"llm_request_events",
		"stats",
	}
	for _, table := range tables {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestResultRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.ResultRepo()
	ctx := context.Background()

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Totals{}, totals)

	require.NoError(t, repo.Save(ctx, GameResult{
		SessionID: "a", Seed: 42, Won: false, Day: 2, TotalAnswers: 7, CorrectAnswers: 3,
	}))
	require.NoError(t, repo.Save(ctx, GameResult{
		SessionID: "b", Seed: 0xFFFFFFFF, Won: true, Day: 3, Health: 5,
		TotalAnswers: 12, CorrectAnswers: 10, Skills: []string{"Power Bank x2", "Eloquence"},
	}))
	assert.Error(t, repo.Save(ctx, GameResult{SessionID: "a"}), "one result per session")

	recent, err := repo.Recent(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "b", recent[0].SessionID, "newest first")
	assert.Equal(t, uint32(0xFFFFFFFF), recent[0].Seed)
	assert.Equal(t, []string{"Power Bank x2", "Eloquence"}, recent[0].Skills)
	assert.True(t, recent[0].Won)
	assert.False(t, recent[0].CreatedAt.IsZero())
	assert.Greater(t, recent[0].Sequence, recent[1].Sequence)

	limited, err := repo.Recent(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	totals, err = repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, Totals{Games: 2, Wins: 1, TotalAnswers: 19, CorrectAnswers: 13, BestDay: 3}, totals)
}

func TestEventRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	answers := []AnswerEventData{
		{SessionID: "s1", Day: 1, EncounterID: "e1", Mask: 1, Outcome: "correct", Health: 5},
		{SessionID: "s1", Day: 1, EncounterID: "e2", Mask: 0, Outcome: "wrong", Health: 5},
		{SessionID: "s1", Day: 1, EncounterID: "e2", Mask: 0, Outcome: "wrong", Retry: true, Health: 5},
		{SessionID: "s2", Day: 1, EncounterID: "e1", Outcome: "timeout", Health: 3},
	}
	for _, a := range answers {
		require.NoError(t, repo.AppendAnswer(ctx, a))
	}
	require.NoError(t, repo.AppendSkill(ctx, SkillEventData{SessionID: "s1", Day: 1, SkillType: "eloquence", Stacks: 1}))

	got, err := repo.AnswersForSession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "e1", got[0].EncounterID)
	assert.True(t, got[2].Retry)
	assert.Less(t, got[0].Sequence, got[1].Sequence)

	counts, err := repo.OutcomeCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"correct": 1, "wrong": 1, "timeout": 1}, counts, "retry rows are not counted")

	picks, err := repo.SkillPicks(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"eloquence": 1}, picks)
}

func TestLLMUsage(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m", Purpose: "draft", InputTokens: 10, OutputTokens: 20, Success: true,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "m", Purpose: "draft", InputTokens: 5, ErrorMessage: "boom",
	}))

	u, err := repo.LLMUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, LLMUsage{Requests: 2, Failures: 1, InputTokens: 15, OutputTokens: 20}, u)

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "other", Purpose: "draft", InputTokens: 1, OutputTokens: 2, LatencyMs: 40, Success: true,
	}))
	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "m", byModel[0].Model)
	assert.Equal(t, LLMUsage{Requests: 2, Failures: 1, InputTokens: 15, OutputTokens: 20}, byModel[0].LLMUsage)
	assert.Equal(t, "other", byModel[1].Model)
	assert.Equal(t, int64(40), byModel[1].AvgLatencyMs)
}

func TestStatsRepo(t *testing.T) {
	s := openTestStore(t)
	repo := s.StatsRepo()
	ctx := context.Background()

	g, err := repo.LastGame(ctx)
	require.NoError(t, err)
	assert.Nil(t, g)

	require.NoError(t, repo.SaveLastGame(ctx, LastGame{TotalAnswers: 4, CorrectAnswers: 1}))
	require.NoError(t, repo.SaveLastGame(ctx, LastGame{TotalAnswers: 12, CorrectAnswers: 9, GameWon: true}))

	g, err = repo.LastGame(ctx)
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, LastGame{TotalAnswers: 12, CorrectAnswers: 9, GameWon: true}, *g)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Sequence 1 goes to the result; the stat block takes none.
	require.NoError(t, s.ResultRepo().Save(ctx, GameResult{SessionID: "x"}))
	require.NoError(t, s.StatsRepo().SaveLastGame(ctx, LastGame{TotalAnswers: 1}))
	require.NoError(t, s.Reset(ctx))

	totals, err := s.ResultRepo().Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, totals.Games)

	g, err := s.StatsRepo().LastGame(ctx)
	require.NoError(t, err)
	assert.Nil(t, g)

	seq, err := s.seq.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq, "sequence survives reset")
}

func TestResetClearsEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAnswer(ctx, AnswerEventData{SessionID: "s", Day: 1, EncounterID: "e", Outcome: "correct"}))
	require.NoError(t, repo.AppendSkill(ctx, SkillEventData{SessionID: "s", Day: 1, SkillType: "battery", Stacks: 1}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "m", Success: true}))
	require.NoError(t, s.Reset(ctx))

	n, err := s.Client().AnswerEvent.Query().Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	picks, err := repo.SkillPicks(ctx)
	require.NoError(t, err)
	assert.Empty(t, picks)

	u, err := repo.LLMUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, LLMUsage{}, u)

	require.NoError(t, repo.AppendAnswer(ctx, AnswerEventData{SessionID: "s", Day: 1, EncounterID: "e", Outcome: "wrong"}))
	got, err := repo.AnswersForSession(ctx, "s")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].Sequence)
}
