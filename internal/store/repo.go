package store

import (
	"context"
	"time"
)

// QueryOpts configures queries with filtering and pagination.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	After int64 // sequence > After
}

// GameResult is one finished game.
type GameResult struct {
	Sequence       int64
	SessionID      string
	Seed           uint32
	Won            bool
	Day            int
	Health         int
	TotalAnswers   int
	CorrectAnswers int
	Skills         []string
	CreatedAt      time.Time
}

// Accuracy returns the share of correct answers.
func (g GameResult) Accuracy() float64 {
	if g.TotalAnswers == 0 {
		return 0
	}
	return float64(g.CorrectAnswers) / float64(g.TotalAnswers)
}

// Totals aggregates every recorded game.
type Totals struct {
	Games          int
	Wins           int
	TotalAnswers   int
	CorrectAnswers int
	BestDay        int
}

// ResultRepo stores finished games.
type ResultRepo interface {
	// Save records a finished game. A second save for the same session
	// is rejected.
	Save(ctx context.Context, r GameResult) error

	// Recent returns games newest first.
	Recent(ctx context.Context, opts QueryOpts) ([]GameResult, error)

	// Totals aggregates all games.
	Totals(ctx context.Context) (Totals, error)
}

// AnswerEventData captures one evaluated answer.
type AnswerEventData struct {
	SessionID   string
	Day         int
	EncounterID string
	Mask        int
	Outcome     string
	Retry       bool

	// Health is the value when the answer was evaluated, before its effect.
	Health int
}

// AnswerEvent is a stored AnswerEventData.
type AnswerEvent struct {
	AnswerEventData
	Sequence  int64
	CreatedAt time.Time
}

// SkillEventData captures one skill acquisition.
type SkillEventData struct {
	SessionID string
	Day       int
	SkillType string
	Stacks    int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage aggregates recorded LLM requests.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// ModelUsage is LLMUsage for one model.
type ModelUsage struct {
	Model string
	LLMUsage
	AvgLatencyMs int64
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendAnswer records one evaluated answer.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// AppendSkill records one skill acquisition.
	AppendSkill(ctx context.Context, data SkillEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// AnswersForSession returns a session's answers in sequence order.
	AnswersForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error)

	// OutcomeCounts returns how often each outcome was recorded.
	OutcomeCounts(ctx context.Context) (map[string]int, error)

	// SkillPicks returns how often each skill type was acquired.
	SkillPicks(ctx context.Context) (map[string]int, error)

	// LLMUsage aggregates recorded LLM requests.
	LLMUsage(ctx context.Context) (LLMUsage, error)

	// LLMUsageByModel aggregates recorded LLM requests per model, most
	// used first.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// LastGame is the key/value stat block written once at game end for the
// results screen to read.
type LastGame struct {
	TotalAnswers   int  `json:"total_answers"`
	CorrectAnswers int  `json:"correct_answers"`
	GameWon        bool `json:"game_won"`
}

// StatsRepo is a small key/value store for summary stats.
type StatsRepo interface {
	SaveLastGame(ctx context.Context, g LastGame) error

	// LastGame returns the most recent block, or nil if none was saved.
	LastGame(ctx context.Context) (*LastGame, error)
}
