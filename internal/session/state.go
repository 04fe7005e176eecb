package session

import (
	"time"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/skills"
)

// Phase is the finite-state tag of a session.
type Phase int

const (
	PhaseResolve Phase = iota // Processing; transient
	PhaseAwait                // Waiting for a mask or the countdown
	PhaseDayEnd               // Day completed, skill selection pending
	PhaseGameEnd              // Terminal, won or lost
)

func (p Phase) String() string {
	switch p {
	case PhaseResolve:
		return "resolve"
	case PhaseAwait:
		return "await"
	case PhaseDayEnd:
		return "day_end"
	case PhaseGameEnd:
		return "game_end"
	}
	return "unknown"
}

// Outcome is the evaluation of one answer.
type Outcome int

const (
	OutcomeCorrect Outcome = iota
	OutcomeWrong
	OutcomeTimeout
	OutcomeNeutral
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCorrect:
		return "correct"
	case OutcomeWrong:
		return "wrong"
	case OutcomeTimeout:
		return "timeout"
	case OutcomeNeutral:
		return "neutral"
	}
	return "unknown"
}

// AnswerResult is emitted once per evaluated answer, and once more when a
// retry is granted.
type AnswerResult struct {
	Outcome  Outcome
	Feedback string

	// Mask is the selected mask. Meaningless for timeouts.
	Mask encounter.Mask

	// EncounterID identifies the encounter the answer was given for.
	EncounterID string

	// Retry is set on the amended result that grants another attempt.
	Retry bool
}

// State tracks the mutable runtime state of a session.
type State struct {
	// Day is the current 1-based day.
	Day int

	// Completed is the number of encounters finished on the current day.
	Completed int

	// Health is the social battery, always within [0, MaxHealth].
	Health int

	// Remaining is the countdown for the active encounter.
	Remaining time.Duration

	// Encounter is the active encounter (nil before the first deal).
	Encounter *encounter.Encounter

	// Phase is the current finite-state tag.
	Phase Phase

	// Paused short-circuits Tick and SelectMask.
	Paused bool

	// TotalAnswers counts every evaluated answer, including retried ones.
	TotalAnswers int

	// CorrectAnswers counts Correct outcomes.
	CorrectAnswers int

	// Won is meaningful once Phase is PhaseGameEnd.
	Won bool

	// Offers is the pending skill offer during PhaseDayEnd.
	Offers []skills.Definition

	// SelectionDone is set once the player picked or skipped a skill.
	SelectionDone bool
}

func newState(cfg Config) State {
	return State{
		Day:    1,
		Health: cfg.StartHealth,
		Phase:  PhaseResolve,
	}
}
