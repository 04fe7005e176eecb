package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/masquerade/internal/encounter"
)

// Default tunables.
const (
	DefaultTotalDays       = 3
	DefaultStartHealth     = 4
	DefaultMaxHealth       = 7
	DefaultPenalty         = 1
	DefaultSkillOfferCount = 3

	DefaultTimeoutFeedback = "Time's up! You froze and said nothing."
	DefaultRetryFeedback   = "Eloquence kicks in. Try again!"
)

// Config holds the immutable tunables of a session.
type Config struct {
	// DecisionTimes is the base countdown per day, one entry per day.
	// Days past the end reuse the last entry.
	DecisionTimes []time.Duration

	// EncountersPerDay is how many encounters complete each day, indexed
	// like DecisionTimes.
	EncountersPerDay []int

	TotalDays   int
	StartHealth int
	MaxHealth   int

	// Penalty is subtracted from health on a wrong or timed-out answer.
	Penalty int

	// SkillOfferCount is how many skills are offered between days.
	SkillOfferCount int

	DeckPolicy encounter.Policy

	TimeoutFeedback string
	RetryFeedback   string
}

// DefaultConfig returns the standard three-day configuration.
func DefaultConfig() Config {
	return Config{
		DecisionTimes:    []time.Duration{10 * time.Second, 7 * time.Second, 5 * time.Second},
		EncountersPerDay: []int{3, 4, 5},
		TotalDays:        DefaultTotalDays,
		StartHealth:      DefaultStartHealth,
		MaxHealth:        DefaultMaxHealth,
		Penalty:          DefaultPenalty,
		SkillOfferCount:  DefaultSkillOfferCount,
		DeckPolicy:       encounter.PolicyGlobal,
		TimeoutFeedback:  DefaultTimeoutFeedback,
		RetryFeedback:    DefaultRetryFeedback,
	}
}

// DecisionTime returns the base countdown for a 1-based day.
func (c Config) DecisionTime(day int) time.Duration {
	return perDay(c.DecisionTimes, day)
}

// RequiredEncounters returns how many encounters complete a 1-based day.
func (c Config) RequiredEncounters(day int) int {
	return perDay(c.EncountersPerDay, day)
}

func perDay[T any](seq []T, day int) T {
	var zero T
	if len(seq) == 0 {
		return zero
	}
	i := day - 1
	if i < 0 {
		i = 0
	}
	if i >= len(seq) {
		i = len(seq) - 1
	}
	return seq[i]
}

// Validate reports every problem with the configuration as a *ConfigError.
func (c Config) Validate() error {
	var errs []error
	if len(c.DecisionTimes) == 0 {
		errs = append(errs, errors.New("decision times are empty"))
	}
	for i, d := range c.DecisionTimes {
		if d <= 0 {
			errs = append(errs, fmt.Errorf("decision time for day %d must be positive, got %s", i+1, d))
		}
	}
	if len(c.EncountersPerDay) == 0 {
		errs = append(errs, errors.New("encounters per day are empty"))
	}
	for i, n := range c.EncountersPerDay {
		if n < 1 {
			errs = append(errs, fmt.Errorf("encounters for day %d must be at least 1, got %d", i+1, n))
		}
	}
	if c.TotalDays < 1 {
		errs = append(errs, fmt.Errorf("total days must be at least 1, got %d", c.TotalDays))
	}
	if c.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("max health must be at least 1, got %d", c.MaxHealth))
	}
	if c.StartHealth < 1 || c.StartHealth > c.MaxHealth {
		errs = append(errs, fmt.Errorf("start health %d outside [1, %d]", c.StartHealth, c.MaxHealth))
	}
	if c.Penalty < 1 {
		errs = append(errs, fmt.Errorf("penalty must be at least 1, got %d", c.Penalty))
	}
	if c.SkillOfferCount < 0 {
		errs = append(errs, fmt.Errorf("skill offer count is negative: %d", c.SkillOfferCount))
	}
	if _, err := encounter.ParsePolicy(string(c.DeckPolicy)); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &ConfigError{Op: "validate config", Err: errors.Join(errs...)}
	}
	return nil
}
