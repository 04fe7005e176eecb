// Package config loads runtime settings from MASQUERADE_* environment
// variables. Command-line flags override them in cmd.
package config

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/session"
)

// Settings holds every environment-driven knob.
type Settings struct {
	// DBPath overrides the default XDG database location.
	DBPath string `env:"MASQUERADE_DB"`

	// Seed fixes the root seed. Zero means draw a fresh one.
	Seed uint32 `env:"MASQUERADE_SEED"`

	LogLevel string `env:"MASQUERADE_LOG_LEVEL" envDefault:"info"`

	// LogFile receives logs while the TUI owns the terminal.
	LogFile string `env:"MASQUERADE_LOG_FILE"`

	// ContentDir holds extra content packs merged over the embedded one.
	ContentDir string `env:"MASQUERADE_CONTENT_DIR"`

	DeckPolicy       string          `env:"MASQUERADE_DECK_POLICY" envDefault:"global"`
	DecisionTimes    []time.Duration `env:"MASQUERADE_DECISION_TIMES" envDefault:"10s,7s,5s"`
	EncountersPerDay []int           `env:"MASQUERADE_ENCOUNTERS_PER_DAY" envDefault:"3,4,5"`
	TotalDays        int             `env:"MASQUERADE_DAYS" envDefault:"3"`
	StartHealth      int             `env:"MASQUERADE_START_HEALTH" envDefault:"4"`
	MaxHealth        int             `env:"MASQUERADE_MAX_HEALTH" envDefault:"7"`
	Penalty          int             `env:"MASQUERADE_PENALTY" envDefault:"1"`
	SkillOffers      int             `env:"MASQUERADE_SKILL_OFFERS" envDefault:"3"`
}

// Load parses Settings from the process environment.
func Load() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// LoadFrom parses Settings from the given variables only.
func LoadFrom(vars map[string]string) (Settings, error) {
	var s Settings
	if err := env.ParseWithOptions(&s, env.Options{Environment: vars}); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// SessionConfig builds and validates the session tunables.
func (s Settings) SessionConfig() (session.Config, error) {
	policy, err := encounter.ParsePolicy(s.DeckPolicy)
	if err != nil {
		return session.Config{}, err
	}
	cfg := session.DefaultConfig()
	cfg.DecisionTimes = s.DecisionTimes
	cfg.EncountersPerDay = s.EncountersPerDay
	cfg.TotalDays = s.TotalDays
	cfg.StartHealth = s.StartHealth
	cfg.MaxHealth = s.MaxHealth
	cfg.Penalty = s.Penalty
	cfg.SkillOfferCount = s.SkillOffers
	cfg.DeckPolicy = policy
	if err := cfg.Validate(); err != nil {
		return session.Config{}, err
	}
	return cfg, nil
}

// NewLogger returns a logger writing to w at the configured level.
func (s Settings) NewLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(strings.ToLower(s.LogLevel))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", s.LogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "masquerade",
	}), nil
}
