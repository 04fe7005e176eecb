// Package session runs the day/encounter state machine: countdown, answer
// resolution, the health economy, day completion and win/loss.
//
// A Session is driven entirely by its caller through Tick and the command
// methods. It owns no goroutines and takes no locks; every command must be
// issued from the same goroutine.
package session

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/rng"
	"github.com/abhisek/masquerade/internal/skills"
)

// Session is one playthrough.
type Session struct {
	Events

	cfg    Config
	root   rng.Root
	deck   *encounter.Deck
	skills *skills.Registry
	base   *log.Logger
	logger *log.Logger

	encStream   *rng.Stream
	skillStream *rng.Stream

	id    string
	state State
	err   error
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the structured logger. Defaults to discarding output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.base = l }
}

// New builds a session over pool and catalog. The configuration and catalog
// are validated here; an empty pool is reported by Start.
func New(cfg Config, pool []encounter.Encounter, catalog []skills.Definition, seed uint32, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, _ := encounter.ParsePolicy(string(cfg.DeckPolicy))

	s := &Session{
		cfg:  cfg,
		root: rng.New(seed),
		deck: encounter.NewDeck(pool, encounter.WithPolicy(policy)),
		base: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	reg, err := skills.NewRegistry(catalog, s)
	if err != nil {
		return nil, &ConfigError{Op: "load skill catalog", Err: err}
	}
	s.skills = reg
	s.reset()
	return s, nil
}

func (s *Session) reset() {
	s.id = uuid.NewString()
	s.state = newState(s.cfg)
	s.err = nil
	s.encStream = s.root.Derive(rng.StreamEncounters)
	s.skillStream = s.root.Derive(rng.StreamSkills)
	s.deck.Reset()
	s.logger = s.base.With("session", s.id)
}

// ID returns the session's unique identifier. It changes on Restart.
func (s *Session) ID() string { return s.id }

// Seed returns the root seed every stream is derived from.
func (s *Session) Seed() uint32 { return s.root.Seed() }

// Config returns the session's tunables.
func (s *Session) Config() Config { return s.cfg }

// State returns a copy of the current state.
func (s *Session) State() State { return s.state }

// Phase returns the current finite-state tag.
func (s *Session) Phase() Phase { return s.state.Phase }

// Skills exposes the registry, including its Acquired and Updated signals.
func (s *Session) Skills() *skills.Registry { return s.skills }

// Deck exposes the encounter deck for inspection.
func (s *Session) Deck() *encounter.Deck { return s.deck }

// Err returns the configuration error that halted the session, if any.
func (s *Session) Err() error { return s.err }

// Progress reports the current day's progress.
func (s *Session) Progress() Progress {
	return Progress{
		Day:       s.state.Day,
		TotalDays: s.cfg.TotalDays,
		Completed: s.state.Completed,
		Required:  s.cfg.RequiredEncounters(s.state.Day),
	}
}

// DecisionTime returns the full countdown for the current day, including
// skill bonuses.
func (s *Session) DecisionTime() time.Duration {
	base := s.cfg.DecisionTime(s.state.Day)
	return time.Duration(float64(base) * s.skills.TimeBonusMultiplier())
}

// Result returns the aggregate statistics so far. Final once the session
// reaches PhaseGameEnd.
func (s *Session) Result() Result {
	return Result{
		Seed:           s.root.Seed(),
		Won:            s.state.Won,
		Day:            s.state.Day,
		Health:         s.state.Health,
		TotalAnswers:   s.state.TotalAnswers,
		CorrectAnswers: s.state.CorrectAnswers,
		Skills:         s.skills.Labels(),
	}
}

// Start performs the initial transition: reshuffle, deal the first
// encounter and wait for input. Calling Start outside the initial resolve
// phase is a no-op.
func (s *Session) Start() error {
	if s.state.Phase != PhaseResolve || s.state.Encounter != nil {
		return nil
	}
	s.logger.Info("session started", "seed", s.root.Seed(), "pool", s.deck.PoolSize(), "policy", s.deck.Policy())
	s.DayChanged.Emit(s.state.Day)
	s.HealthChanged.Emit(s.state.Health)

	s.deck.SetDay(s.state.Day)
	s.deck.Reshuffle(s.encStream)
	return s.nextEncounter()
}

// Restart discards all state and begins a new playthrough from the same
// root seed.
func (s *Session) Restart() error {
	s.logger.Info("session restarting")
	s.skills.Reset()
	s.reset()
	return s.Start()
}

// Tick advances the countdown by d. When it reaches zero the active
// encounter resolves as a timeout.
func (s *Session) Tick(d time.Duration) {
	if s.state.Phase != PhaseAwait || s.state.Paused || d <= 0 {
		return
	}
	s.state.Remaining -= d
	if s.state.Remaining <= 0 {
		s.state.Remaining = 0
		s.TimeChanged.Emit(0)
		s.resolve(0, true)
		return
	}
	s.TimeChanged.Emit(s.state.Remaining)
}

// SelectMask answers the active encounter. Ignored unless awaiting input
// and not paused.
func (s *Session) SelectMask(m encounter.Mask) {
	if s.state.Phase != PhaseAwait || s.state.Paused || !m.Valid() {
		return
	}
	s.resolve(m, false)
}

// Pause suspends the countdown and input.
func (s *Session) Pause() {
	if s.state.Phase == PhaseGameEnd {
		return
	}
	s.state.Paused = true
}

// Resume lifts a pause.
func (s *Session) Resume() {
	s.state.Paused = false
}

// RestoreHealth heals by amount, capped at the maximum. It is the instant
// heal target of the skill registry.
func (s *Session) RestoreHealth(amount int) {
	if s.state.Phase == PhaseGameEnd || amount <= 0 {
		return
	}
	s.setHealth(s.state.Health + amount)
}

// UseHint consumes the one-shot hint on the active encounter and returns
// the masks that are plain wrong. Returns nil when no hint is available.
func (s *Session) UseHint() []encounter.Mask {
	if s.state.Phase != PhaseAwait || s.state.Paused {
		return nil
	}
	if !s.skills.TryConsumeHint() {
		return nil
	}
	return s.state.Encounter.WrongMasks()
}

// AcquireSkill takes one skill from the pending day-end offer and marks
// the selection done. Outside a pending selection it is a no-op.
func (s *Session) AcquireSkill(t skills.Type) error {
	if s.state.Phase != PhaseDayEnd || s.state.SelectionDone {
		return nil
	}
	offered := false
	for _, d := range s.state.Offers {
		if d.Type == t {
			offered = true
			break
		}
	}
	if !offered {
		return ErrNotOffered
	}
	d, err := s.skills.Acquire(t)
	if err != nil {
		return err
	}
	s.logger.Info("skill acquired", "skill", d.Type, "stacks", s.skills.Stacks(d.Type))
	s.state.SelectionDone = true
	return nil
}

// SkipSkillSelection declines the pending offer.
func (s *Session) SkipSkillSelection() {
	if s.state.Phase != PhaseDayEnd || s.state.SelectionDone {
		return
	}
	s.logger.Debug("skill selection skipped", "day", s.state.Day)
	s.state.SelectionDone = true
}

// NotifySkillSelectionComplete marks the selection finished when the
// presentation layer resolved it on its own (for example an empty offer).
func (s *Session) NotifySkillSelectionComplete() {
	if s.state.Phase != PhaseDayEnd {
		return
	}
	s.state.SelectionDone = true
}

// AdvanceDay starts the next day once the skill selection is done. Health
// carries over. The caller owns any presentation delay before calling it.
func (s *Session) AdvanceDay() error {
	if s.state.Phase == PhaseGameEnd {
		return ErrGameOver
	}
	if s.state.Phase != PhaseDayEnd || !s.state.SelectionDone {
		return nil
	}
	s.state.Day++
	s.state.Completed = 0
	s.state.Offers = nil
	s.state.SelectionDone = false
	s.deck.SetDay(s.state.Day)

	s.logger.Info("day started", "day", s.state.Day, "health", s.state.Health)
	s.DayChanged.Emit(s.state.Day)
	return s.nextEncounter()
}

func (s *Session) resolve(m encounter.Mask, timedOut bool) {
	s.state.Phase = PhaseResolve
	enc := s.state.Encounter

	outcome := OutcomeWrong
	switch {
	case timedOut:
		outcome = OutcomeTimeout
	case m == enc.Correct:
		outcome = OutcomeCorrect
	case enc.IsNeutral(m):
		outcome = OutcomeNeutral
	}

	s.state.TotalAnswers++
	if outcome == OutcomeCorrect {
		s.state.CorrectAnswers++
	}

	feedback := s.cfg.TimeoutFeedback
	if !timedOut {
		feedback = enc.FeedbackFor(m)
	}

	s.logger.Debug("answer resolved", "encounter", enc.ID, "mask", m, "outcome", outcome)
	s.AnswerResult.Emit(AnswerResult{Outcome: outcome, Feedback: feedback, Mask: m, EncounterID: enc.ID})

	switch outcome {
	case OutcomeCorrect:
		s.setHealth(s.state.Health + 1)
	case OutcomeWrong, OutcomeTimeout:
		if s.skills.TryConsumeRetry() {
			s.logger.Debug("retry granted", "encounter", enc.ID)
			s.AnswerResult.Emit(AnswerResult{
				Outcome:     OutcomeWrong,
				Feedback:    feedback + "\n" + s.cfg.RetryFeedback,
				Mask:        m,
				EncounterID: enc.ID,
				Retry:       true,
			})
			s.state.Phase = PhaseAwait
			if timedOut {
				s.state.Remaining = s.DecisionTime()
				s.TimeChanged.Emit(s.state.Remaining)
			}
			return
		}
		s.setHealth(s.state.Health - s.cfg.Penalty)
		if s.state.Health <= 0 {
			s.endGame(false)
			return
		}
	}

	s.state.Completed++
	if s.state.Completed >= s.cfg.RequiredEncounters(s.state.Day) {
		s.endDay()
		return
	}
	// A deal failure is recorded in s.err and leaves the session halted.
	_ = s.nextEncounter()
}

func (s *Session) nextEncounter() error {
	s.state.Phase = PhaseResolve
	e, err := s.deck.Deal(s.encStream)
	if err != nil {
		s.err = &ConfigError{Op: "deal encounter", Err: err}
		s.logger.Error("session halted", "day", s.state.Day, "err", err)
		return s.err
	}
	s.state.Encounter = &e
	s.state.Remaining = s.DecisionTime()
	s.skills.ResetEncounterFlags()
	s.state.Phase = PhaseAwait

	s.EncounterChanged.Emit(e)
	s.TimeChanged.Emit(s.state.Remaining)
	return nil
}

func (s *Session) endDay() {
	s.state.Phase = PhaseDayEnd
	day := s.state.Day
	s.logger.Info("day complete", "day", day, "health", s.state.Health)
	s.DayComplete.Emit(day)

	if day >= s.cfg.TotalDays {
		s.endGame(true)
		return
	}

	s.state.Offers = s.skills.Offer(s.skillStream, s.cfg.SkillOfferCount)
	s.state.SelectionDone = false
	s.SkillOffer.Emit(s.state.Offers)
}

func (s *Session) endGame(won bool) {
	s.state.Phase = PhaseGameEnd
	s.state.Won = won
	s.state.Paused = false
	res := s.Result()
	s.logger.Info("game over", "won", won, "answers", res.TotalAnswers, "correct", res.CorrectAnswers)
	if won {
		s.GameWon.Emit(res)
	} else {
		s.GameOver.Emit(res)
	}
}

func (s *Session) setHealth(h int) {
	if h < 0 {
		h = 0
	}
	if h > s.cfg.MaxHealth {
		h = s.cfg.MaxHealth
	}
	if h == s.state.Health {
		return
	}
	s.state.Health = h
	s.HealthChanged.Emit(h)
}

// IsConfigError reports whether err is a *ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}
