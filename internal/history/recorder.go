// Package history persists session outcomes. A Recorder subscribes to a
// session's signals and writes answers, skill picks and the final result
// through the store repositories.
package history

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/abhisek/masquerade/internal/session"
	"github.com/abhisek/masquerade/internal/signal"
	"github.com/abhisek/masquerade/internal/skills"
	"github.com/abhisek/masquerade/internal/store"
)

// Recorder writes one session's history. Write failures are logged and
// collected; they never interrupt play.
type Recorder struct {
	sess    *session.Session
	events  store.EventRepo
	results store.ResultRepo
	stats   store.StatsRepo
	logger  *log.Logger

	subs signal.Group
	errs []error
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithLogger sets the logger for write failures.
func WithLogger(l *log.Logger) Option {
	return func(r *Recorder) { r.logger = l }
}

// Attach subscribes a new Recorder to sess. Any repo may be nil to skip
// that kind of record. Call Detach when the session is torn down.
func Attach(sess *session.Session, events store.EventRepo, results store.ResultRepo, stats store.StatsRepo, opts ...Option) *Recorder {
	r := &Recorder{
		sess:    sess,
		events:  events,
		results: results,
		stats:   stats,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.subs.Add(sess.AnswerResult.Connect(r.onAnswer))
	r.subs.Add(sess.Skills().Acquired.Connect(r.onSkill))
	r.subs.Add(sess.GameOver.Connect(r.onGameEnd))
	r.subs.Add(sess.GameWon.Connect(r.onGameEnd))
	return r
}

// Detach disconnects every subscription. Safe to call more than once.
func (r *Recorder) Detach() {
	r.subs.DisconnectAll()
}

// Err returns every write failure so far, joined.
func (r *Recorder) Err() error {
	return errors.Join(r.errs...)
}

func (r *Recorder) onAnswer(a session.AnswerResult) {
	if r.events == nil {
		return
	}
	st := r.sess.State()
	r.check("record answer", r.events.AppendAnswer(context.Background(), store.AnswerEventData{
		SessionID:   r.sess.ID(),
		Day:         st.Day,
		EncounterID: a.EncounterID,
		Mask:        int(a.Mask),
		Outcome:     a.Outcome.String(),
		Retry:       a.Retry,
		Health:      st.Health,
	}))
}

func (r *Recorder) onSkill(d skills.Definition) {
	if r.events == nil {
		return
	}
	r.check("record skill", r.events.AppendSkill(context.Background(), store.SkillEventData{
		SessionID: r.sess.ID(),
		Day:       r.sess.State().Day,
		SkillType: string(d.Type),
		Stacks:    r.sess.Skills().Stacks(d.Type),
	}))
}

func (r *Recorder) onGameEnd(res session.Result) {
	ctx := context.Background()
	if r.results != nil {
		r.check("record result", r.results.Save(ctx, store.GameResult{
			SessionID:      r.sess.ID(),
			Seed:           res.Seed,
			Won:            res.Won,
			Day:            res.Day,
			Health:         res.Health,
			TotalAnswers:   res.TotalAnswers,
			CorrectAnswers: res.CorrectAnswers,
			Skills:         res.Skills,
		}))
	}
	if r.stats != nil {
		r.check("record last game", r.stats.SaveLastGame(ctx, store.LastGame{
			TotalAnswers:   res.TotalAnswers,
			CorrectAnswers: res.CorrectAnswers,
			GameWon:        res.Won,
		}))
	}
}

func (r *Recorder) check(op string, err error) {
	if err == nil {
		return
	}
	r.logger.Error("history write failed", "op", op, "session", r.sess.ID(), "err", err)
	r.errs = append(r.errs, err)
}
