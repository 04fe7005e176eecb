// Package autoplay drives a session without a terminal UI. Every emitted
// event is written as one line, so two runs with the same seed, content and
// strategy print identical transcripts.
package autoplay

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/rng"
	"github.com/abhisek/masquerade/internal/session"
	"github.com/abhisek/masquerade/internal/signal"
	"github.com/abhisek/masquerade/internal/skills"
)

// Strategy decides which mask to pick.
type Strategy string

const (
	// StrategyCorrect always picks the correct mask.
	StrategyCorrect Strategy = "correct"
	// StrategyFirst always picks the first mask.
	StrategyFirst Strategy = "first"
	// StrategyRandom picks uniformly from the masks a hint has not ruled out.
	StrategyRandom Strategy = "random"
	// StrategyIdle never answers and lets every countdown run out.
	StrategyIdle Strategy = "idle"
)

// Strategies lists every strategy name.
func Strategies() []Strategy {
	return []Strategy{StrategyCorrect, StrategyFirst, StrategyRandom, StrategyIdle}
}

// ParseStrategy accepts a Strategies name.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies() {
		if string(st) == strings.ToLower(s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// ErrStalled is returned when the session stops making progress.
var ErrStalled = errors.New("session stalled")

// maxSteps bounds the drive loop; a real game needs a few dozen.
const maxSteps = 10_000

// Player drives one session.
type Player struct {
	sess     *session.Session
	strategy Strategy
	stream   *rng.Stream
	out      io.Writer
	subs     signal.Group
	err      error
}

// New returns a Player for sess. Random draws come from the autoplay
// stream of the session's seed, so they never disturb the deck or offers.
func New(sess *session.Session, strategy Strategy, out io.Writer) *Player {
	return &Player{
		sess:     sess,
		strategy: strategy,
		stream:   rng.New(sess.Seed()).Derive(rng.StreamAutoplay),
		out:      out,
	}
}

// Run plays the session to the end and returns its result.
func (p *Player) Run() (session.Result, error) {
	p.connect()
	defer p.subs.DisconnectAll()

	p.printf("seed %d strategy %s", p.sess.Seed(), p.strategy)
	if err := p.sess.Start(); err != nil {
		return session.Result{}, err
	}

	for step := 0; step < maxSteps; step++ {
		if p.err != nil {
			return session.Result{}, fmt.Errorf("write transcript: %w", p.err)
		}
		if err := p.sess.Err(); err != nil {
			return session.Result{}, err
		}
		switch p.sess.Phase() {
		case session.PhaseGameEnd:
			return p.sess.Result(), nil
		case session.PhaseAwait:
			p.answer()
		case session.PhaseDayEnd:
			p.pickSkill()
			if err := p.sess.AdvanceDay(); err != nil {
				return session.Result{}, err
			}
		default:
			return session.Result{}, fmt.Errorf("%w in phase %s", ErrStalled, p.sess.Phase())
		}
	}
	return session.Result{}, fmt.Errorf("%w after %d steps", ErrStalled, maxSteps)
}

func (p *Player) answer() {
	if p.strategy == StrategyIdle {
		p.sess.Tick(p.sess.State().Remaining)
		return
	}
	enc := p.sess.State().Encounter
	switch p.strategy {
	case StrategyCorrect:
		p.sess.SelectMask(enc.Correct)
	case StrategyFirst:
		p.sess.SelectMask(encounter.Mask1)
	default:
		ruledOut := map[encounter.Mask]bool{}
		for _, m := range p.sess.UseHint() {
			ruledOut[m] = true
		}
		var open []encounter.Mask
		for _, m := range encounter.AllMasks() {
			if !ruledOut[m] {
				open = append(open, m)
			}
		}
		p.sess.SelectMask(open[p.stream.IntRange(0, len(open))])
	}
}

func (p *Player) pickSkill() {
	offers := p.sess.State().Offers
	if len(offers) == 0 {
		p.printf("skill none offered")
		p.sess.NotifySkillSelectionComplete()
		return
	}
	i := 0
	if p.strategy == StrategyRandom {
		i = p.stream.IntRange(0, len(offers))
	}
	if err := p.sess.AcquireSkill(offers[i].Type); err != nil {
		p.printf("skill %s rejected: %v", offers[i].Type, err)
		p.sess.SkipSkillSelection()
	}
}

func (p *Player) connect() {
	s := p.sess
	p.subs.Add(s.DayChanged.Connect(func(d int) { p.printf("day %d", d) }))
	p.subs.Add(s.HealthChanged.Connect(func(h int) { p.printf("health %d", h) }))
	p.subs.Add(s.TimeChanged.Connect(func(d time.Duration) { p.printf("time %s", d) }))
	p.subs.Add(s.EncounterChanged.Connect(func(e encounter.Encounter) { p.printf("encounter %s", e.ID) }))
	p.subs.Add(s.AnswerResult.Connect(func(a session.AnswerResult) {
		mask := a.Mask.String()
		if a.Outcome == session.OutcomeTimeout {
			mask = "-"
		}
		p.printf("answer %s %s retry=%t %q", mask, a.Outcome, a.Retry, a.Feedback)
	}))
	p.subs.Add(s.DayComplete.Connect(func(d int) { p.printf("day complete %d", d) }))
	p.subs.Add(s.SkillOffer.Connect(func(offers []skills.Definition) {
		names := make([]string, len(offers))
		for i, d := range offers {
			names[i] = string(d.Type)
		}
		p.printf("skill offer %s", strings.Join(names, ","))
	}))
	p.subs.Add(s.Skills().Acquired.Connect(func(d skills.Definition) {
		p.printf("skill acquired %s stacks=%d", d.Type, s.Skills().Stacks(d.Type))
	}))
	p.subs.Add(s.GameOver.Connect(func(r session.Result) { p.printResult("game over", r) }))
	p.subs.Add(s.GameWon.Connect(func(r session.Result) { p.printResult("game won", r) }))
}

func (p *Player) printResult(head string, r session.Result) {
	p.printf("%s day=%d health=%d answers=%d correct=%d skills=[%s]",
		head, r.Day, r.Health, r.TotalAnswers, r.CorrectAnswers, strings.Join(r.Skills, ", "))
}

// printf writes one transcript line and keeps the first write error.
func (p *Player) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.out, format+"\n", args...)
}
