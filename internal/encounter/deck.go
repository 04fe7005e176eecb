// Package encounter holds dialogue content records and the deck that deals
// them in a seeded, non-repeating order.
package encounter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/masquerade/internal/rng"
)

// ErrEmptyPool is returned when there is nothing to deal.
var ErrEmptyPool = errors.New("encounter pool is empty")

// Policy selects which part of the pool a shuffle cycle draws from.
type Policy string

const (
	// PolicyGlobal deals from the whole pool every cycle. Encounters may
	// repeat across days once a cycle is exhausted.
	PolicyGlobal Policy = "global"

	// PolicyDayGated deals only encounters tagged for the current day
	// (or untagged ones).
	PolicyDayGated Policy = "day"
)

// ParsePolicy maps a config string to a Policy. Empty means PolicyGlobal.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case "", PolicyGlobal:
		return PolicyGlobal, nil
	case PolicyDayGated:
		return PolicyDayGated, nil
	}
	return "", fmt.Errorf("unknown deck policy %q", s)
}

// Deck deals encounters from a fixed pool. The current deal is consumed from
// its tail; an empty deal triggers a reshuffle of the eligible pool.
type Deck struct {
	pool       []Encounter
	deal       []Encounter
	policy     Policy
	day        int
	reshuffles int
}

// Option configures a Deck.
type Option func(*Deck)

// WithPolicy sets the deal policy.
func WithPolicy(p Policy) Option {
	return func(d *Deck) { d.policy = p }
}

// NewDeck copies pool and sorts it by ID so content edits elsewhere in the
// pool do not reorder existing seeded playthroughs.
func NewDeck(pool []Encounter, opts ...Option) *Deck {
	sorted := make([]Encounter, len(pool))
	copy(sorted, pool)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	d := &Deck{pool: sorted, policy: PolicyGlobal, day: 1}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Policy returns the deal policy.
func (d *Deck) Policy() Policy { return d.policy }

// PoolSize returns the size of the full pool.
func (d *Deck) PoolSize() int { return len(d.pool) }

// Remaining returns how many encounters are left in the current deal.
func (d *Deck) Remaining() int { return len(d.deal) }

// Reshuffles returns how many shuffle cycles have been started.
func (d *Deck) Reshuffles() int { return d.reshuffles }

// SetDay tells a day-gated deck which day it deals for. Changing the day
// discards the current deal. Global decks only record the value.
func (d *Deck) SetDay(day int) {
	if day == d.day {
		return
	}
	d.day = day
	if d.policy == PolicyDayGated {
		d.deal = nil
	}
}

// Reset discards the current deal and counters, keeping the pool.
func (d *Deck) Reset() {
	d.deal = nil
	d.day = 1
	d.reshuffles = 0
}

// Reshuffle replaces the current deal with a Fisher–Yates shuffle of the
// eligible pool, drawing from s.
func (d *Deck) Reshuffle(s *rng.Stream) {
	deal := d.eligible()
	for i := len(deal) - 1; i > 0; i-- {
		j := s.IntRange(0, i+1)
		deal[i], deal[j] = deal[j], deal[i]
	}
	d.deal = deal
	d.reshuffles++
}

// Deal removes and returns the tail of the current deal, reshuffling first
// when the deal is empty.
func (d *Deck) Deal(s *rng.Stream) (Encounter, error) {
	if len(d.deal) == 0 {
		d.Reshuffle(s)
	}
	if len(d.deal) == 0 {
		if d.policy == PolicyDayGated && len(d.pool) > 0 {
			return Encounter{}, fmt.Errorf("no encounters for day %d: %w", d.day, ErrEmptyPool)
		}
		return Encounter{}, ErrEmptyPool
	}
	last := len(d.deal) - 1
	e := d.deal[last]
	d.deal = d.deal[:last]
	return e, nil
}

func (d *Deck) eligible() []Encounter {
	out := make([]Encounter, 0, len(d.pool))
	for _, e := range d.pool {
		if d.policy == PolicyDayGated && e.Day != 0 && e.Day != d.day {
			continue
		}
		out = append(out, e)
	}
	return out
}
