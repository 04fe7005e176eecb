// Package skills tracks passive upgrades the player picks between days and
// resolves their effect on the session's timing, healing and retries.
package skills

import (
	"errors"
	"fmt"

	"github.com/abhisek/masquerade/internal/rng"
	"github.com/abhisek/masquerade/internal/signal"
)

var (
	// ErrEmptyCatalog is returned when a registry is built without skills.
	ErrEmptyCatalog = errors.New("skill catalog is empty")

	// ErrUnknownSkill is returned when acquiring a type not in the catalog.
	ErrUnknownSkill = errors.New("unknown skill")
)

// Healer receives the instant-heal side effect of acquiring a skill.
type Healer interface {
	RestoreHealth(amount int)
}

// Registry holds the immutable catalog, the acquired stacks and the
// per-encounter one-shot flags.
type Registry struct {
	catalog  []Definition
	byType   map[Type]Definition
	acquired map[Type]int
	healer   Healer

	retryUsed bool
	hintUsed  bool

	// Acquired fires after each successful acquisition.
	Acquired signal.Signal[Definition]

	// Updated fires with the full acquired list whenever it changes.
	Updated signal.Signal[[]Definition]
}

// NewRegistry validates catalog and returns an empty registry. healer may be
// nil, in which case instant-heal skills have no effect.
func NewRegistry(catalog []Definition, healer Healer) (*Registry, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	byType := make(map[Type]Definition, len(catalog))
	for _, d := range catalog {
		if !d.Type.Valid() {
			return nil, fmt.Errorf("skill %q: %w", d.Type, ErrUnknownSkill)
		}
		if _, dup := byType[d.Type]; dup {
			return nil, fmt.Errorf("skill %q listed twice in catalog", d.Type)
		}
		byType[d.Type] = d
	}
	cat := make([]Definition, len(catalog))
	copy(cat, catalog)
	return &Registry{
		catalog:  cat,
		byType:   byType,
		acquired: make(map[Type]int),
		healer:   healer,
	}, nil
}

// Catalog returns a copy of the catalog in its original order.
func (r *Registry) Catalog() []Definition {
	out := make([]Definition, len(r.catalog))
	copy(out, r.catalog)
	return out
}

// Definition looks up a catalog entry.
func (r *Registry) Definition(t Type) (Definition, bool) {
	d, ok := r.byType[t]
	return d, ok
}

// Stacks returns the acquired stack count for t (0 if not acquired).
func (r *Registry) Stacks(t Type) int {
	if r == nil {
		return 0
	}
	return r.acquired[t]
}

// Has reports whether at least one stack of t is held.
func (r *Registry) Has(t Type) bool {
	return r.Stacks(t) > 0
}

// Offer returns up to count skills the player could still take, shuffled
// with s. Candidates are unacquired skills and stackable skills below their
// cap, in catalog order before shuffling.
func (r *Registry) Offer(s *rng.Stream, count int) []Definition {
	var candidates []Definition
	for _, d := range r.catalog {
		if r.acquired[d.Type] < d.Cap() {
			candidates = append(candidates, d)
		}
	}
	for i := len(candidates) - 1; i > 0; i-- {
		j := s.IntRange(0, i+1)
		candidates[i], candidates[j] = candidates[j], candidates[i]
	}
	if count < 0 {
		count = 0
	}
	if count > len(candidates) {
		count = len(candidates)
	}
	return candidates[:count]
}

// Acquire adds one stack of t, capped at the definition's limit, and applies
// immediate effects before notifying listeners.
func (r *Registry) Acquire(t Type) (Definition, error) {
	d, ok := r.byType[t]
	if !ok {
		return Definition{}, fmt.Errorf("acquire %q: %w", t, ErrUnknownSkill)
	}
	if n := r.acquired[t]; n < d.Cap() {
		r.acquired[t] = n + 1
	}

	if d.Type == Meditation && r.healer != nil {
		r.healer.RestoreHealth(int(d.EffectValue))
	}

	r.Acquired.Emit(d)
	r.Updated.Emit(r.AcquiredList())
	return d, nil
}

// TimeBonusMultiplier scales the base decision time. 1.0 without Battery.
func (r *Registry) TimeBonusMultiplier() float64 {
	if r == nil {
		return 1
	}
	stacks := r.acquired[Battery]
	if stacks == 0 {
		return 1
	}
	return 1 + float64(stacks)*r.byType[Battery].EffectValue/100
}

// TryConsumeRetry grants the Eloquence retry at most once per encounter.
func (r *Registry) TryConsumeRetry() bool {
	if r == nil || !r.Has(Eloquence) || r.retryUsed {
		return false
	}
	r.retryUsed = true
	return true
}

// TryConsumeHint grants the InnerDeduction reveal at most once per encounter.
// Purely advisory; the session does not change because of it.
func (r *Registry) TryConsumeHint() bool {
	if r == nil || !r.Has(InnerDeduction) || r.hintUsed {
		return false
	}
	r.hintUsed = true
	return true
}

// HintUsed reports whether the hint was consumed on the current encounter.
func (r *Registry) HintUsed() bool {
	return r != nil && r.hintUsed
}

// ShowKeywords reports whether keyword cues should be displayed.
func (r *Registry) ShowKeywords() bool {
	return r.Has(QuickThinking)
}

// ResetEncounterFlags clears the one-shot flags. Called for every new encounter.
func (r *Registry) ResetEncounterFlags() {
	if r == nil {
		return
	}
	r.retryUsed = false
	r.hintUsed = false
}

// AcquiredList returns held skills in catalog order.
func (r *Registry) AcquiredList() []Definition {
	var out []Definition
	for _, d := range r.catalog {
		if r.acquired[d.Type] > 0 {
			out = append(out, d)
		}
	}
	return out
}

// Labels returns display labels ("Name xN" for stacked skills) in catalog order.
func (r *Registry) Labels() []string {
	var out []string
	for _, d := range r.catalog {
		if n := r.acquired[d.Type]; n > 0 {
			out = append(out, d.Label(n))
		}
	}
	return out
}

// Reset drops every acquired skill for a new session.
func (r *Registry) Reset() {
	r.acquired = make(map[Type]int)
	r.retryUsed = false
	r.hintUsed = false
	r.Updated.Emit(nil)
}
