// Package authoring drafts new encounters with a language model. Drafts
// are validated like pack content before they are returned; nothing here
// runs during play.
package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/masquerade/internal/encounter"
	"github.com/abhisek/masquerade/internal/llm"
)

// Brief describes the encounters wanted.
type Brief struct {
	FriendGroup string
	// Day tags and tunes difficulty. Zero leaves drafts ungated.
	Day   int
	Count int
	// Avoid lists encounter IDs already in use.
	Avoid []string
	Notes string
}

// Config tunes drafting.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxCount caps Brief.Count.
	MaxCount int
	// MaxAvoid caps how many existing IDs go into the prompt.
	MaxAvoid int
}

func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.8, MaxCount: 10, MaxAvoid: 40}
}

// Drafter asks a provider for encounters.
type Drafter struct {
	provider llm.Provider
	cfg      Config
}

func New(p llm.Provider, cfg Config) *Drafter {
	return &Drafter{provider: p, cfg: cfg}
}

// DraftError describes one rejected encounter.
type DraftError struct {
	Index int
	ID    string
	Err   error
}

func (e *DraftError) Error() string {
	return fmt.Sprintf("encounter %d (%q): %v", e.Index, e.ID, e.Err)
}

func (e *DraftError) Unwrap() error { return e.Err }

// Draft returns up to b.Count validated encounters. Any invalid or
// colliding encounter rejects the whole batch with joined *DraftError
// values.
func (d *Drafter) Draft(ctx context.Context, b Brief) ([]encounter.Encounter, error) {
	if b.Count < 1 {
		return nil, fmt.Errorf("count must be at least 1, got %d", b.Count)
	}
	if d.cfg.MaxCount > 0 && b.Count > d.cfg.MaxCount {
		b.Count = d.cfg.MaxCount
	}
	if b.Day < 0 {
		return nil, fmt.Errorf("day %d is negative", b.Day)
	}

	ctx = llm.WithPurpose(ctx, "draft-encounters")
	resp, err := d.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildUserMessage(b, d.cfg.MaxAvoid)}},
		Schema:      DraftSchema,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("draft encounters: %w", err)
	}

	var out struct {
		Encounters []encounter.Encounter `json:"encounters"`
	}
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("decode draft: %w", err)
	}
	if len(out.Encounters) > b.Count {
		out.Encounters = out.Encounters[:b.Count]
	}

	if err := check(out.Encounters, b); err != nil {
		return nil, err
	}
	return out.Encounters, nil
}

// check fills brief defaults in place and validates the batch.
func check(drafts []encounter.Encounter, b Brief) error {
	taken := make(map[string]bool, len(b.Avoid)+len(drafts))
	for _, id := range b.Avoid {
		taken[id] = true
	}
	lines := make(map[string]bool, len(drafts))

	var errs []error
	for i := range drafts {
		e := &drafts[i]
		if e.FriendGroup == "" {
			e.FriendGroup = b.FriendGroup
		}
		if e.Day == 0 {
			e.Day = b.Day
		}

		reject := func(err error) { errs = append(errs, &DraftError{Index: i, ID: e.ID, Err: err}) }
		if err := e.Validate(); err != nil {
			reject(err)
		}
		if taken[e.ID] {
			reject(errors.New("id already in use"))
		}
		taken[e.ID] = true

		line := strings.ToLower(strings.Join(strings.Fields(e.Dialogue), " "))
		if lines[line] {
			reject(errors.New("duplicate dialogue"))
		}
		lines[line] = true
	}
	if len(errs) > 0 {
		return fmt.Errorf("draft rejected: %w", errors.Join(errs...))
	}
	return nil
}
