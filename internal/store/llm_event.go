package store

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/masquerade/ent"
)

// eventRepo implements EventRepo using the ent client and the global
// sequence counter.
type eventRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.LLMRequestEvent.Create().
		SetSequence(seqNum).
		SetProvider(data.Provider).
		SetModel(data.Model).
		SetPurpose(data.Purpose).
		SetInputTokens(data.InputTokens).
		SetOutputTokens(data.OutputTokens).
		SetLatencyMs(data.LatencyMs).
		SetSuccess(data.Success).
		SetErrorMessage(data.ErrorMessage).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}

	return nil
}

func (r *eventRepo) LLMUsage(ctx context.Context) (LLMUsage, error) {
	events, err := r.client.LLMRequestEvent.Query().All(ctx)
	if err != nil {
		return LLMUsage{}, fmt.Errorf("query LLM usage: %w", err)
	}

	var u LLMUsage
	for _, e := range events {
		u.add(e)
	}
	return u, nil
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	events, err := r.client.LLMRequestEvent.Query().All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by model: %w", err)
	}

	byModel := make(map[string]*ModelUsage)
	latency := make(map[string]int64)
	for _, e := range events {
		mu, ok := byModel[e.Model]
		if !ok {
			mu = &ModelUsage{Model: e.Model}
			byModel[e.Model] = mu
		}
		mu.add(e)
		latency[e.Model] += e.LatencyMs
	}

	out := make([]ModelUsage, 0, len(byModel))
	for model, mu := range byModel {
		mu.AvgLatencyMs = latency[model] / int64(mu.Requests)
		out = append(out, *mu)
	}
	slices.SortFunc(out, func(a, b ModelUsage) int {
		if c := cmp.Compare(b.Requests, a.Requests); c != 0 {
			return c
		}
		return cmp.Compare(a.Model, b.Model)
	})
	return out, nil
}

func (u *LLMUsage) add(e *ent.LLMRequestEvent) {
	u.Requests++
	if !e.Success {
		u.Failures++
	}
	u.InputTokens += e.InputTokens
	u.OutputTokens += e.OutputTokens
}
