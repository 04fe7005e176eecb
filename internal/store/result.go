package store

import (
	"context"
	"fmt"

	"github.com/abhisek/masquerade/ent"
	"github.com/abhisek/masquerade/ent/gameresult"
)

// resultRepo implements ResultRepo using the ent client.
type resultRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

func (r *resultRepo) Save(ctx context.Context, g GameResult) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	builder := r.client.GameResult.Create().
		SetSequence(seqNum).
		SetSessionID(g.SessionID).
		SetSeed(g.Seed).
		SetWon(g.Won).
		SetDay(g.Day).
		SetHealth(g.Health).
		SetTotalAnswers(g.TotalAnswers).
		SetCorrectAnswers(g.CorrectAnswers)

	if len(g.Skills) > 0 {
		builder = builder.SetSkills(g.Skills)
	}
	if !g.CreatedAt.IsZero() {
		builder = builder.SetTimestamp(g.CreatedAt)
	}

	if _, err := builder.Save(ctx); err != nil {
		return fmt.Errorf("save game result: %w", err)
	}
	return nil
}

func (r *resultRepo) Recent(ctx context.Context, opts QueryOpts) ([]GameResult, error) {
	query := r.client.GameResult.Query().
		Where(gameresult.SequenceGT(opts.After)).
		Order(ent.Desc(gameresult.FieldSequence))

	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	rows, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query game results: %w", err)
	}

	out := make([]GameResult, 0, len(rows))
	for _, g := range rows {
		out = append(out, entResultToResult(g))
	}
	return out, nil
}

func (r *resultRepo) Totals(ctx context.Context) (Totals, error) {
	rows, err := r.client.GameResult.Query().All(ctx)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}

	var t Totals
	for _, g := range rows {
		t.Games++
		if g.Won {
			t.Wins++
		}
		t.TotalAnswers += g.TotalAnswers
		t.CorrectAnswers += g.CorrectAnswers
		t.BestDay = max(t.BestDay, g.Day)
	}
	return t, nil
}

func entResultToResult(g *ent.GameResult) GameResult {
	return GameResult{
		Sequence:       g.Sequence,
		SessionID:      g.SessionID,
		Seed:           g.Seed,
		Won:            g.Won,
		Day:            g.Day,
		Health:         g.Health,
		TotalAnswers:   g.TotalAnswers,
		CorrectAnswers: g.CorrectAnswers,
		Skills:         g.Skills,
		CreatedAt:      g.Timestamp,
	}
}
