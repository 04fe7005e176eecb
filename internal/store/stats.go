package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/masquerade/ent"
	"github.com/abhisek/masquerade/ent/stat"
)

const lastGameKey = "last_game"

// statsRepo implements StatsRepo over the stats key/value table.
type statsRepo struct {
	client *ent.Client
}

func (r *statsRepo) SaveLastGame(ctx context.Context, g LastGame) error {
	b, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("marshal last game: %w", err)
	}

	n, err := r.client.Stat.Update().
		Where(stat.Key(lastGameKey)).
		SetData(string(b)).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update last game: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.Stat.Create().
		SetKey(lastGameKey).
		SetData(string(b)).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save last game: %w", err)
	}
	return nil
}

func (r *statsRepo) LastGame(ctx context.Context) (*LastGame, error) {
	s, err := r.client.Stat.Query().
		Where(stat.Key(lastGameKey)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("query last game: %w", err)
	}

	var g LastGame
	if err := json.Unmarshal([]byte(s.Data), &g); err != nil {
		return nil, fmt.Errorf("unmarshal last game: %w", err)
	}
	return &g, nil
}
