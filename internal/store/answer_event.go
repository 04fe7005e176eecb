package store

import (
	"context"
	"fmt"

	"github.com/abhisek/masquerade/ent"
	"github.com/abhisek/masquerade/ent/answerevent"
	"github.com/abhisek/masquerade/ent/skillevent"
)

func (r *eventRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AnswerEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetDay(data.Day).
		SetEncounterID(data.EncounterID).
		SetMask(data.Mask).
		SetOutcome(data.Outcome).
		SetRetry(data.Retry).
		SetHealth(data.Health).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendSkill(ctx context.Context, data SkillEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.SkillEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetDay(data.Day).
		SetSkillType(data.SkillType).
		SetStacks(data.Stacks).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save skill event: %w", err)
	}
	return nil
}

func (r *eventRepo) AnswersForSession(ctx context.Context, sessionID string) ([]AnswerEvent, error) {
	rows, err := r.client.AnswerEvent.Query().
		Where(answerevent.SessionID(sessionID)).
		Order(ent.Asc(answerevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}

	out := make([]AnswerEvent, 0, len(rows))
	for _, e := range rows {
		out = append(out, AnswerEvent{
			AnswerEventData: AnswerEventData{
				SessionID:   e.SessionID,
				Day:         e.Day,
				EncounterID: e.EncounterID,
				Mask:        e.Mask,
				Outcome:     e.Outcome,
				Retry:       e.Retry,
				Health:      e.Health,
			},
			Sequence:  e.Sequence,
			CreatedAt: e.Timestamp,
		})
	}
	return out, nil
}

func (r *eventRepo) OutcomeCounts(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Outcome string `json:"outcome"`
		Count   int    `json:"count"`
	}
	err := r.client.AnswerEvent.Query().
		Where(answerevent.Retry(false)).
		GroupBy(answerevent.FieldOutcome).
		Aggregate(ent.Count()).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query outcome counts: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.Outcome] = row.Count
	}
	return out, nil
}

func (r *eventRepo) SkillPicks(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		SkillType string `json:"skill_type"`
		Count     int    `json:"count"`
	}
	err := r.client.SkillEvent.Query().
		GroupBy(skillevent.FieldSkillType).
		Aggregate(ent.Count()).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("query skill picks: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.SkillType] = row.Count
	}
	return out, nil
}
