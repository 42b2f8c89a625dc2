package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/fretwise/pkg/domain"
)

// RecordTransitions replaces the stored ranking of a pair. Sequence 0 is the best transition.
func (s *Store) RecordTransitions(ctx context.Context, pair domain.PairKey, transitions []domain.Transition) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transitions WHERE pair = ?`, pair.String()); err != nil {
		return fmt.Errorf("failed to clear %s: %w", pair, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transitions (pair, seq, name, from_chord, to_chord, finger_movement, hand_movement, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range transitions {
		from, err := json.Marshal(t.From)
		if err != nil {
			return err
		}
		to, err := json.Marshal(t.To)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, pair.String(), i, t.Name, string(from), string(to),
			t.FingerMovement, t.HandMovement, t.Total); err != nil {
			return fmt.Errorf("failed to insert %s: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", pair, err)
	}
	return nil
}

// Transitions loads the recorded ranking of a pair in rank order.
func (s *Store) Transitions(ctx context.Context, pair domain.PairKey) ([]domain.Transition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, from_chord, to_chord, finger_movement, hand_movement, total
		FROM transitions WHERE pair = ? ORDER BY seq`, pair.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", pair, err)
	}
	defer rows.Close()

	var out []domain.Transition
	for rows.Next() {
		var (
			t        domain.Transition
			from, to string
		)
		if err := rows.Scan(&t.Name, &from, &to, &t.FingerMovement, &t.HandMovement, &t.Total); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(from), &t.From); err != nil {
			return nil, fmt.Errorf("corrupt transition %s: %w", t.Name, err)
		}
		if err := json.Unmarshal([]byte(to), &t.To); err != nil {
			return nil, fmt.Errorf("corrupt transition %s: %w", t.Name, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
