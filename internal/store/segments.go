package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/segment/internal/segment"
)

// Utterance is one transcript row: what the user said and what the
// engine answered.
type Utterance struct {
	Seq      int64
	Text     string
	Response string
	Outcome  segment.Outcome
}

// Conditions returns a segment's conditions in display order.
// Returns an empty slice (not nil) for an empty or unknown segment.
func (s *Store) Conditions(ctx context.Context, name string) ([]segment.Condition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, field, operator, value, time_range, logic_operator
		FROM conditions
		WHERE segment = ?
		ORDER BY position ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query conditions: %w", err)
	}
	defer rows.Close()

	conditions := []segment.Condition{}
	for rows.Next() {
		var c segment.Condition
		if err := rows.Scan(&c.ID, &c.Field, &c.Operator, &c.Value, &c.TimeRange, &c.LogicOperator); err != nil {
			return nil, fmt.Errorf("scan condition: %w", err)
		}
		conditions = append(conditions, c)
	}
	return conditions, rows.Err()
}

// Apply records one parse turn atomically, in the order the contract
// prescribes: retroactively update the previous last condition's
// logic operator, delete removed conditions, append new ones, then
// log the utterance and response to the transcript.
func (s *Store) Apply(ctx context.Context, name, utterance string, result segment.ParseResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin apply: %w", err)
	}
	defer tx.Rollback()

	if result.UpdatePreviousLogic != "" {
		if err := updateLastLogic(ctx, tx, name, result.UpdatePreviousLogic); err != nil {
			return err
		}
	}

	for _, cond := range result.RemovedConditions {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM conditions WHERE segment = ? AND id = ?
		`, name, cond.ID); err != nil {
			return fmt.Errorf("delete condition %s: %w", cond.ID, err)
		}
	}

	if len(result.NewConditions) > 0 {
		next, err := nextPosition(ctx, tx, name)
		if err != nil {
			return err
		}
		for i, cond := range result.NewConditions {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO conditions (id, segment, position, field, operator, value, time_range, logic_operator)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, cond.ID, name, next+int64(i), string(cond.Field), string(cond.Operator), cond.Value, cond.TimeRange, string(cond.LogicOperator)); err != nil {
				return fmt.Errorf("insert condition %s: %w", cond.ID, err)
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO utterances (segment, text, response, outcome)
		VALUES (?, ?, ?, ?)
	`, name, utterance, result.Response, string(result.Outcome)); err != nil {
		return fmt.Errorf("insert utterance: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply: %w", err)
	}
	return nil
}

// updateLastLogic sets the logic operator of the segment's last
// condition, joining it to the batch about to be appended.
func updateLastLogic(ctx context.Context, tx *sql.Tx, name string, logic segment.LogicOperator) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE conditions SET logic_operator = ?
		WHERE segment = ? AND position = (
			SELECT MAX(position) FROM conditions WHERE segment = ?
		)
	`, string(logic), name, name)
	if err != nil {
		return fmt.Errorf("update previous logic: %w", err)
	}
	return nil
}

func nextPosition(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var next sql.NullInt64
	err := tx.QueryRowContext(ctx, `
		SELECT MAX(position) + 1 FROM conditions WHERE segment = ?
	`, name).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next position: %w", err)
	}
	if !next.Valid {
		return 0, nil
	}
	return next.Int64, nil
}

// Transcript returns a segment's chat history in order.
func (s *Store) Transcript(ctx context.Context, name string) ([]Utterance, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, text, response, outcome
		FROM utterances
		WHERE segment = ?
		ORDER BY seq ASC
	`, name)
	if err != nil {
		return nil, fmt.Errorf("query transcript: %w", err)
	}
	defer rows.Close()

	var transcript []Utterance
	for rows.Next() {
		var u Utterance
		if err := rows.Scan(&u.Seq, &u.Text, &u.Response, &u.Outcome); err != nil {
			return nil, fmt.Errorf("scan utterance: %w", err)
		}
		transcript = append(transcript, u)
	}
	return transcript, rows.Err()
}

// Reset deletes a segment's conditions and transcript but keeps the
// segment row.
func (s *Store) Reset(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM conditions WHERE segment = ?`, name); err != nil {
		return fmt.Errorf("reset conditions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM utterances WHERE segment = ?`, name); err != nil {
		return fmt.Errorf("reset transcript: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
