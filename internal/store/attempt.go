package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const attemptsTable = "quiz_attempts"

var attemptColumns = []string{
	"id", "sequence", "quiz_id", "title", "subject", "chapter", "paper",
	"master_bank", "score", "question_count", "finished_at",
}

type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Record stores a finished attempt. A missing ID or FinishedAt is filled in.
func (r *attemptRepo) Record(ctx context.Context, a QuizAttempt) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.FinishedAt.IsZero() {
		a.FinishedAt = time.Now()
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(attemptsTable).
		Columns(attemptColumns...).
		Values(
			a.ID,
			seqNum,
			a.QuizID,
			a.Title,
			a.Subject,
			a.Chapter,
			a.Paper,
			a.MasterBank,
			a.Score,
			a.QuestionCount,
			a.FinishedAt.UnixMilli(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]QuizAttempt, error) {
	sel := builder().Select(attemptColumns...).
		From(builder().Table(attemptsTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz attempts: %w", err)
	}
	defer rows.Close()

	var out []QuizAttempt
	for rows.Next() {
		var (
			a        QuizAttempt
			finished int64
		)
		err := rows.Scan(
			&a.ID,
			&a.Sequence,
			&a.QuizID,
			&a.Title,
			&a.Subject,
			&a.Chapter,
			&a.Paper,
			&a.MasterBank,
			&a.Score,
			&a.QuestionCount,
			&finished,
		)
		if err != nil {
			return nil, fmt.Errorf("scan quiz attempt: %w", err)
		}
		a.FinishedAt = time.UnixMilli(finished)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Prune(ctx context.Context, keep int) error {
	del := builder().Delete(attemptsTable)

	if keep > 0 {
		// Oldest sequence that survives.
		query, args := builder().Select("sequence").
			From(builder().Table(attemptsTable)).
			OrderBy(entsql.Desc("sequence")).
			Limit(1).
			Offset(keep - 1).
			Query()

		var cutoff int64
		err := r.db.QueryRowContext(ctx, query, args...).Scan(&cutoff)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("find prune cutoff: %w", err)
		}
		del.Where(entsql.LT("sequence", cutoff))
	}

	query, args := del.Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune quiz attempts: %w", err)
	}
	return nil
}
