package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type preferenceRepo struct {
	db *sql.DB
}

func (r *preferenceRepo) Get(ctx context.Context, key string) (string, bool, error) {
	query, args := builder().Select("value").
		From(builder().Table("preferences")).
		Where(entsql.EQ("key", key)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, true, nil
}

func (r *preferenceRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert("preferences").
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}
