package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const stateTable = "client_state"

type stateRepo struct {
	drv *entsql.Driver
}

func (r *stateRepo) Get(ctx context.Context, key string) (string, bool, error) {
	rows, err := selectRows(ctx, r.drv, sqlite.Select("value").
		From(entsql.Table(stateTable)).
		Where(entsql.EQ("key", key)))
	if err != nil {
		return "", false, fmt.Errorf("get state %q: %w", key, err)
	}
	defer rows.Close()

	value, err := entsql.ScanString(rows)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get state %q: %w", key, err)
	}
	return value, true, nil
}

func (r *stateRepo) Set(ctx context.Context, key, value string) error {
	_, err := execQuery(ctx, r.drv, sqlite.Insert(stateTable).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()))
	if err != nil {
		return fmt.Errorf("set state %q: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Delete(ctx context.Context, key string) error {
	_, err := execQuery(ctx, r.drv, sqlite.Delete(stateTable).Where(entsql.EQ("key", key)))
	if err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}
