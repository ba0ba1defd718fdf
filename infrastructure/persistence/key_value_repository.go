package persistence

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/lib/pq"
)

const (
	pqGetSetting = `SELECT value FROM app_settings WHERE name = $1`
	pqSetSetting = `INSERT INTO app_settings (name, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	pqDeleteSettings   = `DELETE FROM app_settings WHERE name = ANY($1)`
	pqIncrementSetting = `INSERT INTO app_settings (name, value, updated_at) VALUES ($1, '1', $2)
		ON CONFLICT (name) DO UPDATE SET value = (CAST(app_settings.value AS BIGINT) + 1)::TEXT, updated_at = EXCLUDED.updated_at
		RETURNING value`
)

// KeyValueRepository stores settings in PostgreSQL.
type KeyValueRepository struct{ db *sql.DB }

func NewKeyValueRepository(db *sql.DB) *KeyValueRepository { return &KeyValueRepository{db: db} }

func (r *KeyValueRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	if err := r.db.QueryRowContext(ctx, pqGetSetting, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *KeyValueRepository) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, pqSetSetting, key, value, time.Now().UTC())
	return err
}

func (r *KeyValueRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.db.ExecContext(ctx, pqDeleteSettings, pq.Array(keys))
	return err
}

func (r *KeyValueRepository) Increment(ctx context.Context, key string) (int64, error) {
	var value string
	if err := r.db.QueryRowContext(ctx, pqIncrementSetting, key, time.Now().UTC()).Scan(&value); err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}
