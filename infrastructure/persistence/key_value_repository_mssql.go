package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	msGetSetting = `SELECT value FROM dbo.app_settings WHERE name = @p1`
	msSetSetting = `MERGE dbo.app_settings WITH (HOLDLOCK) AS t
USING (SELECT @p1 AS name) AS s ON t.name = s.name
WHEN MATCHED THEN UPDATE SET value = @p2, updated_at = @p3
WHEN NOT MATCHED THEN INSERT (name, value, updated_at) VALUES (@p1, @p2, @p3);`
	msIncrementSetting = `MERGE dbo.app_settings WITH (HOLDLOCK) AS t
USING (SELECT @p1 AS name) AS s ON t.name = s.name
WHEN MATCHED THEN UPDATE SET value = CAST(CAST(t.value AS BIGINT) + 1 AS NVARCHAR(MAX)), updated_at = @p2
WHEN NOT MATCHED THEN INSERT (name, value, updated_at) VALUES (@p1, N'1', @p2)
OUTPUT inserted.value;`
)

// KeyValueRepositoryMSSQL stores settings in SQL Server.
type KeyValueRepositoryMSSQL struct{ db *sql.DB }

func NewKeyValueRepositoryMSSQL(db *sql.DB) *KeyValueRepositoryMSSQL {
	return &KeyValueRepositoryMSSQL{db: db}
}

func (r *KeyValueRepositoryMSSQL) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	if err := r.db.QueryRowContext(ctx, msGetSetting, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *KeyValueRepositoryMSSQL) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, msSetSetting, key, value, time.Now().UTC())
	return err
}

func (r *KeyValueRepositoryMSSQL) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	placeholders := make([]string, len(keys))
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		placeholders[i] = fmt.Sprintf("@p%d", i+1)
		args[i] = k
	}
	q := "DELETE FROM dbo.app_settings WHERE name IN (" + strings.Join(placeholders, ", ") + ")"
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *KeyValueRepositoryMSSQL) Increment(ctx context.Context, key string) (int64, error) {
	var value string
	if err := r.db.QueryRowContext(ctx, msIncrementSetting, key, time.Now().UTC()).Scan(&value); err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}
