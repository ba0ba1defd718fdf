package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// EnsureSettingsSchema creates the app_settings table if it is missing.
func EnsureSettingsSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ddl := `CREATE TABLE IF NOT EXISTS app_settings (
		name VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create app_settings: %w", err)
	}
	return nil
}

// EnsureSettingsSchemaMSSQL creates dbo.app_settings for SQL Server if it does not exist.
func EnsureSettingsSchemaMSSQL(db *sql.DB) error {
	ddl := `IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.app_settings') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.[app_settings] (
        name NVARCHAR(255) NOT NULL PRIMARY KEY,
        value NVARCHAR(MAX) NOT NULL,
        updated_at DATETIME2 NOT NULL
    );
END`
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create app_settings (mssql): %w", err)
	}
	return nil
}
