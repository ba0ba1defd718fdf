package persistence

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"linkedin-autoposter/domain/model"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestPublishAuditRepository_Append(t *testing.T) {
	gormDB, mock := newMockGorm(t)
	repo := NewPublishAuditRepository(gormDB)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `publish_audits`")).
		WillReturnResult(sqlmock.NewResult(1, 2))

	err := repo.Append(context.Background(), []model.PublishAudit{
		{ItemID: "7", Target: model.TargetPersonal, Status: string(model.TargetSucceeded), PostID: "urn:li:share:1"},
		{ItemID: "7", Target: model.TargetOrganization, Status: string(model.TargetFailed), Error: "HTTP 403"},
	})
	require.NoError(t, err)
	require.NoError(t, repo.Append(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishAuditRepository_ListByItem(t *testing.T) {
	gormDB, mock := newMockGorm(t)
	repo := NewPublishAuditRepository(gormDB)
	created := time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `publish_audits` WHERE item_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "target", "status", "post_id", "error", "created_at"}).
			AddRow(2, "7", "organization", "failed", "", "HTTP 403", created).
			AddRow(1, "7", "personal", "succeeded", "urn:li:share:1", "", created))

	rows, err := repo.ListByItem(context.Background(), "7", 20)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "HTTP 403", rows[0].Error)
	assert.Equal(t, "urn:li:share:1", rows[1].PostID)
	require.NoError(t, mock.ExpectationsWereMet())
}
