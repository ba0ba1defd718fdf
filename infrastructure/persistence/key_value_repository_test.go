package persistence

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValueRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewKeyValueRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(pqGetSetting)).
		WithArgs(KeyAccessToken).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("token-123"))
	mock.ExpectQuery(regexp.QuoteMeta(pqGetSetting)).
		WithArgs(KeyMemberID).
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, ok, err := repo.Get(context.Background(), KeyAccessToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token-123", v)

	v, ok, err = repo.Get(context.Background(), KeyMemberID)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", v)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValueRepository_SetAndDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewKeyValueRepository(db)

	mock.ExpectExec(regexp.QuoteMeta(pqSetSetting)).
		WithArgs(KeyPostTarget, "both", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(pqDeleteSettings)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 4))

	require.NoError(t, repo.Set(context.Background(), KeyPostTarget, "both"))
	require.NoError(t, repo.Delete(context.Background(), KeyAccessToken, KeyTokenExpires, KeyMemberID, KeyOrganizations))
	require.NoError(t, repo.Delete(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValueRepository_Increment(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewKeyValueRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(pqIncrementSetting)).
		WithArgs(KeyGalleryRotationIndex, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("4"))

	n, err := repo.Increment(context.Background(), KeyGalleryRotationIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValueRepositoryMSSQL_DeleteAndIncrement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewKeyValueRepositoryMSSQL(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM dbo.app_settings WHERE name IN (@p1, @p2)")).
		WithArgs(KeyAccessToken, KeyTokenExpires).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery(regexp.QuoteMeta(msIncrementSetting)).
		WithArgs(KeyGalleryRotationIndex, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1"))
	mock.ExpectQuery(regexp.QuoteMeta(msGetSetting)).
		WithArgs(KeyGalleryRotationIndex).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("1"))

	require.NoError(t, repo.Delete(context.Background(), KeyAccessToken, KeyTokenExpires))
	n, err := repo.Increment(context.Background(), KeyGalleryRotationIndex)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	v, ok, err := repo.Get(context.Background(), KeyGalleryRotationIndex)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryKeyValue_IncrementConcurrent(t *testing.T) {
	kv := NewMemoryKeyValue()
	ctx := context.Background()

	done := make(chan int64, 50)
	for i := 0; i < 50; i++ {
		go func() {
			n, err := kv.Increment(ctx, KeyGalleryRotationIndex)
			assert.NoError(t, err)
			done <- n
		}()
	}
	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		seen[<-done] = true
	}
	assert.Len(t, seen, 50)

	v, ok, _ := kv.Get(ctx, KeyGalleryRotationIndex)
	assert.True(t, ok)
	assert.Equal(t, "50", v)
}
