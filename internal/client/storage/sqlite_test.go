package storage

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLite_SetAndGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "authToken", "a.b.c"))

	v, ok, err := s.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "a.b.c", v)
}

func TestSQLite_Get_NotExists(t *testing.T) {
	s := setupStore(t)

	v, ok, err := s.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSQLite_Set_Overwrites(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "old"))
	require.NoError(t, s.Set(ctx, "k", "new"))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "new", v)
}

func TestSQLite_Remove_IsIdempotent(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "x", "1"))
	require.NoError(t, s.Remove(ctx, "x"))

	_, ok, err := s.Get(ctx, "x")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx, "x"))
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.db")
	ctx := context.Background()

	s1, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, "authToken", "tok"))
	require.NoError(t, s1.Close())

	s2, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	v, ok, err := s2.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestSQLite_NewSQLiteStore_CloseIsNoop(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, NewSQLiteStore(db).Close())
}

func TestSQLite_ErrorsWrapped(t *testing.T) {
	boom := errors.New("disk I/O error")
	ctx := context.Background()

	t.Run("get", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM kv WHERE key = ?`)).
			WithArgs("k").
			WillReturnError(boom)

		_, ok, err := NewSQLiteStore(db).Get(ctx, "k")
		require.ErrorIs(t, err, boom)
		assert.False(t, ok)
		assert.Contains(t, err.Error(), "failed to get kv[k]")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO kv`)).
			WithArgs("k", "v").
			WillReturnError(boom)

		err = NewSQLiteStore(db).Set(ctx, "k", "v")
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to set kv[k]")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("remove", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM kv WHERE key = ?`)).
			WithArgs("k").
			WillReturnError(boom)

		err = NewSQLiteStore(db).Remove(ctx, "k")
		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "failed to delete kv[k]")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
