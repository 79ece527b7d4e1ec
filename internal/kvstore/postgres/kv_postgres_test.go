package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"testing"

	"periciapi/internal/kvstore"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVPostgres_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewKVPostgres(db, 0)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_slots WHERE key = ?").
			WithArgs(kvstore.KeyPericias).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[{"id":1}]`)))

		value, err := store.Get(ctx, kvstore.KeyPericias)

		assert.NoError(t, err)
		assert.JSONEq(t, `[{"id":1}]`, string(value))
	})

	t.Run("absent key yields nil without error", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_slots WHERE key = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		value, err := store.Get(ctx, "missing")

		assert.NoError(t, err)
		assert.Nil(t, value)
	})

	t.Run("driver error is wrapped", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_slots WHERE key = ?").
			WithArgs("boom").
			WillReturnError(errors.New("connection reset"))

		_, err := store.Get(ctx, "boom")

		assert.ErrorContains(t, err, `kvstore get "boom"`)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVPostgres_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewKVPostgres(db, 16)
	ctx := context.Background()

	t.Run("upsert", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_slots").
			WithArgs(kvstore.KeyMacros, []byte(`[]`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, store.Set(ctx, kvstore.KeyMacros, []byte(`[]`)))
	})

	t.Run("quota exceeded surfaces distinctly", func(t *testing.T) {
		big := bytes.Repeat([]byte("x"), 17)

		err := store.Set(ctx, kvstore.KeyPericias, big)

		assert.ErrorIs(t, err, kvstore.ErrQuotaExceeded)
	})

	t.Run("write error is wrapped", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO kv_slots").
			WithArgs(kvstore.KeyMacros, []byte(`[]`)).
			WillReturnError(errors.New("disk full"))

		err := store.Set(ctx, kvstore.KeyMacros, []byte(`[]`))

		assert.Error(t, err)
		assert.NotErrorIs(t, err, kvstore.ErrQuotaExceeded)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := NewKVPostgres(db, 0)

	mock.ExpectExec("DELETE FROM kv_slots WHERE key = ?").
		WithArgs(kvstore.KeyDraft).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Delete(context.Background(), kvstore.KeyDraft))
	assert.NoError(t, mock.ExpectationsWereMet())
}
