package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periciapi/internal/kvstore"
	"periciapi/internal/kvstore/memory"
	"periciapi/internal/model"
)

func newTestRepo(t *testing.T) (*PericiaKV, kvstore.Store) {
	t.Helper()
	kv := memory.NewKVMemory(0)
	return NewPericiaKV(kv, zerolog.Nop()), kv
}

func TestPericiaKV_SaveAssignsIDAndCreatedAt(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, model.NewPericia(map[string]any{
		"nomeAutor":      "John Doe",
		"numeroProcesso": "123",
	}))
	require.NoError(t, err)

	assert.Positive(t, saved.ID)
	assert.NotEmpty(t, saved.CreatedAt)
	_, err = time.Parse(time.RFC3339, saved.CreatedAt)
	assert.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "John Doe", list[0].NomeAutor)
	assert.Equal(t, "123", list[0].NumeroProcesso)
}

func TestPericiaKV_IDsStrictlyIncreasing(t *testing.T) {
	repo, _ := newTestRepo(t)
	fixed := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	first, err := repo.Save(ctx, model.NewPericia(nil))
	require.NoError(t, err)
	second, err := repo.Save(ctx, model.NewPericia(nil))
	require.NoError(t, err)

	assert.Equal(t, fixed.UnixMilli(), first.ID)
	assert.Equal(t, first.ID+1, second.ID)
}

func TestPericiaKV_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, model.NewPericia(map[string]any{
		"nomeAutor": "Maria",
		"anamnese":  "<p>dor</p>",
	}))
	require.NoError(t, err)

	got, err := repo.Get(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved, got)
}

func TestPericiaKV_LooseIDEquality(t *testing.T) {
	repo, kv := newTestRepo(t)
	ctx := context.Background()

	// Legacy data may carry the id as a string.
	require.NoError(t, kv.Set(ctx, kvstore.KeyPericias, []byte(`[{"id":"5","nomeAutor":"Ana"}]`)))

	got, err := repo.Get(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.NomeAutor)

	id, err := ParseID("5")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	_, err = ParseID("abc")
	assert.Error(t, err)
}

func TestPericiaKV_SaveUpdatesExisting(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, model.NewPericia(map[string]any{"nomeAutor": "John"}))
	require.NoError(t, err)

	saved.NomeAutor = "Jane"
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Jane", list[0].NomeAutor)
}

func TestPericiaKV_SaveUnknownIDAppends(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	p := model.NewPericia(map[string]any{"id": float64(42), "nomeAutor": "Ghost"})
	saved, err := repo.Save(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, int64(42), saved.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestPericiaKV_Delete(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, model.NewPericia(nil))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, saved.ID))

	_, err = repo.Get(ctx, saved.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an id that is not there is a no-op.
	assert.NoError(t, repo.Delete(ctx, saved.ID))
}

func TestPericiaKV_CorruptedCollectionFallsBack(t *testing.T) {
	repo, kv := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, kvstore.KeyPericias, []byte(`{not json`)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPericiaKV_QuotaErrorSurfacesDistinctly(t *testing.T) {
	kv := memory.NewKVMemory(64)
	repo := NewPericiaKV(kv, zerolog.Nop())
	ctx := context.Background()

	_, err := repo.Save(ctx, model.NewPericia(map[string]any{"anamnese": "<p>long narrative</p>"}))
	assert.ErrorIs(t, err, kvstore.ErrQuotaExceeded)
}

func TestPericiaKV_ListCanonicalizesLegacyEntries(t *testing.T) {
	repo, kv := newTestRepo(t)
	ctx := context.Background()

	raw, err := json.Marshal([]map[string]any{
		{"id": 1, "numero_processo": "123", "nome_autor": "John"},
	})
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, kvstore.KeyPericias, raw))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "123", list[0].NumeroProcesso)
	assert.Equal(t, "John", list[0].NomeAutor)
	assert.Equal(t, model.StatusAguardando, list[0].Status)
}
