package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"periciapi/internal/kvstore"
	"periciapi/internal/kvstore/memory"
)

// countingStore tracks writes so migration tests can assert a second pass
// over canonical data never persists.
type countingStore struct {
	kvstore.Store
	sets int
}

func (c *countingStore) Set(ctx context.Context, key string, value []byte) error {
	c.sets++
	return c.Store.Set(ctx, key, value)
}

func TestMigrateLegacy_RewritesOldFieldNames(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewPericiaKV(kv, zerolog.Nop())
	ctx := context.Background()

	legacy := []byte(`[{"id":1,"numero_processo":"123","nome_autor":"John","created_at":"2024-01-01T00:00:00Z"}]`)
	require.NoError(t, kv.Set(ctx, kvstore.KeyPericias, legacy))

	require.NoError(t, repo.MigrateLegacy(ctx))

	raw, err := kv.Get(ctx, kvstore.KeyPericias)
	require.NoError(t, err)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(raw, &entries))
	require.Len(t, entries, 1)

	assert.Equal(t, "123", entries[0]["numeroProcesso"])
	assert.Equal(t, "John", entries[0]["nomeAutor"])
	assert.Equal(t, "2024-01-01T00:00:00Z", entries[0]["createdAt"])
	assert.NotContains(t, entries[0], "numero_processo")
	assert.NotContains(t, entries[0], "nome_autor")
	assert.NotContains(t, entries[0], "created_at")
}

func TestMigrateLegacy_SecondPassWritesNothing(t *testing.T) {
	counting := &countingStore{Store: memory.NewKVMemory(0)}
	repo := NewPericiaKV(counting, zerolog.Nop())
	ctx := context.Background()

	legacy := []byte(`[{"id":1,"nome_autor":"Maria"}]`)
	require.NoError(t, counting.Set(ctx, kvstore.KeyPericias, legacy))
	counting.sets = 0

	require.NoError(t, repo.MigrateLegacy(ctx))
	assert.Equal(t, 1, counting.sets)

	require.NoError(t, repo.MigrateLegacy(ctx))
	assert.Equal(t, 1, counting.sets, "canonical data must not be rewritten")
}

func TestMigrateLegacy_EmptySlotIsNoOp(t *testing.T) {
	counting := &countingStore{Store: memory.NewKVMemory(0)}
	repo := NewPericiaKV(counting, zerolog.Nop())

	require.NoError(t, repo.MigrateLegacy(context.Background()))
	assert.Zero(t, counting.sets)
}

func TestMigrateLegacy_UnreadableCollectionIsTolerated(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewPericiaKV(kv, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, kvstore.KeyPericias, []byte(`{broken`)))
	assert.NoError(t, repo.MigrateLegacy(ctx))

	// The broken payload stays in place; reads fall back to empty.
	raw, err := kv.Get(ctx, kvstore.KeyPericias)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{broken`), raw)
}
