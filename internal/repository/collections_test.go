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
	"periciapi/internal/model"
)

func TestMacroKV_AddListDelete(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewMacroKV(kv, zerolog.Nop())
	ctx := context.Background()

	added, err := repo.Add(ctx, model.Macro{Titulo: "Sem alterações", Categoria: "Exame Físico", Conteudo: "<p>Sem alterações dignas de nota.</p>"})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Sem alterações", list[0].Titulo)

	require.NoError(t, repo.Delete(ctx, added.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Unknown ids are ignored.
	assert.NoError(t, repo.Delete(ctx, model.FlexID("nope")))
}

func TestMacroKV_AddKeepsProvidedID(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewMacroKV(kv, zerolog.Nop())

	added, err := repo.Add(context.Background(), model.Macro{ID: "def_1", Titulo: "Importada"})
	require.NoError(t, err)
	assert.Equal(t, model.FlexID("def_1"), added.ID)
}

func TestTemplateKV_AddListDelete(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewTemplateKV(kv, zerolog.Nop())
	ctx := context.Background()

	added, err := repo.Add(ctx, model.Template{Title: "Trabalhista", Data: json.RawMessage(`{"tipoPericia":"Trabalhista"}`)})
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `{"tipoPericia":"Trabalhista"}`, string(list[0].Data))

	require.NoError(t, repo.Delete(ctx, added.ID))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSettingsKV_DefaultWhenAbsent(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewSettingsKV(kv, zerolog.Nop())

	got, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestSettingsKV_SaveAndGet(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewSettingsKV(kv, zerolog.Nop())
	ctx := context.Background()

	want := model.Settings{Nome: "Dra. Ana Souza", CRM: "CRM-SP 12345", Telefone: "(11) 99999-0000"}
	require.NoError(t, repo.Save(ctx, want))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsKV_CorruptedValueFallsBack(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewSettingsKV(kv, zerolog.Nop())
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, kvstore.KeySettings, []byte(`not json at all`)))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), got)
}

func TestDraftKV_SaveGetClear(t *testing.T) {
	kv := memory.NewKVMemory(0)
	repo := NewDraftKV(kv)
	ctx := context.Background()

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	draft := json.RawMessage(`{"nomeAutor":"Rascunho"}`)
	require.NoError(t, repo.Save(ctx, draft))

	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.JSONEq(t, string(draft), string(got))

	require.NoError(t, repo.Clear(ctx))
	got, err = repo.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEnsureDefaults_SeedsEmptySlots(t *testing.T) {
	kv := memory.NewKVMemory(0)
	ctx := context.Background()

	require.NoError(t, EnsureDefaults(ctx, kv, zerolog.Nop()))

	macros, err := NewMacroKV(kv, zerolog.Nop()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, macros, len(model.DefaultMacros))

	templates, err := NewTemplateKV(kv, zerolog.Nop()).List(ctx)
	require.NoError(t, err)
	assert.Len(t, templates, len(model.DefaultTemplates))

	settings, err := NewSettingsKV(kv, zerolog.Nop()).Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), settings)

	raw, err := kv.Get(ctx, kvstore.KeyPericias)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestEnsureDefaults_LeavesOccupiedSlotsAlone(t *testing.T) {
	kv := memory.NewKVMemory(0)
	ctx := context.Background()

	existing := []byte(`[{"id":"m1","titulo":"Minha macro"}]`)
	require.NoError(t, kv.Set(ctx, kvstore.KeyMacros, existing))

	require.NoError(t, EnsureDefaults(ctx, kv, zerolog.Nop()))

	raw, err := kv.Get(ctx, kvstore.KeyMacros)
	require.NoError(t, err)
	assert.JSONEq(t, string(existing), string(raw))
}
