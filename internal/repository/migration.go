package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"periciapi/internal/kvstore"
	"periciapi/internal/model"
)

// MigrateLegacy rewrites legacy-shaped entries in the record collection to
// the canonical schema, persisting at most once. It is safe to run on every
// start: a second pass over already-canonical data performs zero writes.
//
// A failure here is never fatal to the application: the canonical
// constructor resolves legacy field names on every read regardless, so the
// caller logs the error and keeps going.
func (r *PericiaKV) MigrateLegacy(ctx context.Context) error {
	raw, err := r.kv.Get(ctx, kvstore.KeyPericias)
	if err != nil {
		return fmt.Errorf("ler perícias para migração: %w", err)
	}
	if len(raw) == 0 {
		return nil
	}

	var entries []map[string]any
	if err := json.Unmarshal(raw, &entries); err != nil {
		// Unreadable collection: leave it alone, reads fall back to empty.
		r.log.Warn().Err(err).Msg("coleção de perícias ilegível, migração ignorada")
		return nil
	}

	modified := false
	for i, entry := range entries {
		if model.HasLegacyKeys(entry) {
			entries[i] = model.NewPericia(entry).Map()
			modified = true
		}
	}
	if !modified {
		return nil
	}

	r.log.Info().Int("registros", len(entries)).Msg("migrando perícias para o esquema canônico")

	b, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("serializar perícias migradas: %w", err)
	}
	if err := r.kv.Set(ctx, kvstore.KeyPericias, b); err != nil {
		return fmt.Errorf("persistir perícias migradas: %w", err)
	}
	return nil
}
