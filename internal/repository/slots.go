package repository

import (
	"encoding/json"

	"github.com/rs/zerolog"
)

// decodeSlot parses a stored slot value, substituting the fallback when the
// stored string is corrupted. Corruption is logged and never propagated.
func decodeSlot[T any](log zerolog.Logger, raw []byte, fallback T, slot string) T {
	if len(raw) == 0 {
		return fallback
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().Err(err).Str("slot", slot).Msg("valor armazenado corrompido, usando fallback")
		return fallback
	}
	return v
}
