package kvstore

import (
	"context"
	"errors"
)

// Fixed slot keys for the persisted collections. The names are inherited from
// the original client database and kept stable so old backups restore cleanly.
const (
	KeyPericias  = "pericia_sys_data"
	KeyMacros    = "pericia_sys_macros"
	KeySettings  = "pericia_sys_settings"
	KeyTemplates = "pericia_sys_templates"
	KeyDraft     = "pericia_draft"
)

// ErrQuotaExceeded is returned by Set when a value would exceed the configured
// storage quota. Callers surface it as a user-actionable condition, distinct
// from generic write failure.
var ErrQuotaExceeded = errors.New("limite de armazenamento excedido")

// Store is synchronous-style keyed persistence for the JSON collections.
// Get returns (nil, nil) for an absent key; interpretation of the bytes,
// including recovery from corrupted JSON, is the caller's concern.
// Implementations live in subpackages (postgres, redis).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
