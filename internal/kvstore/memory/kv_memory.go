package memory

import (
	"context"
	"fmt"
	"sync"

	"periciapi/internal/kvstore"
)

// KVMemory is a map-backed kvstore.Store. It backs KV_BACKEND=memory for
// local development and doubles as the store used by repository tests.
type KVMemory struct {
	mu    sync.RWMutex
	slots map[string][]byte
	quota int
}

func NewKVMemory(quotaBytes int) *KVMemory {
	if quotaBytes <= 0 {
		quotaBytes = 5 * 1024 * 1024
	}
	return &KVMemory{slots: make(map[string][]byte), quota: quotaBytes}
}

var _ kvstore.Store = (*KVMemory)(nil)

func (s *KVMemory) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.slots[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (s *KVMemory) Set(_ context.Context, key string, value []byte) error {
	if len(value) > s.quota {
		return fmt.Errorf("kvstore set %q (%d bytes): %w", key, len(value), kvstore.ErrQuotaExceeded)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	s.slots[key] = stored
	return nil
}

func (s *KVMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, key)
	return nil
}
