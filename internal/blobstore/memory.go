package blobstore

import (
	"context"
	"sort"
	"sync"

	"periciapi/internal/model"
)

// memoryStore is a map-backed FileStore. It backs FILE_BACKEND=memory for
// local development and the backup round-trip tests.
type memoryStore struct {
	mu    sync.RWMutex
	files map[model.FlexID]string
}

// NewMemory creates an empty in-memory blob store.
func NewMemory() FileStore {
	return &memoryStore{files: make(map[model.FlexID]string)}
}

func (m *memoryStore) Init(context.Context) error { return nil }

func (m *memoryStore) SaveFile(_ context.Context, id model.FlexID, content string) (model.FlexID, error) {
	if id == "" {
		return "", ErrIDRequired
	}
	if content == "" {
		return "", ErrContentRequired
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[id] = content
	return id, nil
}

func (m *memoryStore) GetFile(_ context.Context, id model.FlexID) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[id]
	if !ok {
		return "", ErrNotFound
	}
	return content, nil
}

func (m *memoryStore) DeleteFile(_ context.Context, id model.FlexID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, id)
	return nil
}

func (m *memoryStore) GetAllFiles(context.Context) ([]model.Arquivo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	files := make([]model.Arquivo, 0, len(m.files))
	for id, content := range m.files {
		files = append(files, model.Arquivo{ID: id, Content: content})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
	return files, nil
}

func (m *memoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[model.FlexID]string)
	return nil
}
