// Package blobstore holds attachment content (documents, images, signatures)
// in a durable keyed store separate from the key-value collections, because
// base64 payloads are far larger than the slot quota allows.
package blobstore

import (
	"context"
	"errors"

	"periciapi/internal/model"
)

var (
	// ErrNotFound marks an absent blob on read paths. Delete of a missing id
	// is a no-op, not an error.
	ErrNotFound = errors.New("arquivo não encontrado")

	// ErrIDRequired and ErrContentRequired fail a save fast, before any I/O.
	ErrIDRequired      = errors.New("id do arquivo é obrigatório")
	ErrContentRequired = errors.New("conteúdo do arquivo é obrigatório")
)

// FileStore is the blob store contract. Init is idempotent and memoized;
// every other operation triggers it lazily, so callers never sequence
// initialization themselves. A failed save never reports success.
type FileStore interface {
	Init(ctx context.Context) error
	SaveFile(ctx context.Context, id model.FlexID, content string) (model.FlexID, error)
	GetFile(ctx context.Context, id model.FlexID) (string, error)
	DeleteFile(ctx context.Context, id model.FlexID) error
	GetAllFiles(ctx context.Context) ([]model.Arquivo, error)
	Clear(ctx context.Context) error
}
