package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"periciapi/internal/kvstore"
	"periciapi/internal/model"
)

// ErrNotFound marks a lookup for an id that is not in the collection.
var ErrNotFound = errors.New("perícia não encontrada")

// PericiaRepository is CRUD over the record collection. Every read path maps
// entries through the canonical constructor, so callers never see a
// partially-shaped record.
type PericiaRepository interface {
	List(ctx context.Context) ([]model.Pericia, error)
	Get(ctx context.Context, id int64) (*model.Pericia, error)
	Save(ctx context.Context, p *model.Pericia) (*model.Pericia, error)
	Delete(ctx context.Context, id int64) error
}

// ParseID normalizes a route/query identifier once at the boundary. Both "5"
// and 5 in stored data address the same record after normalization.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("identificador inválido: %q", s)
	}
	return id, nil
}

// PericiaKV implements PericiaRepository over a kvstore.Store slot holding
// the whole record collection as one JSON array.
type PericiaKV struct {
	kv  kvstore.Store
	log zerolog.Logger
	now func() time.Time

	mu     sync.Mutex
	lastID int64
}

// NewPericiaKV creates the repository.
func NewPericiaKV(kv kvstore.Store, log zerolog.Logger) *PericiaKV {
	return &PericiaKV{kv: kv, log: log, now: time.Now}
}

var _ PericiaRepository = (*PericiaKV)(nil)

// List reads the raw collection and canonicalizes every entry.
func (r *PericiaKV) List(ctx context.Context) ([]model.Pericia, error) {
	raws, err := r.rawList(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Pericia, 0, len(raws))
	for _, raw := range raws {
		out = append(out, *model.NewPericia(raw))
	}
	return out, nil
}

// Get returns the record with the given id, or ErrNotFound.
func (r *PericiaKV) Get(ctx context.Context, id int64) (*model.Pericia, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, ErrNotFound
}

// Save replaces the entry carrying the record's id, appends when the id is
// unknown, and assigns id plus createdAt for new records. The caller is
// expected to have canonicalized the input; Save re-runs the constructor
// anyway since it is idempotent.
func (r *PericiaKV) Save(ctx context.Context, p *model.Pericia) (*model.Pericia, error) {
	rec := model.NewPericia(p.Map())

	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	if rec.ID != 0 {
		replaced := false
		for i := range list {
			if list[i].ID == rec.ID {
				list[i] = *rec
				replaced = true
				break
			}
		}
		if !replaced {
			// Defensive: an id we have never seen still gets stored.
			list = append(list, *rec)
		}
	} else {
		rec.ID = r.nextID()
		rec.CreatedAt = r.now().UTC().Format(time.RFC3339)
		list = append(list, *rec)
	}

	if err := r.persist(ctx, list); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes matching entries and persists. Deleting an absent id is a
// no-op, not an error.
func (r *PericiaKV) Delete(ctx context.Context, id int64) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, p := range list {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	return r.persist(ctx, kept)
}

func (r *PericiaKV) rawList(ctx context.Context) ([]map[string]any, error) {
	raw, err := r.kv.Get(ctx, kvstore.KeyPericias)
	if err != nil {
		return nil, err
	}
	list := decodeSlot(r.log, raw, []map[string]any{}, "pericias")
	if list == nil {
		list = []map[string]any{}
	}
	return list, nil
}

func (r *PericiaKV) persist(ctx context.Context, list []model.Pericia) error {
	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("serializar perícias: %w", err)
	}
	return r.kv.Set(ctx, kvstore.KeyPericias, b)
}

// nextID derives a millisecond-timestamp identifier, bumped when two saves
// land inside the same millisecond so ids stay strictly increasing within a
// session.
func (r *PericiaKV) nextID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}
