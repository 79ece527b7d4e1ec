package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"periciapi/internal/kvstore"
	"periciapi/internal/model"
)

// MacroRepository manages the reusable text snippets. Macros have no
// update-in-place operation: they are added and deleted whole.
type MacroRepository interface {
	List(ctx context.Context) ([]model.Macro, error)
	Add(ctx context.Context, m model.Macro) (model.Macro, error)
	Delete(ctx context.Context, id model.FlexID) error
}

// TemplateRepository manages the partial pre-fills for new records.
type TemplateRepository interface {
	List(ctx context.Context) ([]model.Template, error)
	Add(ctx context.Context, t model.Template) (model.Template, error)
	Delete(ctx context.Context, id model.FlexID) error
}

// SettingsRepository manages the practitioner's singleton settings record.
type SettingsRepository interface {
	Get(ctx context.Context) (model.Settings, error)
	Save(ctx context.Context, s model.Settings) error
}

// DraftRepository holds the in-progress unsaved record for recovery after an
// unexpected navigation-away. The content is kept raw; the canonical
// constructor shapes it when the draft is resumed.
type DraftRepository interface {
	Get(ctx context.Context) (json.RawMessage, error)
	Save(ctx context.Context, draft json.RawMessage) error
	Clear(ctx context.Context) error
}

// MacroKV implements MacroRepository over the macro slot.
type MacroKV struct {
	kv  kvstore.Store
	log zerolog.Logger
	now func() time.Time
}

func NewMacroKV(kv kvstore.Store, log zerolog.Logger) *MacroKV {
	return &MacroKV{kv: kv, log: log, now: time.Now}
}

var _ MacroRepository = (*MacroKV)(nil)

func (r *MacroKV) List(ctx context.Context) ([]model.Macro, error) {
	raw, err := r.kv.Get(ctx, kvstore.KeyMacros)
	if err != nil {
		return nil, err
	}
	list := decodeSlot(r.log, raw, []model.Macro{}, "macros")
	if list == nil {
		list = []model.Macro{}
	}
	return list, nil
}

func (r *MacroKV) Add(ctx context.Context, m model.Macro) (model.Macro, error) {
	list, err := r.List(ctx)
	if err != nil {
		return model.Macro{}, err
	}
	if m.ID == "" {
		m.ID = model.NewFileID(r.now().UnixMilli())
	}
	list = append(list, m)
	if err := persistSlot(ctx, r.kv, kvstore.KeyMacros, list); err != nil {
		return model.Macro{}, err
	}
	return m, nil
}

func (r *MacroKV) Delete(ctx context.Context, id model.FlexID) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, m := range list {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	return persistSlot(ctx, r.kv, kvstore.KeyMacros, kept)
}

// TemplateKV implements TemplateRepository over the template slot.
type TemplateKV struct {
	kv  kvstore.Store
	log zerolog.Logger
	now func() time.Time
}

func NewTemplateKV(kv kvstore.Store, log zerolog.Logger) *TemplateKV {
	return &TemplateKV{kv: kv, log: log, now: time.Now}
}

var _ TemplateRepository = (*TemplateKV)(nil)

func (r *TemplateKV) List(ctx context.Context) ([]model.Template, error) {
	raw, err := r.kv.Get(ctx, kvstore.KeyTemplates)
	if err != nil {
		return nil, err
	}
	list := decodeSlot(r.log, raw, []model.Template{}, "templates")
	if list == nil {
		list = []model.Template{}
	}
	return list, nil
}

func (r *TemplateKV) Add(ctx context.Context, t model.Template) (model.Template, error) {
	list, err := r.List(ctx)
	if err != nil {
		return model.Template{}, err
	}
	if t.ID == "" {
		t.ID = model.NewFileID(r.now().UnixMilli())
	}
	list = append(list, t)
	if err := persistSlot(ctx, r.kv, kvstore.KeyTemplates, list); err != nil {
		return model.Template{}, err
	}
	return t, nil
}

func (r *TemplateKV) Delete(ctx context.Context, id model.FlexID) error {
	list, err := r.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, t := range list {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(list) {
		return nil
	}
	return persistSlot(ctx, r.kv, kvstore.KeyTemplates, kept)
}

// SettingsKV implements SettingsRepository over the settings slot.
type SettingsKV struct {
	kv  kvstore.Store
	log zerolog.Logger
}

func NewSettingsKV(kv kvstore.Store, log zerolog.Logger) *SettingsKV {
	return &SettingsKV{kv: kv, log: log}
}

var _ SettingsRepository = (*SettingsKV)(nil)

func (r *SettingsKV) Get(ctx context.Context) (model.Settings, error) {
	raw, err := r.kv.Get(ctx, kvstore.KeySettings)
	if err != nil {
		return model.Settings{}, err
	}
	return decodeSlot(r.log, raw, model.DefaultSettings(), "settings"), nil
}

func (r *SettingsKV) Save(ctx context.Context, s model.Settings) error {
	return persistSlot(ctx, r.kv, kvstore.KeySettings, s)
}

// DraftKV implements DraftRepository over the draft slot.
type DraftKV struct {
	kv kvstore.Store
}

func NewDraftKV(kv kvstore.Store) *DraftKV {
	return &DraftKV{kv: kv}
}

var _ DraftRepository = (*DraftKV)(nil)

func (r *DraftKV) Get(ctx context.Context) (json.RawMessage, error) {
	raw, err := r.kv.Get(ctx, kvstore.KeyDraft)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (r *DraftKV) Save(ctx context.Context, draft json.RawMessage) error {
	return r.kv.Set(ctx, kvstore.KeyDraft, draft)
}

func (r *DraftKV) Clear(ctx context.Context) error {
	return r.kv.Delete(ctx, kvstore.KeyDraft)
}

// EnsureDefaults seeds empty slots on first boot: empty record collection,
// the default macro and template sets, and the default settings record.
// Occupied slots are left untouched.
func EnsureDefaults(ctx context.Context, kv kvstore.Store, log zerolog.Logger) error {
	seed := func(key string, value any) error {
		raw, err := kv.Get(ctx, key)
		if err != nil {
			return err
		}
		if len(raw) > 0 {
			return nil
		}
		log.Info().Str("slot", key).Msg("populando valores padrão")
		return persistSlot(ctx, kv, key, value)
	}

	if err := seed(kvstore.KeyPericias, []model.Pericia{}); err != nil {
		return err
	}
	if err := seed(kvstore.KeyTemplates, model.DefaultTemplates); err != nil {
		return err
	}
	if err := seed(kvstore.KeyMacros, model.DefaultMacros); err != nil {
		return err
	}
	return seed(kvstore.KeySettings, model.DefaultSettings())
}

func persistSlot(ctx context.Context, kv kvstore.Store, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serializar %s: %w", key, err)
	}
	return kv.Set(ctx, key, b)
}
