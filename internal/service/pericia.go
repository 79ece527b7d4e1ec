package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"periciapi/internal/blobstore"
	"periciapi/internal/model"
	"periciapi/internal/repository"
)

var ErrNotFound = repository.ErrNotFound

// ValidationErrors collects every finalize violation so all offending fields
// can be reported in one pass.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, " ")
}

// PericiaService defines the use cases over the record collection.
type PericiaService interface {
	// List returns every record, canonicalized.
	List(ctx context.Context) ([]model.Pericia, error)

	// Get returns a single record by id.
	Get(ctx context.Context, id int64) (*model.Pericia, error)

	// Save canonicalizes an arbitrary partial payload, applies the status
	// rules against the stored record and persists. A successful save clears
	// the draft slot.
	Save(ctx context.Context, data map[string]any) (*model.Pericia, error)

	// Finalize validates the required report fields and moves the record to
	// its terminal status. Violations come back together as ValidationErrors.
	Finalize(ctx context.Context, id int64) (*model.Pericia, error)

	// Delete removes the record and its attachment blobs.
	Delete(ctx context.Context, id int64) error

	// AttachDocument stores the content as a blob and binds the reference
	// into the record.
	AttachDocument(ctx context.Context, id int64, content, originalName string) (*model.Pericia, error)

	// RemoveDocument deletes the blob and drops the reference.
	RemoveDocument(ctx context.Context, id int64, docID model.FlexID) (*model.Pericia, error)
}

type periciaService struct {
	repo   repository.PericiaRepository
	drafts repository.DraftRepository
	files  blobstore.FileStore
	log    zerolog.Logger
	now    func() time.Time
}

// NewPericiaService constructs the service.
func NewPericiaService(repo repository.PericiaRepository, drafts repository.DraftRepository, files blobstore.FileStore, log zerolog.Logger) PericiaService {
	return &periciaService{repo: repo, drafts: drafts, files: files, log: log, now: time.Now}
}

func (s *periciaService) List(ctx context.Context) ([]model.Pericia, error) {
	return s.repo.List(ctx)
}

func (s *periciaService) Get(ctx context.Context, id int64) (*model.Pericia, error) {
	return s.repo.Get(ctx, id)
}

func (s *periciaService) Save(ctx context.Context, data map[string]any) (*model.Pericia, error) {
	rec := model.NewPericia(data)

	var prev *model.Pericia
	if rec.ID != 0 {
		stored, err := s.repo.Get(ctx, rec.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		prev = stored
	}

	_, explicit := data["status"]
	rec.Status = nextStatus(rec, prev, explicit)

	saved, err := s.repo.Save(ctx, rec)
	if err != nil {
		return nil, err
	}

	// The draft held the unsaved work that just got persisted.
	if err := s.drafts.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Int64("pericia_id", saved.ID).Msg("falha ao limpar rascunho após salvar")
	}
	return saved, nil
}

// nextStatus applies the lifecycle rules. Concluido is terminal. Without an
// explicit status the record is Agendado once an exam date exists, and any
// clinical narrative content moves it to Em Andamento.
func nextStatus(rec, prev *model.Pericia, explicit bool) model.Status {
	if prev != nil && prev.Status == model.StatusConcluido {
		return model.StatusConcluido
	}

	st := rec.Status
	if !explicit {
		st = model.StatusAguardando
		if rec.DataPericia != "" {
			st = model.StatusAgendado
		}
		if prev != nil && prev.Status == model.StatusEmAndamento {
			st = model.StatusEmAndamento
		}
	}

	if st != model.StatusConcluido && (richTextFilled(rec.Anamnese) || richTextFilled(rec.ExameFisico)) {
		st = model.StatusEmAndamento
	}
	return st
}

// richTextFilled treats the editor's empty-paragraph artifact as no content.
func richTextFilled(s string) bool {
	trimmed := strings.TrimSpace(s)
	return trimmed != "" && trimmed != "<p><br></p>"
}

func (s *periciaService) Finalize(ctx context.Context, id int64) (*model.Pericia, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	var violations ValidationErrors
	if strings.TrimSpace(rec.NumeroProcesso) == "" {
		violations = append(violations, "Número do Processo é obrigatório.")
	}
	if strings.TrimSpace(rec.NomeAutor) == "" {
		violations = append(violations, "Nome do Autor é obrigatório.")
	}
	if strings.TrimSpace(rec.CID) == "" {
		violations = append(violations, "Diagnóstico (CID) é obrigatório.")
	}
	if !richTextFilled(rec.Conclusao) {
		violations = append(violations, "Conclusão é obrigatória.")
	}
	if len(violations) > 0 {
		return nil, violations
	}

	rec.Status = model.StatusConcluido
	return s.repo.Save(ctx, rec)
}

func (s *periciaService) Delete(ctx context.Context, id int64) error {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	// Attachment blobs go first, best effort. A blob the store no longer has
	// is not worth failing the delete over.
	for _, doc := range rec.Documentos {
		if err := s.files.DeleteFile(ctx, doc.ID); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
			s.log.Warn().Err(err).Int64("pericia_id", id).Str("arquivo_id", doc.ID.String()).
				Msg("falha ao remover anexo durante exclusão")
		}
	}

	return s.repo.Delete(ctx, id)
}

func (s *periciaService) AttachDocument(ctx context.Context, id int64, content, originalName string) (*model.Pericia, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fileID, err := s.files.SaveFile(ctx, model.NewFileID(s.now().UnixMilli()), content)
	if err != nil {
		return nil, err
	}

	rec.Documentos = append(rec.Documentos, model.DocumentoRef{ID: fileID, OriginalName: originalName})
	saved, err := s.repo.Save(ctx, rec)
	if err != nil {
		// Roll the blob back so a failed save leaves no orphan.
		if delErr := s.files.DeleteFile(ctx, fileID); delErr != nil {
			s.log.Warn().Err(delErr).Str("arquivo_id", fileID.String()).Msg("falha ao desfazer anexo órfão")
		}
		return nil, err
	}
	return saved, nil
}

func (s *periciaService) RemoveDocument(ctx context.Context, id int64, docID model.FlexID) (*model.Pericia, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	kept := rec.Documentos[:0]
	found := false
	for _, doc := range rec.Documentos {
		if doc.ID == docID {
			found = true
			continue
		}
		kept = append(kept, doc)
	}
	if !found {
		return rec, nil
	}
	rec.Documentos = kept

	if err := s.files.DeleteFile(ctx, docID); err != nil && !errors.Is(err, blobstore.ErrNotFound) {
		return nil, err
	}
	return s.repo.Save(ctx, rec)
}
