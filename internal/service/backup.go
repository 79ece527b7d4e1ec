package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"periciapi/internal/backupcrypto"
	"periciapi/internal/blobstore"
	"periciapi/internal/kvstore"
	"periciapi/internal/model"
	"periciapi/internal/repository"
)

var (
	// ErrInvalidBackup marks content that parsed but carries none of the
	// expected collections. Nothing is touched in that case.
	ErrInvalidBackup = errors.New("arquivo de backup inválido")

	// ErrEncryptedBackup marks unparseable content imported without a
	// passphrase. Distinct from corruption: the file may simply be encrypted.
	ErrEncryptedBackup = errors.New("arquivo pode estar criptografado; informe a senha")

	// ErrWrongPassphrase marks a decryption or post-decryption parse failure.
	// Wrong passphrase and corrupted ciphertext are indistinguishable.
	ErrWrongPassphrase = errors.New("senha incorreta ou arquivo corrompido")

	// ErrCipherUnavailable marks a passphrase-protected operation requested
	// while no cipher is wired in. Exporting plaintext silently instead would
	// betray the caller's intent.
	ErrCipherUnavailable = errors.New("criptografia indisponível")
)

// ExportResult is the assembled backup artifact.
type ExportResult struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// BackupService exports and restores the full persisted state.
type BackupService interface {
	Export(ctx context.Context, passphrase string) (*ExportResult, error)
	Import(ctx context.Context, content []byte, passphrase string) error
}

type backupService struct {
	pericias  repository.PericiaRepository
	macros    repository.MacroRepository
	templates repository.TemplateRepository
	settings  repository.SettingsRepository
	kv        kvstore.Store
	files     blobstore.FileStore
	cipher    backupcrypto.Cipher
	log       zerolog.Logger
	now       func() time.Time
}

// NewBackupService constructs the service. cipher may be nil, in which case
// passphrase-protected export and import fail with ErrCipherUnavailable.
func NewBackupService(
	pericias repository.PericiaRepository,
	macros repository.MacroRepository,
	templates repository.TemplateRepository,
	settings repository.SettingsRepository,
	kv kvstore.Store,
	files blobstore.FileStore,
	cipher backupcrypto.Cipher,
	log zerolog.Logger,
) BackupService {
	return &backupService{
		pericias:  pericias,
		macros:    macros,
		templates: templates,
		settings:  settings,
		kv:        kv,
		files:     files,
		cipher:    cipher,
		log:       log,
		now:       time.Now,
	}
}

func (s *backupService) Export(ctx context.Context, passphrase string) (*ExportResult, error) {
	pericias, err := s.pericias.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar perícias: %w", err)
	}
	macros, err := s.macros.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar macros: %w", err)
	}
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar templates: %w", err)
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar configurações: %w", err)
	}
	files, err := s.files.GetAllFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("exportar arquivos: %w", err)
	}

	doc := model.Backup{
		Pericias:   pericias,
		Macros:     macros,
		Settings:   settings,
		Templates:  templates,
		ExportDate: s.now().UTC().Format(time.RFC3339),
		Files:      files,
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializar backup: %w", err)
	}

	filename := "backup_pericias_" + s.now().UTC().Format("2006-01-02") + ".json"
	if passphrase == "" {
		return &ExportResult{Filename: filename, Content: string(payload)}, nil
	}

	if s.cipher == nil {
		return nil, ErrCipherUnavailable
	}
	sealed, err := s.cipher.Encrypt(payload, passphrase)
	if err != nil {
		return nil, fmt.Errorf("criptografar backup: %w", err)
	}
	return &ExportResult{Filename: filename + ".enc", Content: sealed}, nil
}

// backupDoc keeps each collection raw so presence and content are decided
// separately: an absent key must not overwrite, an empty list must.
type backupDoc struct {
	Pericias  json.RawMessage `json:"pericias"`
	Macros    json.RawMessage `json:"macros"`
	Settings  json.RawMessage `json:"settings"`
	Templates json.RawMessage `json:"templates"`
	Files     []model.Arquivo `json:"files"`
	HasFiles  bool            `json:"-"`
}

func (s *backupService) Import(ctx context.Context, content []byte, passphrase string) error {
	doc, err := s.parse(content, passphrase)
	if err != nil {
		return err
	}

	if doc.Pericias == nil && doc.Macros == nil {
		return ErrInvalidBackup
	}

	slots := []struct {
		key string
		raw json.RawMessage
	}{
		{kvstore.KeyPericias, doc.Pericias},
		{kvstore.KeyMacros, doc.Macros},
		{kvstore.KeySettings, doc.Settings},
		{kvstore.KeyTemplates, doc.Templates},
	}
	for _, slot := range slots {
		if slot.raw == nil {
			continue
		}
		if err := s.kv.Set(ctx, slot.key, slot.raw); err != nil {
			return fmt.Errorf("restaurar %s: %w", slot.key, err)
		}
	}

	// A backup without files leaves existing attachments alone. One with
	// files replaces the blob store wholesale.
	if !doc.HasFiles {
		return nil
	}
	if err := s.files.Clear(ctx); err != nil {
		return fmt.Errorf("limpar arquivos para restauração: %w", err)
	}
	for _, f := range doc.Files {
		if _, err := s.files.SaveFile(ctx, f.ID, f.Content); err != nil {
			return fmt.Errorf("restaurar arquivo %s: %w", f.ID, err)
		}
	}
	s.log.Info().Int("arquivos", len(doc.Files)).Msg("backup restaurado")
	return nil
}

// parse tries plain JSON first and falls back to decryption, reporting the
// failure mode as precisely as the information allows.
func (s *backupService) parse(content []byte, passphrase string) (*backupDoc, error) {
	if doc, ok := decodeBackup(content); ok {
		return doc, nil
	}

	if passphrase == "" {
		return nil, ErrEncryptedBackup
	}
	if s.cipher == nil {
		return nil, ErrCipherUnavailable
	}

	plain, err := s.cipher.Decrypt(string(content), passphrase)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	doc, ok := decodeBackup(plain)
	if !ok {
		return nil, ErrWrongPassphrase
	}
	return doc, nil
}

func decodeBackup(content []byte) (*backupDoc, bool) {
	var doc backupDoc
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(content, &probe); err != nil {
		return nil, false
	}
	_, doc.HasFiles = probe["files"]
	return &doc, true
}
