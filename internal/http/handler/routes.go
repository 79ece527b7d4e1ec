package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"periciapi/internal/blobstore"
	"periciapi/internal/repository"
	"periciapi/internal/service"
)

// Deps bundles everything the routes need. db may be nil when the key-value
// backend is not Postgres.
type Deps struct {
	DB        *sql.DB
	Pericias  service.PericiaService
	Backup    service.BackupService
	Macros    repository.MacroRepository
	Templates repository.TemplateRepository
	Settings  repository.SettingsRepository
	Drafts    repository.DraftRepository
	Files     blobstore.FileStore
}

// RegisterRoutes attaches the HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	app.Get("/pericias", ListPericias(d.Pericias))
	app.Post("/pericias", SavePericia(d.Pericias))
	app.Get("/pericias/:id", GetPericia(d.Pericias))
	app.Put("/pericias/:id", SavePericia(d.Pericias))
	app.Delete("/pericias/:id", DeletePericia(d.Pericias))
	app.Post("/pericias/:id/finalizar", FinalizePericia(d.Pericias))
	app.Post("/pericias/:id/documentos", AttachDocument(d.Pericias))
	app.Delete("/pericias/:id/documentos/:docId", RemoveDocument(d.Pericias))

	app.Get("/macros", ListMacros(d.Macros))
	app.Post("/macros", AddMacro(d.Macros))
	app.Delete("/macros/:id", DeleteMacro(d.Macros))

	app.Get("/templates", ListTemplates(d.Templates))
	app.Post("/templates", AddTemplate(d.Templates))
	app.Delete("/templates/:id", DeleteTemplate(d.Templates))

	app.Get("/settings", GetSettings(d.Settings))
	app.Put("/settings", SaveSettings(d.Settings))

	app.Get("/draft", GetDraft(d.Drafts))
	app.Put("/draft", SaveDraft(d.Drafts))
	app.Delete("/draft", ClearDraft(d.Drafts))

	app.Get("/files/:id", GetFile(d.Files))

	app.Post("/backup/export", ExportBackup(d.Backup))
	app.Post("/backup/import", ImportBackup(d.Backup))
}
