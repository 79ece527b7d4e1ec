package handler

import (
	"github.com/gofiber/fiber/v2"

	"periciapi/internal/blobstore"
	"periciapi/internal/model"
	"periciapi/internal/service"
)

type exportRequest struct {
	Passphrase string `json:"passphrase"`
}

type importRequest struct {
	Content    string `json:"content"`
	Passphrase string `json:"passphrase"`
}

// ExportBackup assembles the full-state snapshot, optionally sealed with a
// passphrase.
func ExportBackup(svc service.BackupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req exportRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
			}
		}
		res, err := svc.Export(c.UserContext(), req.Passphrase)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// ImportBackup restores a snapshot, replacing each collection it carries.
func ImportBackup(svc service.BackupService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req importRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		}
		if req.Content == "" {
			return writeError(c, fiber.StatusBadRequest, "CONTENT_REQUIRED", "conteúdo do backup é obrigatório")
		}
		if err := svc.Import(c.UserContext(), []byte(req.Content), req.Passphrase); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "restaurado"})
	}
}

// GetFile returns one stored blob by id.
func GetFile(files blobstore.FileStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := model.FlexID(c.Params("id"))
		content, err := files.GetFile(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(model.Arquivo{ID: id, Content: content})
	}
}
