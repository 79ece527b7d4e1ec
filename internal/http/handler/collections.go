package handler

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"periciapi/internal/model"
	"periciapi/internal/repository"
)

// ListMacros returns the canned text snippets.
func ListMacros(repo repository.MacroRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := repo.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// AddMacro stores a new snippet, assigning an id when absent.
func AddMacro(repo repository.MacroRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m model.Macro
		if err := c.BodyParser(&m); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		}
		added, err := repo.Add(c.UserContext(), m)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

// DeleteMacro removes a snippet; unknown ids are a no-op.
func DeleteMacro(repo repository.MacroRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := repo.Delete(c.UserContext(), model.FlexID(c.Params("id"))); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListTemplates returns the record pre-fills.
func ListTemplates(repo repository.TemplateRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := repo.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// AddTemplate stores a new pre-fill, assigning an id when absent.
func AddTemplate(repo repository.TemplateRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var t model.Template
		if err := c.BodyParser(&t); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		}
		added, err := repo.Add(c.UserContext(), t)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(added)
	}
}

// DeleteTemplate removes a pre-fill; unknown ids are a no-op.
func DeleteTemplate(repo repository.TemplateRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := repo.Delete(c.UserContext(), model.FlexID(c.Params("id"))); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GetSettings returns the practitioner settings, falling back to defaults.
func GetSettings(repo repository.SettingsRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := repo.Get(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(s)
	}
}

// SaveSettings replaces the practitioner settings.
func SaveSettings(repo repository.SettingsRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var s model.Settings
		if err := c.BodyParser(&s); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		}
		if err := repo.Save(c.UserContext(), s); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(s)
	}
}

// GetDraft returns the in-progress unsaved record, or 204 when there is none.
func GetDraft(repo repository.DraftRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		draft, err := repo.Get(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		if len(draft) == 0 {
			return c.SendStatus(fiber.StatusNoContent)
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(draft)
	}
}

// SaveDraft stores the in-progress record as-is; it is canonicalized only
// when resumed.
func SaveDraft(repo repository.DraftRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if !json.Valid(body) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		}
		raw := make(json.RawMessage, len(body))
		copy(raw, body)
		if err := repo.Save(c.UserContext(), raw); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ClearDraft discards the in-progress record.
func ClearDraft(repo repository.DraftRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := repo.Clear(c.UserContext()); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
