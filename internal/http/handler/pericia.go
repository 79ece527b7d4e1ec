package handler

import (
	"github.com/gofiber/fiber/v2"

	"periciapi/internal/model"
	"periciapi/internal/repository"
	"periciapi/internal/service"
)

// ListPericias returns every record, canonicalized.
func ListPericias(svc service.PericiaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(list)
	}
}

// GetPericia returns a single record by id.
func GetPericia(svc service.PericiaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := repository.ParseID(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "identificador inválido")
		}
		rec, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// SavePericia accepts an arbitrary partial payload, including the legacy
// shape, and persists the canonicalized record.
func SavePericia(svc service.PericiaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data map[string]any
		if err := c.BodyParser(&data); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		}
		// On PUT the route id wins over whatever the body carries.
		if param := c.Params("id"); param != "" {
			id, err := repository.ParseID(param)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "identificador inválido")
			}
			if data == nil {
				data = map[string]any{}
			}
			data["id"] = id
		}
		saved, err := svc.Save(c.UserContext(), data)
		if err != nil {
			return writeServiceError(c, err)
		}
		status := fiber.StatusOK
		if c.Method() == fiber.MethodPost {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(saved)
	}
}

// FinalizePericia validates the required report fields and concludes the record.
func FinalizePericia(svc service.PericiaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := repository.ParseID(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "identificador inválido")
		}
		rec, err := svc.Finalize(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// DeletePericia removes the record and its attachment blobs.
func DeletePericia(svc service.PericiaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := repository.ParseID(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "identificador inválido")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

type attachRequest struct {
	Content      string `json:"content"`
	OriginalName string `json:"originalName"`
}

// AttachDocument stores the uploaded content as a blob and binds the
// reference into the record.
func AttachDocument(svc service.PericiaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := repository.ParseID(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "identificador inválido")
		}
		var req attachRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "corpo da requisição inválido")
		}
		rec, err := svc.AttachDocument(c.UserContext(), id, req.Content, req.OriginalName)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// RemoveDocument deletes the blob and drops its reference from the record.
func RemoveDocument(svc service.PericiaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := repository.ParseID(c.Params("id"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "identificador inválido")
		}
		rec, err := svc.RemoveDocument(c.UserContext(), id, model.FlexID(c.Params("docId")))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}
