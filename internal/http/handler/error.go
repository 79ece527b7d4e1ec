package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"periciapi/internal/blobstore"
	"periciapi/internal/http/middleware"
	"periciapi/internal/kvstore"
	"periciapi/internal/repository"
	"periciapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// writeValidationError carries every violation so the client can flag all
// offending fields in one pass.
func writeValidationError(c *fiber.Ctx, violations service.ValidationErrors) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    "VALIDATION_ERROR",
			Message: "Preencha os campos obrigatórios.",
			Details: violations,
		},
	}
	return c.Status(fiber.StatusUnprocessableEntity).JSON(res)
}

// writeServiceError translates the domain error taxonomy into HTTP responses.
func writeServiceError(c *fiber.Ctx, err error) error {
	var violations service.ValidationErrors
	switch {
	case errors.As(err, &violations):
		return writeValidationError(c, violations)
	case errors.Is(err, repository.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", repository.ErrNotFound.Error())
	case errors.Is(err, blobstore.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "FILE_NOT_FOUND", blobstore.ErrNotFound.Error())
	case errors.Is(err, kvstore.ErrQuotaExceeded):
		return writeError(c, fiber.StatusInsufficientStorage, "QUOTA_EXCEEDED",
			"Limite de armazenamento excedido! Tente remover arquivos anexados.")
	case errors.Is(err, service.ErrInvalidBackup):
		return writeError(c, fiber.StatusBadRequest, "INVALID_BACKUP", service.ErrInvalidBackup.Error())
	case errors.Is(err, service.ErrEncryptedBackup):
		return writeError(c, fiber.StatusBadRequest, "PASSPHRASE_REQUIRED", service.ErrEncryptedBackup.Error())
	case errors.Is(err, service.ErrWrongPassphrase):
		return writeError(c, fiber.StatusBadRequest, "WRONG_PASSPHRASE", service.ErrWrongPassphrase.Error())
	case errors.Is(err, service.ErrCipherUnavailable):
		return writeError(c, fiber.StatusNotImplemented, "CIPHER_UNAVAILABLE", service.ErrCipherUnavailable.Error())
	case errors.Is(err, blobstore.ErrIDRequired), errors.Is(err, blobstore.ErrContentRequired):
		return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "erro interno do servidor")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "requisição inválida")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "recurso não encontrado")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "método não permitido")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "erro interno do servidor")
		}
	}
}
