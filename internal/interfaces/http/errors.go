package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kitob-pos/internal/application/dto"
	"github.com/jhoicas/kitob-pos/internal/domain"
	"github.com/rs/zerolog/log"
)

// writeError traduce un error de dominio a status HTTP + dto.ErrorResponse.
// Los errores sin tipo de dominio se registran y se responden como 500 sin detalle.
func writeError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch domain.Kind(err) {
	case domain.ErrInvalidInput:
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case domain.ErrNotFound:
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case domain.ErrInsufficientStock:
		status, code = fiber.StatusConflict, "INSUFFICIENT_STOCK"
	case domain.ErrInsufficientFunds:
		status, code = fiber.StatusConflict, "INSUFFICIENT_FUNDS"
	case domain.ErrInvalidState:
		status, code = fiber.StatusConflict, "INVALID_STATE"
	case domain.ErrDuplicate:
		status, code = fiber.StatusConflict, "DUPLICATE"
	case domain.ErrUnauthorized:
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case domain.ErrForbidden:
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	}
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno")
		return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: "error interno"})
	}
	msg := err.Error()
	var de *domain.Error
	if errors.As(err, &de) {
		msg = de.Message
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
