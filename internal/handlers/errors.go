package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/solvetec-mx/gestion-sesiones/internal/dto"
	"github.com/solvetec-mx/gestion-sesiones/internal/services"
)

// respondError maps the service error taxonomy onto HTTP statuses: validation
// failures are 400 with the reason, rejected credentials are a deliberately
// generic 401, storage failures log the full cause and return a generic 500.
func respondError(c *fiber.Ctx, err error, operation string) error {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: ve.Message})
	}

	if errors.Is(err, services.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Credenciales inválidas."})
	}

	if errors.Is(err, services.ErrInvalidToken) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Sesión inválida o expirada."})
	}

	var dae *services.DataAccessError
	if errors.As(err, &dae) {
		slog.Error("data access failure", "operation", operation, "error", dae.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error interno del servidor."})
	}

	slog.Error("unexpected error", "operation", operation, "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error interno del servidor."})
}
