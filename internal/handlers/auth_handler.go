package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/solvetec-mx/gestion-sesiones/internal/dto"
	"github.com/solvetec-mx/gestion-sesiones/internal/services"
)

// TokenIssuer is the slice of the token service the auth endpoints need.
type TokenIssuer interface {
	Login(username, secret string) (*services.TokenPair, error)
	Refresh(rawToken string) (*services.TokenPair, error)
}

// SessionRevoker revokes a refresh session on logout.
type SessionRevoker interface {
	Revoke(rawToken string) error
}

type AuthHandler struct {
	tokens   TokenIssuer
	sessions SessionRevoker
	notifier Broadcaster
}

func NewAuthHandler(tokens TokenIssuer, sessions SessionRevoker, notifier Broadcaster) *AuthHandler {
	return &AuthHandler{tokens: tokens, sessions: sessions, notifier: notifier}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Cuerpo de la solicitud inválido."})
	}

	pair, err := h.tokens.Login(req.Usuario, req.Contrasena)
	if err != nil {
		return respondError(c, err, "login")
	}

	return c.JSON(dto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Cuerpo de la solicitud inválido."})
	}

	pair, err := h.tokens.Refresh(req.RefreshToken)
	if err != nil {
		return respondError(c, err, "refresh")
	}

	return c.JSON(dto.LoginResponse{
		Token:        pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Logout revokes the presented session and announces the change to connected
// listeners. Broadcast problems never fail the logout itself.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.LogoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Cuerpo de la solicitud inválido."})
	}

	if err := h.sessions.Revoke(req.RefreshToken); err != nil {
		return respondError(c, err, "logout")
	}

	h.notifier.BroadcastChange("UPDATE", "refresh_tokens", nil)

	return c.JSON(dto.MessageResponse{Message: "Sesión cerrada correctamente."})
}
