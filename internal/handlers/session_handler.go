package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/solvetec-mx/gestion-sesiones/internal/dto"
)

// SessionCounter exposes the active-session count of the session store.
type SessionCounter interface {
	CountActive(username string) (int64, error)
}

type SessionHandler struct {
	sessions SessionCounter
}

func NewSessionHandler(sessions SessionCounter) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

func (h *SessionHandler) ActiveCount(c *fiber.Ctx) error {
	username := c.Params("username")
	if decoded, err := url.PathUnescape(username); err == nil {
		username = decoded
	}

	count, err := h.sessions.CountActive(username)
	if err != nil {
		return respondError(c, err, "active session count")
	}

	return c.JSON(dto.SessionCountResponse{
		Username:            username,
		ActiveSessionsCount: count,
	})
}
