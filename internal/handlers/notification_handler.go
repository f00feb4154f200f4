package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/solvetec-mx/gestion-sesiones/internal/dto"
	"github.com/solvetec-mx/gestion-sesiones/internal/notify"
)

// Broadcaster fans events out to every connected listener.
type Broadcaster interface {
	BroadcastChange(changeType, tableName string, payload interface{}) error
	BroadcastMessage(message string, payload interface{}) error
}

type NotificationHandler struct {
	notifier Broadcaster
	hub      *notify.Hub
}

func NewNotificationHandler(notifier Broadcaster, hub *notify.Hub) *NotificationHandler {
	return &NotificationHandler{notifier: notifier, hub: hub}
}

func (h *NotificationHandler) BroadcastChange(c *fiber.Ctx) error {
	var req dto.ChangeBroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Cuerpo de la solicitud inválido."})
	}

	if err := h.notifier.BroadcastChange(req.ChangeType, req.TableName, req.Data); err != nil {
		return respondError(c, err, "change broadcast")
	}

	return c.JSON(dto.ChangeBroadcastResponse{
		Message:    "Notificación enviada.",
		ChangeType: req.ChangeType,
		TableName:  req.TableName,
	})
}

func (h *NotificationHandler) BroadcastMessage(c *fiber.Ctx) error {
	var req dto.MessageBroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Cuerpo de la solicitud inválido."})
	}

	if err := h.notifier.BroadcastMessage(req.Message, req.Data); err != nil {
		return respondError(c, err, "message broadcast")
	}

	return c.JSON(dto.MessageBroadcastResponse{
		Message:     "Mensaje enviado.",
		SentMessage: req.Message,
	})
}

// Websocket registers the connection as a listener for the lifetime of the
// socket. The read loop only exists to notice the peer going away.
func (h *NotificationHandler) Websocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := notify.NewClient(conn)
		h.hub.Register(client)
		defer func() {
			h.hub.Unregister(client.ID())
			client.Close()
		}()

		go client.WritePump()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
