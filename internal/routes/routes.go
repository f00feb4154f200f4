package routes

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/solvetec-mx/gestion-sesiones/internal/config"
	"github.com/solvetec-mx/gestion-sesiones/internal/handlers"
	"github.com/solvetec-mx/gestion-sesiones/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	sessionHandler *handlers.SessionHandler,
	notificationHandler *handlers.NotificationHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP. Websocket connections are
	// long-lived and excluded.
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		Next:              func(c *fiber.Ctx) bool { return strings.HasPrefix(c.Path(), "/ws") },
	}))

	app.Get("/health", healthHandler.Check)

	// Credential endpoints get a stricter limit: 10 req/min per IP.
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Post("/login", authLimiter, authHandler.Login)
	app.Post("/refresh", authLimiter, authHandler.Refresh)
	app.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	app.Get("/sessions/active-count/:username", sessionHandler.ActiveCount)

	app.Post("/notification/test", notificationHandler.BroadcastChange)
	app.Post("/notification/message", notificationHandler.BroadcastMessage)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/notifications", notificationHandler.Websocket())
}
