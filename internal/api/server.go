package api

import (
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/auth"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/metrics"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/service"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/users"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/ws"
)

func NewServer(jm *auth.Manager, userSvc *users.Service, msgSvc *service.MessageService, convSvc *service.ConversationService, hub *ws.Hub) *fiber.App {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	h := NewHandlers(userSvc, msgSvc, convSvc)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", metrics.Handler())

	app.Post("/v1/auth/register", h.register)
	app.Post("/v1/auth/login", h.login)

	// Realtime channel. A token is accepted via ?token= so browser clients
	// can authenticate the upgrade; an authenticated upgrade pins the
	// identify event to the token's user.
	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		if token := c.Query("token"); token != "" {
			sub, err := jm.Validate(token)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
			}
			c.Locals("user_id", sub)
		}
		return c.Next()
	})
	app.Get("/ws", websocket.New(hub.HandleWebsocket))

	api := app.Group("/v1")
	api.Use(func(c *fiber.Ctx) error {
		hdr := c.Get("Authorization")
		const pref = "Bearer "
		if len(hdr) <= len(pref) || hdr[:len(pref)] != pref {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid authorization"})
		}
		sub, err := jm.Validate(hdr[len(pref):])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
		}
		c.Locals("user_id", sub)
		return c.Next()
	})

	api.Get("/profile", h.getProfile)
	api.Put("/profile", h.updateProfile)
	api.Get("/users/:id", h.getUser)
	api.Get("/users/:id/online", h.isOnline)

	api.Post("/messages", h.sendMessage)
	api.Get("/messages/conversation/:user_a/:user_b", h.getConversation)
	api.Get("/messages/conversations/:user_id", h.listConversations)
	api.Post("/messages/read", h.markConversationRead)
	api.Post("/messages/:id/read", h.markMessageRead)

	return app
}
