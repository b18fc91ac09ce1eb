package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/dayyan-shaikh/DevConnect-Project/internal/apperr"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/models"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/service"
	"github.com/dayyan-shaikh/DevConnect-Project/internal/users"
)

type Handlers struct {
	users *users.Service
	msgs  *service.MessageService
	convs *service.ConversationService
}

func NewHandlers(u *users.Service, m *service.MessageService, c *service.ConversationService) *Handlers {
	return &Handlers{users: u, msgs: m, convs: c}
}

func (h *Handlers) register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	resp, err := h.users.Register(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *Handlers) login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	resp, err := h.users.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

func (h *Handlers) getProfile(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	u, err := h.users.GetProfile(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(u)
}

func (h *Handlers) updateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	userID := c.Locals("user_id").(string)
	u, err := h.users.UpdateProfile(c.Context(), userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(u)
}

func (h *Handlers) getUser(c *fiber.Ctx) error {
	u, err := h.users.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(u)
}

func (h *Handlers) isOnline(c *fiber.Ctx) error {
	id := c.Params("id")
	return c.JSON(fiber.Map{"user_id": id, "online": h.msgs.IsOnline(id)})
}

func (h *Handlers) sendMessage(c *fiber.Ctx) error {
	var req struct {
		SenderID    string `json:"sender_id"`
		ReceiverID  string `json:"receiver_id"`
		Content     string `json:"content"`
		ClientToken string `json:"client_token"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if req.SenderID == "" {
		req.SenderID = c.Locals("user_id").(string)
	}
	payload, err := h.msgs.Send(c.Context(), req.SenderID, req.ReceiverID, req.Content, req.ClientToken)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(payload)
}

func (h *Handlers) getConversation(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "0"), 10, 64)
	msgs, err := h.msgs.GetConversation(c.Context(), c.Params("user_a"), c.Params("user_b"), limit, c.Query("before"))
	if err != nil {
		return respondError(c, err)
	}
	if msgs == nil {
		msgs = []*models.Message{}
	}
	return c.JSON(msgs)
}

func (h *Handlers) listConversations(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "0"), 10, 64)
	convs, err := h.convs.List(c.Context(), c.Params("user_id"), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(convs)
}

func (h *Handlers) markConversationRead(c *fiber.Ctx) error {
	var req struct {
		SenderID   string `json:"sender_id"`
		ReceiverID string `json:"receiver_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := h.msgs.MarkConversationRead(c.Context(), req.SenderID, req.ReceiverID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) markMessageRead(c *fiber.Ctx) error {
	m, err := h.msgs.MarkMessageRead(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

func respondError(c *fiber.Ctx, err error) error {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "validation failed", "fields": ve.Fields})
	case errors.Is(err, apperr.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, apperr.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	case errors.Is(err, apperr.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "already exists"})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
	}
}
