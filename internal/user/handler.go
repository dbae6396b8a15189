package user

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/akarpov91/todo-service/internal/auth"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) Register(c *fiber.Ctx) error {
	var payload RegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	u, err := h.Service.Register(userContext(c), payload)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

func (h *Handler) Me(c *fiber.Ctx) error {
	creds := auth.FromHeader(c.Get(fiber.HeaderAuthorization))

	u, err := h.Service.Me(userContext(c), creds)
	if err != nil {
		return err
	}
	return c.JSON(u)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
