package todo

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/akarpov91/todo-service/internal/auth"
	"github.com/akarpov91/todo-service/internal/domain"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) List(c *fiber.Ctx) error {
	items, err := h.Service.List(userContext(c))
	if err != nil {
		return err
	}
	if items == nil {
		items = []domain.TodoItem{}
	}
	return c.JSON(items)
}

func (h *Handler) Get(c *fiber.Ctx) error {
	item, err := h.Service.Get(userContext(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	var payload ItemPayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	item, err := h.Service.Create(userContext(c), payload, credentials(c))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	var payload ItemPayload
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	item, err := h.Service.Update(userContext(c), c.Params("id"), payload, credentials(c))
	if err != nil {
		return err
	}
	return c.JSON(item)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	if err := h.Service.Delete(userContext(c), c.Params("id"), credentials(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func credentials(c *fiber.Ctx) *auth.Credentials {
	return auth.FromHeader(c.Get(fiber.HeaderAuthorization))
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
