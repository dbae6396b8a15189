package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/akarpov91/todo-service/internal/todo"
	"github.com/akarpov91/todo-service/internal/user"
)

type Router struct {
	Items *todo.Handler
	Users *user.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	app.Get("/items", r.Items.List)
	app.Post("/items", r.Items.Create)
	app.Get("/items/:id", r.Items.Get)
	app.Put("/items/:id", r.Items.Update)
	app.Delete("/items/:id", r.Items.Delete)

	app.Post("/users", r.Users.Register)
	app.Get("/users/me", r.Users.Me)
}
