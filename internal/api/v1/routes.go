package v1

import (
	"todo-tracker/internal/api/v1/handlers"
	"todo-tracker/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *handlers.Handler) {
	// Health
	app.Get("/", h.HealthCheck)

	// Auth
	auth := app.Group("/auth")
	auth.Post("/signup", h.Signup)
	auth.Post("/login", h.Login)

	// Task; the static routes must come before /:id
	tasks := app.Group("/tasks", middleware.UseToken)
	tasks.Post("/", h.CreateTask)
	tasks.Get("/", h.ListTasks)
	tasks.Get("/categories", h.GetCategories)
	tasks.Get("/reminders", h.GetReminders)
	tasks.Get("/:id", h.GetTask)
	tasks.Put("/:id", h.UpdateTask)
	tasks.Delete("/:id", h.DeleteTask)
}
