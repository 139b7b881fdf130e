package routes

import (
	"precinct-backend/internal/handler"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupEventRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewEventHandler(svc.Events)

	api := app.Group("/api/events", svc.Auth)
	api.Get("/", hdl.List)
	api.Get("/:id", hdl.Get)

	admin := app.Group("/api/admin/events", svc.Auth, middleware.Role(model.RoleAdmin))
	admin.Post("/", hdl.Create)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
}
