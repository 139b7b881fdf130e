package routes

import (
	"precinct-backend/internal/handler"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupShiftRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewShiftHandler(svc.Shifts)

	app.Get("/api/shifts", svc.Auth, hdl.GetAll)

	api := app.Group("/api/admin/shifts", svc.Auth, middleware.Role(model.RoleAdmin))
	api.Get("/", hdl.GetAll)
	api.Post("/", hdl.Create)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
}
