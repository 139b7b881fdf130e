package routes

import (
	"precinct-backend/internal/handler"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupScheduleRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewScheduleHandler(svc.Schedules)

	// Officer routes
	app.Get("/api/schedules/me", svc.Auth, hdl.GetMine)

	api := app.Group("/api/admin/schedules", svc.Auth, middleware.Role(model.RoleAdmin))
	api.Get("/", hdl.GetRange)
	api.Get("/export", hdl.Export) // before /:id
	api.Post("/", hdl.Create)
	api.Put("/grid", hdl.SaveGrid)
	api.Post("/generate", hdl.GenerateMonth)
	api.Post("/copy-week", hdl.CopyWeek)
	api.Post("/import", hdl.Import)
	api.Delete("/date/bulk", hdl.DeleteByDate)
	api.Get("/:id", hdl.GetDetail)
	api.Put("/:id", hdl.Update)
	api.Delete("/:id", hdl.Delete)
}
