package routes

import (
	"precinct-backend/internal/handler"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupRequestRoutes(app *fiber.App, svc *Services) {
	registerRequestRoutes(app, svc, handler.NewRequestHandler(model.KindLeave, svc.Leave, handler.DecodeLeave, svc.Store, true, svc.MaxUploadMB))
	registerRequestRoutes(app, svc, handler.NewRequestHandler(model.KindOvertime, svc.Overtime, handler.DecodeOvertime, svc.Store, false, svc.MaxUploadMB))
	registerRequestRoutes(app, svc, handler.NewRequestHandler(model.KindTraining, svc.Training, handler.DecodeTraining, svc.Store, true, svc.MaxUploadMB))
	registerRequestRoutes(app, svc, handler.NewRequestHandler(model.KindCourt, svc.Court, handler.DecodeCourt, svc.Store, true, svc.MaxUploadMB))
}

func registerRequestRoutes[T model.Request](app *fiber.App, svc *Services, hdl *handler.RequestHandler[T]) {
	kind := hdl.Kind()

	// Officer routes
	api := app.Group("/api/requests/"+kind, svc.Auth)
	api.Post("/", hdl.Submit)
	api.Get("/", hdl.ListMine)
	api.Get("/:id", hdl.Get)
	api.Delete("/:id", hdl.Cancel)
	api.Get("/:id/attachment", hdl.Attachment)

	// Approval routes
	admin := app.Group("/api/admin/requests/"+kind, svc.Auth, middleware.Role(model.RoleAdmin))
	admin.Get("/", hdl.List)
	admin.Get("/export", hdl.Export)
	admin.Post("/:id/respond", hdl.Respond)
	admin.Post("/:id/complete", hdl.Complete)
}
