package routes

import (
	"precinct-backend/internal/handler"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewUserHandler(svc.Users)

	app.Post("/api/auth/login", hdl.Login)

	// Profile routes
	api := app.Group("/api/me", svc.Auth)
	api.Get("/", hdl.Me)
	api.Put("/", hdl.UpdateMe)
	api.Put("/password", hdl.ChangePassword)
}

func SetupUserRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewUserHandler(svc.Users)

	admin := app.Group("/api/admin/users", svc.Auth, middleware.Role(model.RoleAdmin))
	admin.Get("/", hdl.List)
	admin.Post("/", hdl.Create)
	admin.Get("/:id", hdl.Get)
	admin.Put("/:id", hdl.Update)
	admin.Delete("/:id", hdl.Delete)
	admin.Post("/:id/reset-password", hdl.ResetPassword)
}
