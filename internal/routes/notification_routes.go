package routes

import (
	"precinct-backend/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func SetupNotificationRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewNotificationHandler(svc.Notifications)

	api := app.Group("/api/notifications", svc.Auth)
	api.Get("/", hdl.List)
	api.Get("/unread-count", hdl.UnreadCount)
	api.Post("/read-all", hdl.MarkAllRead)
	api.Post("/:id/read", hdl.MarkRead)
	api.Delete("/:id", hdl.Delete)
}
