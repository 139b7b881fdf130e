package routes

import (
	"precinct-backend/internal/handler"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, svc *Services) {
	hdl := handler.NewDashboardHandler(svc.Dashboard, svc.Schedules, svc.Events, svc.Notifications, map[string]handler.PendingCounter{
		model.KindLeave:    svc.Leave,
		model.KindOvertime: svc.Overtime,
		model.KindTraining: svc.Training,
		model.KindCourt:    svc.Court,
	})

	app.Get("/api/dashboard", svc.Auth, hdl.GetMine)
	app.Get("/api/admin/dashboard", svc.Auth, middleware.Role(model.RoleAdmin), hdl.GetAdminStats)
}
