package routes

import (
	"precinct-backend/config"
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"
	"precinct-backend/internal/notify"
	"precinct-backend/internal/repository"
	"precinct-backend/internal/storage"
	"precinct-backend/internal/usecase"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Services holds the usecases shared by the routes and the cron jobs.
type Services struct {
	Auth        fiber.Handler
	Store       storage.Store
	MaxUploadMB int

	Users         *usecase.UserUsecase
	Shifts        repository.ShiftRepository
	Schedules     *usecase.ScheduleUsecase
	Notifications *usecase.NotificationUsecase
	Events        *usecase.EventUsecase
	Dashboard     repository.DashboardRepository

	Leave    *usecase.RequestUsecase[*model.LeaveRequest]
	Overtime *usecase.RequestUsecase[*model.OvertimeRequest]
	Training *usecase.RequestUsecase[*model.TrainingRequest]
	Court    *usecase.RequestUsecase[*model.CourtRequest]
}

func NewServices(db *gorm.DB, cfg *config.Config, mailer notify.Mailer, alerter notify.Alerter, store storage.Store) *Services {
	userRepo := repository.NewUserRepository(db)
	shiftRepo := repository.NewShiftRepository(db)

	notifications := usecase.NewNotificationUsecase(repository.NewNotificationRepository(db), userRepo, mailer)
	schedules := usecase.NewScheduleUsecase(repository.NewScheduleRepository(db), shiftRepo, userRepo, notifications)

	return &Services{
		Auth:        middleware.Auth([]byte(cfg.JWTSecret)),
		Store:       store,
		MaxUploadMB: cfg.MaxUploadMB,

		Users:         usecase.NewUserUsecase(userRepo, []byte(cfg.JWTSecret), time.Duration(cfg.JWTTTLHours)*time.Hour),
		Shifts:        shiftRepo,
		Schedules:     schedules,
		Notifications: notifications,
		Events:        usecase.NewEventUsecase(repository.NewEventRepository(db), notifications),
		Dashboard:     repository.NewDashboardRepository(db),

		Leave:    usecase.NewRequestUsecase(repository.NewLeaveRepository(db), userRepo, schedules, notifications, alerter),
		Overtime: usecase.NewRequestUsecase(repository.NewOvertimeRepository(db), userRepo, schedules, notifications, alerter),
		Training: usecase.NewRequestUsecase(repository.NewTrainingRepository(db), userRepo, schedules, notifications, alerter),
		Court:    usecase.NewRequestUsecase(repository.NewCourtRepository(db), userRepo, schedules, notifications, alerter),
	}
}

// Setup registers every route on app.
func Setup(app *fiber.App, svc *Services) {
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupAuthRoutes(app, svc)
	SetupUserRoutes(app, svc)
	SetupShiftRoutes(app, svc)
	SetupScheduleRoutes(app, svc)
	SetupRequestRoutes(app, svc)
	SetupEventRoutes(app, svc)
	SetupNotificationRoutes(app, svc)
	SetupDashboardRoutes(app, svc)
}
