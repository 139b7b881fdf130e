package handler

import (
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/model"
	"precinct-backend/internal/repository"
	"precinct-backend/internal/usecase"
	"time"

	"github.com/gofiber/fiber/v2"
)

// PendingCounter is satisfied by every RequestUsecase.
type PendingCounter interface {
	PendingCount(userID uint) (int64, error)
}

type DashboardHandler struct {
	repo          repository.DashboardRepository
	schedules     *usecase.ScheduleUsecase
	events        *usecase.EventUsecase
	notifications *usecase.NotificationUsecase
	pending       map[string]PendingCounter
	now           func() time.Time
}

func NewDashboardHandler(repo repository.DashboardRepository, schedules *usecase.ScheduleUsecase, events *usecase.EventUsecase, notifications *usecase.NotificationUsecase, pending map[string]PendingCounter) *DashboardHandler {
	return &DashboardHandler{
		repo:          repo,
		schedules:     schedules,
		events:        events,
		notifications: notifications,
		pending:       pending,
		now:           time.Now,
	}
}

func (h *DashboardHandler) GetAdminStats(c *fiber.Ctx) error {
	date := h.now().Format(model.DateLayout)

	stats, err := h.repo.GetAdminStats(date)
	if err != nil {
		return writeError(c, err)
	}

	roster, err := h.schedules.OnDate(date)
	if err != nil {
		return writeError(c, err)
	}
	events, err := h.events.List(date, 5)
	if err != nil {
		return writeError(c, err)
	}
	stats["date"] = date
	stats["roster"] = roster
	stats["upcoming_events"] = events

	return c.JSON(fiber.Map{
		"message": "Dashboard statistics",
		"data":    stats,
	})
}

// GetMine is the officer's landing page: this week's roster, open requests,
// unread notifications and upcoming events.
func (h *DashboardHandler) GetMine(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	now := h.now()
	today := now.Format(model.DateLayout)

	weekStart := usecase.WeekStart(now)
	week, err := h.schedules.Range(weekStart.Format(model.DateLayout), weekStart.AddDate(0, 0, 6).Format(model.DateLayout), []uint{userID})
	if err != nil {
		return writeError(c, err)
	}

	var todayRow *model.Schedule
	for i := range week {
		if week[i].Date == today {
			todayRow = &week[i]
		}
	}

	pending := make(map[string]int64, len(h.pending))
	for kind, counter := range h.pending {
		n, err := counter.PendingCount(userID)
		if err != nil {
			return writeError(c, err)
		}
		pending[kind] = n
	}

	unread, err := h.notifications.UnreadCount(userID)
	if err != nil {
		return writeError(c, err)
	}

	events, err := h.events.List(today, 5)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Dashboard",
		"data": fiber.Map{
			"date":                 today,
			"today":                todayRow,
			"week":                 week,
			"pending_requests":     pending,
			"unread_notifications": unread,
			"upcoming_events":      events,
		},
	})
}
