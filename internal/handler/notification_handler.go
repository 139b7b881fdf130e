package handler

import (
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	usecase *usecase.NotificationUsecase
}

func NewNotificationHandler(u *usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{usecase: u}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	list, err := h.usecase.List(middleware.UserID(c), c.QueryBool("unread", false), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": list})
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.usecase.UnreadCount(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"unread": n}})
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.usecase.MarkRead(id, middleware.UserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.usecase.MarkAllRead(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "All notifications marked as read", "updated": n})
}

func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.usecase.Delete(id, middleware.UserID(c)); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notification deleted"})
}
