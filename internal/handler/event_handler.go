package handler

import (
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type EventHandler struct {
	usecase *usecase.EventUsecase
}

func NewEventHandler(u *usecase.EventUsecase) *EventHandler {
	return &EventHandler{usecase: u}
}

func (h *EventHandler) List(c *fiber.Ctx) error {
	events, err := h.usecase.List(c.Query("from"), c.QueryInt("limit", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": events})
}

func (h *EventHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	event, err := h.usecase.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": event})
}

func (h *EventHandler) Create(c *fiber.Ctx) error {
	var req usecase.EventInput
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	event, err := h.usecase.Create(req, middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Event created", "data": event})
}

func (h *EventHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req usecase.EventInput
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}

	event, err := h.usecase.Update(id, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event updated", "data": event})
}

func (h *EventHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.usecase.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event deleted"})
}
