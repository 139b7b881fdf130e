package handler

import (
	"precinct-backend/internal/model"
	"precinct-backend/internal/repository"
	"precinct-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type ShiftHandler struct {
	repo repository.ShiftRepository
}

func NewShiftHandler(repo repository.ShiftRepository) *ShiftHandler {
	return &ShiftHandler{repo: repo}
}

type shiftRequest struct {
	Name    string `json:"name" validate:"required,max=50"`
	TimeIn  string `json:"time_in" validate:"required"`
	TimeOut string `json:"time_out"`
}

func (r shiftRequest) check() error {
	if !model.ValidTime(r.TimeIn) || (r.TimeOut != "" && !model.ValidTime(r.TimeOut)) {
		return usecase.ErrInvalidInput
	}
	return nil
}

func (h *ShiftHandler) GetAll(c *fiber.Ctx) error {
	shifts, err := h.repo.GetAll()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": shifts})
}

func (h *ShiftHandler) Create(c *fiber.Ctx) error {
	var req shiftRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	if err := req.check(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Shift times must be HH:MM"})
	}

	shift := model.Shift{Name: req.Name, TimeIn: req.TimeIn, TimeOut: req.TimeOut}
	if err := h.repo.Create(&shift); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Shift created", "data": shift})
}

func (h *ShiftHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var req shiftRequest
	if err := bind(c, &req); err != nil {
		return badRequest(c, err)
	}
	if err := req.check(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Shift times must be HH:MM"})
	}

	shift, err := h.repo.GetByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Shift not found"})
	}

	shift.Name = req.Name
	shift.TimeIn = req.TimeIn
	shift.TimeOut = req.TimeOut

	if err := h.repo.Update(shift); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Shift updated", "data": shift})
}

func (h *ShiftHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.repo.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Shift deleted"})
}
