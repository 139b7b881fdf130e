package handler

import (
	"precinct-backend/internal/middleware"
	"precinct-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	usecase *usecase.UserUsecase
}

func NewUserHandler(u *usecase.UserUsecase) *UserHandler {
	return &UserHandler{usecase: u}
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var input struct {
		BadgeNumber string `json:"badge_number" validate:"required"`
		Password    string `json:"password" validate:"required"`
	}
	if err := bind(c, &input); err != nil {
		return badRequest(c, err)
	}

	token, user, err := h.usecase.Login(input.BadgeNumber, input.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"data":    user,
	})
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := h.usecase.Get(middleware.UserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	var input struct {
		Email string `json:"email" validate:"omitempty,email"`
		Phone string `json:"phone" validate:"max=32"`
	}
	if err := bind(c, &input); err != nil {
		return badRequest(c, err)
	}

	user, err := h.usecase.UpdateProfile(middleware.UserID(c), input.Email, input.Phone)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Profile updated", "data": user})
}

func (h *UserHandler) ChangePassword(c *fiber.Ctx) error {
	var input struct {
		OldPassword string `json:"old_password" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}
	if err := bind(c, &input); err != nil {
		return badRequest(c, err)
	}

	if err := h.usecase.ChangePassword(middleware.UserID(c), input.OldPassword, input.NewPassword); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password changed"})
}

// Admin

func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.usecase.List(c.Query("search"), c.Query("role"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": users})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	user, err := h.usecase.Get(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"data": user})
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var input struct {
		Name        string `json:"name" validate:"required,max=100"`
		BadgeNumber string `json:"badge_number" validate:"required,max=32"`
		Password    string `json:"password" validate:"required,min=8"`
		Email       string `json:"email" validate:"omitempty,email"`
		Phone       string `json:"phone"`
		Rank        string `json:"rank"`
		Unit        string `json:"unit"`
		Role        string `json:"role" validate:"omitempty,oneof=admin employee"`
	}
	if err := bind(c, &input); err != nil {
		return badRequest(c, err)
	}

	user, err := h.usecase.Register(usecase.RegisterInput{
		Name:        input.Name,
		BadgeNumber: input.BadgeNumber,
		Password:    input.Password,
		Email:       input.Email,
		Phone:       input.Phone,
		Rank:        input.Rank,
		Unit:        input.Unit,
		Role:        input.Role,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Officer registered", "data": user})
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}

	var input struct {
		Name     string `json:"name" validate:"max=100"`
		Email    string `json:"email" validate:"omitempty,email"`
		Phone    string `json:"phone"`
		Rank     string `json:"rank"`
		Unit     string `json:"unit"`
		Role     string `json:"role" validate:"omitempty,oneof=admin employee"`
		IsActive *bool  `json:"is_active"`
	}
	if err := bind(c, &input); err != nil {
		return badRequest(c, err)
	}

	// An admin cannot lock themselves out
	if id == middleware.UserID(c) && (input.IsActive != nil && !*input.IsActive || input.Role == "employee") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot deactivate or demote your own account"})
	}

	user, err := h.usecase.Update(id, usecase.UpdateUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Rank:     input.Rank,
		Unit:     input.Unit,
		Role:     input.Role,
		IsActive: input.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Officer updated", "data": user})
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if id == middleware.UserID(c) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "You cannot delete your own account"})
	}
	if err := h.usecase.Delete(id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Officer deleted"})
}

func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}

	var input struct {
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := bind(c, &input); err != nil {
		return badRequest(c, err)
	}

	if err := h.usecase.ResetPassword(id, input.Password); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Password reset"})
}
