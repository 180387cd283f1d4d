package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/service-desk/internal/api/dto"
	"github.com/spec-kit/service-desk/internal/auth"
	"github.com/spec-kit/service-desk/internal/service"
	apperrors "github.com/spec-kit/service-desk/pkg/util"
)

// UsersHandler exposes registration and login endpoints.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.auth.Register(c.Context(), req.Email, req.Password, req.Company, req.Role)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{"user": dto.UserFromDomain(user)},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": dto.UserFromDomain(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

// ChangePassword handles POST /auth/password/change.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Context(), principal.User.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}
