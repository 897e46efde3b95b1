package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/grievance-service/internal/api/dto"
	"github.com/spec-kit/grievance-service/internal/service"
	apperrors "github.com/spec-kit/grievance-service/pkg/errorutil"
)

// AccountsHandler exposes registration and login for citizens and departments.
type AccountsHandler struct {
	service *service.AuthService
}

// NewAccountsHandler constructs handler.
func NewAccountsHandler(authService *service.AuthService) *AccountsHandler {
	return &AccountsHandler{service: authService}
}

// RegisterUser POST /auth/users/register.
func (h *AccountsHandler) RegisterUser(c *fiber.Ctx) error {
	var req dto.RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	user, token, exp, err := h.service.RegisterUser(c.Context(), service.UserRegistration{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		State:    req.State,
		District: req.District,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authResponse(user.ID, user.Name, user.Email, token, exp)})
}

// LoginUser POST /auth/users/login.
func (h *AccountsHandler) LoginUser(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	user, token, exp, err := h.service.LoginUser(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(user.ID, user.Name, user.Email, token, exp)})
}

// RegisterDepartment POST /auth/departments/register.
func (h *AccountsHandler) RegisterDepartment(c *fiber.Ctx) error {
	var req dto.RegisterDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}

	dept, token, exp, err := h.service.RegisterDepartment(c.Context(), service.DepartmentRegistration{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		State:        req.State,
		District:     req.District,
		WorkingAreas: req.WorkingAreas,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": authResponse(dept.ID, dept.Name, dept.Email, token, exp)})
}

// LoginDepartment POST /auth/departments/login.
func (h *AccountsHandler) LoginDepartment(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	dept, token, exp, err := h.service.LoginDepartment(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": authResponse(dept.ID, dept.Name, dept.Email, token, exp)})
}

func authResponse(id, name, email, token string, exp time.Time) dto.AuthResponse {
	return dto.AuthResponse{
		ID:        id,
		Name:      name,
		Email:     email,
		Token:     token,
		ExpiresAt: exp,
	}
}
