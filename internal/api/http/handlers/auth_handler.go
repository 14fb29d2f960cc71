package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/suportehub/chamados-service/internal/api/dto"
	"github.com/suportehub/chamados-service/internal/service"
	apperrors "github.com/suportehub/chamados-service/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and logout endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login. Bad credentials answer 404 with a boolean
// status payload; clients depend on that legacy shape.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, token, _, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(http.StatusNotFound).JSON(fiber.Map{
				"status":  false,
				"message": "Login ou senha incorreta.",
			})
		}
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": true,
		"token":  token,
		"user":   userResponse(user),
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.auth.Register(c.Context(), service.RegisterInput{
		Name:                 req.Name,
		Email:                req.Email,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
		LevelAccess:          req.LevelAccess,
		Phone:                req.Phone,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"status": true,
		"user":   userResponse(user),
	})
}

// Logout handles POST /logout/:id, revoking all tokens for the user id.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	id, err := idParam(c, "user")
	if err != nil {
		return err
	}
	if err := h.auth.Logout(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"status":  true,
		"message": "Deslogado com sucesso.",
	})
}

// ListUsers handles GET /usuarios.
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.auth.ListUsers(c.Context())
	if err != nil {
		return err
	}
	data := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, *userResponse(&users[i]))
	}
	return c.JSON(data)
}
