package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/fronzypie/share-your-experience/internal/api/dto"
	"github.com/fronzypie/share-your-experience/internal/auth"
	"github.com/fronzypie/share-your-experience/internal/service"
	"github.com/fronzypie/share-your-experience/pkg/util"
)

// AuthHandler exposes the /api/auth endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("No data provided")
	}

	user, token, err := h.auth.Register(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    dto.NewUserResponse(user),
		"token":   token,
	})
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("No data provided")
	}

	user, token, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    dto.NewUserResponse(user),
		"token":   token,
	})
}

// Logout handles POST /api/auth/logout. It always succeeds, with or
// without a live session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := auth.ExtractBearerToken(c)
	if token == "" {
		return c.JSON(fiber.Map{"message": "No active session"})
	}

	h.auth.Logout(token)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	token := auth.ExtractBearerToken(c)
	if token == "" {
		return util.NewUnauthorized("Unauthorized")
	}

	user, err := h.auth.CurrentUser(c.Context(), token)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": dto.NewUserResponse(user)})
}
