package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/timeclock-service/internal/api/dto"
	"github.com/spec-kit/timeclock-service/internal/auth"
	"github.com/spec-kit/timeclock-service/internal/service"
)

// AuthHandler exposes the entry point, registration, login and logout for
// both roles.
type AuthHandler struct {
	authService *service.AuthService
	gate        *auth.Gate
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, gate *auth.Gate) *AuthHandler {
	return &AuthHandler{authService: authService, gate: gate}
}

// Entry handles GET/POST /. The only role-dispatch point in the service:
// signed-in admins go to the admin dashboard, staff to the clock view,
// everyone else sees the login entry document.
func (h *AuthHandler) Entry(c *fiber.Ctx) error {
	result := h.gate.Check(c)
	if result.Status == auth.StatusOk {
		if result.User.IsAdmin {
			return c.Redirect("/admin_dashboard", http.StatusFound)
		}
		return c.Redirect("/clock-in-out", http.StatusFound)
	}
	return c.JSON(fiber.Map{
		"view":           "login",
		"login":          "/login",
		"register":       "/register",
		"admin_login":    "/admin_login",
		"admin_register": "/admin_register",
	})
}

// Register handles GET/POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.JSON(fiber.Map{"view": "register"})
	}
	return h.register(c, false, "/login", "There was an issue registering the staff")
}

// AdminRegister handles GET/POST /admin_register.
func (h *AuthHandler) AdminRegister(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.JSON(fiber.Map{"view": "admin_register"})
	}
	return h.register(c, true, "/admin_login", "There was an issue registering the admin")
}

func (h *AuthHandler) register(c *fiber.Ctx, isAdmin bool, loginPath, failureMessage string) error {
	var req dto.CredentialsForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	if _, err := h.authService.Register(c.Context(), req.Username, req.Password, isAdmin); err != nil {
		return failureText(c, err, failureMessage)
	}
	return c.Redirect(loginPath, http.StatusFound)
}

// Login handles GET/POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.JSON(fiber.Map{"view": "login"})
	}
	return h.login(c, false, "/staff_dashboard", "Invalid staff credentials")
}

// AdminLogin handles GET/POST /admin_login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		return c.JSON(fiber.Map{"view": "admin_login"})
	}
	return h.login(c, true, "/admin_dashboard", "Invalid admin credentials")
}

func (h *AuthHandler) login(c *fiber.Ctx, wantAdmin bool, dashboardPath, failureMessage string) error {
	var req dto.CredentialsForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	user, err := h.authService.Login(c.Context(), req.Username, req.Password, wantAdmin)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(http.StatusUnauthorized).SendString(failureMessage)
		}
		return err
	}

	if err := h.gate.SignIn(c, user); err != nil {
		return err
	}
	return c.Redirect(dashboardPath, http.StatusFound)
}

// Logout handles GET /logout. Always succeeds.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.gate.SignOut(c)
	return c.Redirect("/", http.StatusFound)
}
