package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/timeclock-service/internal/api/dto"
	"github.com/spec-kit/timeclock-service/internal/auth"
	"github.com/spec-kit/timeclock-service/internal/service"
)

// ProfileHandler exposes the dashboards and self-service profile edits.
type ProfileHandler struct {
	staffService *service.StaffService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(staffService *service.StaffService) *ProfileHandler {
	return &ProfileHandler{staffService: staffService}
}

// StaffDashboard handles GET /staff_dashboard.
func (h *ProfileHandler) StaffDashboard(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}
	return c.JSON(fiber.Map{"user": userResponse(user)})
}

// Profile handles GET/POST /profile.
func (h *ProfileHandler) Profile(c *fiber.Ctx) error {
	return h.editProfile(c)
}

// AdminProfile handles GET/POST /admin_profile. Any session may edit its own
// profile here; the route carries no admin requirement.
func (h *ProfileHandler) AdminProfile(c *fiber.Ctx) error {
	return h.editProfile(c)
}

func (h *ProfileHandler) editProfile(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	if c.Method() == fiber.MethodGet {
		return c.JSON(fiber.Map{"user": userResponse(user)})
	}

	var req dto.ProfileForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(http.StatusBadRequest, "new_username required")
	}

	if _, err := h.staffService.UpdateProfile(c.Context(), user, req.NewUsername, req.NewPassword); err != nil {
		return failureText(c, err, "There was an issue updating your profile")
	}
	return c.Redirect(c.Path(), http.StatusFound)
}
