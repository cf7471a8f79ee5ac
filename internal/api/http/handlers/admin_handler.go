package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/timeclock-service/internal/api/dto"
	"github.com/spec-kit/timeclock-service/internal/auth"
	"github.com/spec-kit/timeclock-service/internal/service"
)

// AdminHandler exposes staff management for admins.
type AdminHandler struct {
	staffService *service.StaffService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(staffService *service.StaffService) *AdminHandler {
	return &AdminHandler{staffService: staffService}
}

// Dashboard handles GET /admin_dashboard: every account, admins included.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	admin, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	users, err := h.staffService.ListUsers(c.Context())
	if err != nil {
		return err
	}
	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{
		"admin": userResponse(admin),
		"users": resp,
	})
}

// EditStaff handles GET/POST /edit_staff. GET lists staff accounts; POST
// applies an edit. An unknown staff_id is a silent no-op and still redirects
// as if successful.
func (h *AdminHandler) EditStaff(c *fiber.Ctx) error {
	if c.Method() == fiber.MethodGet {
		staff, err := h.staffService.ListStaff(c.Context())
		if err != nil {
			return err
		}
		resp := make([]dto.UserResponse, 0, len(staff))
		for i := range staff {
			resp = append(resp, userResponse(&staff[i]))
		}
		return c.JSON(fiber.Map{"staff": resp})
	}

	var req dto.EditStaffForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(http.StatusBadRequest, "staff_id and new_username required")
	}

	if _, err := h.staffService.UpdateStaff(c.Context(), req.StaffID, req.NewUsername, req.NewPassword); err != nil {
		return failureText(c, err, "There was an issue updating the staff profile")
	}
	return c.Redirect("/edit_staff", http.StatusFound)
}

// AddStaff handles GET/POST /add_staff.
func (h *AdminHandler) AddStaff(c *fiber.Ctx) error {
	admin, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	if c.Method() == fiber.MethodGet {
		return c.JSON(fiber.Map{"view": "add_staff", "admin": userResponse(admin)})
	}

	var req dto.CredentialsForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := req.Validate(); err != nil {
		return fiber.NewError(http.StatusBadRequest, "username and password required")
	}

	if _, err := h.staffService.AddStaff(c.Context(), admin, req.Username, req.Password); err != nil {
		return failureText(c, err, "There was an issue adding the staff")
	}
	return c.Redirect("/edit_staff", http.StatusFound)
}

// DeleteStaff handles GET /delete_staff/:id. Best-effort: failures are
// logged inside the service and the admin is redirected regardless.
func (h *AdminHandler) DeleteStaff(c *fiber.Ctx) error {
	admin, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	h.staffService.DeleteStaff(c.Context(), admin, c.Params("id"))
	return c.Redirect("/edit_staff", http.StatusFound)
}
