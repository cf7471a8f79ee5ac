package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/timeclock-service/internal/api/dto"
	"github.com/spec-kit/timeclock-service/internal/auth"
	"github.com/spec-kit/timeclock-service/internal/domain"
	"github.com/spec-kit/timeclock-service/internal/export"
	"github.com/spec-kit/timeclock-service/internal/service"
)

// ClockHandler exposes clock-in/out, history views and CSV exports.
type ClockHandler struct {
	clockService *service.ClockService
}

// NewClockHandler constructs handler.
func NewClockHandler(clockService *service.ClockService) *ClockHandler {
	return &ClockHandler{clockService: clockService}
}

// ClockInOut handles GET/POST /clock-in-out.
func (h *ClockHandler) ClockInOut(c *fiber.Ctx) error {
	return h.clockInOut(c)
}

// AdminClockInOut handles GET/POST /admin_clock_in_out. Identical behavior;
// the route's admin requirement is enforced by the gate.
func (h *ClockHandler) AdminClockInOut(c *fiber.Ctx) error {
	return h.clockInOut(c)
}

func (h *ClockHandler) clockInOut(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	if c.Method() == fiber.MethodPost {
		var req dto.ClockForm
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, "invalid payload")
		}
		if err := req.Validate(); err != nil {
			return fiber.NewError(http.StatusBadRequest, "clock_type required")
		}
		if _, err := h.clockService.Record(c.Context(), user.ID, domain.ClockType(req.ClockType)); err != nil {
			return err
		}
	}

	clockEvents, err := h.clockService.HistoryForUser(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user":     userResponse(user),
		"greeting": "Hello, " + user.Username,
		"events":   clockEventResponses(clockEvents),
	})
}

// History handles GET /history.
func (h *ClockHandler) History(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	clockEvents, err := h.clockService.HistoryForUser(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user":   userResponse(user),
		"events": clockEventResponses(clockEvents),
	})
}

// AdminHistory handles GET /admin_history: every user's events, newest first.
func (h *ClockHandler) AdminHistory(c *fiber.Ctx) error {
	clockEvents, err := h.clockService.CombinedHistory(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"events": clockEventResponses(clockEvents)})
}

// ExportHistory handles GET /export-history: the session user's history as a
// CSV download, built in memory.
func (h *ClockHandler) ExportHistory(c *fiber.Ctx) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "session required")
	}

	clockEvents, err := h.clockService.HistoryForUser(c.Context(), user.ID)
	if err != nil {
		return err
	}
	return h.sendCSV(c, clockEvents, export.StaffFilename(user.Username))
}

// AdminExportHistory handles GET /admin_export_history: the combined history
// as a CSV download.
func (h *ClockHandler) AdminExportHistory(c *fiber.Ctx) error {
	clockEvents, err := h.clockService.CombinedHistory(c.Context())
	if err != nil {
		return err
	}
	return h.sendCSV(c, clockEvents, export.CombinedFilename)
}

func (h *ClockHandler) sendCSV(c *fiber.Ctx, clockEvents []domain.ClockEvent, filename string) error {
	doc, err := export.ClockHistoryCSV(clockEvents)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, export.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
