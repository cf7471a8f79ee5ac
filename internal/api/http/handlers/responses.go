package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/timeclock-service/internal/api/dto"
	"github.com/spec-kit/timeclock-service/internal/domain"
	apperrors "github.com/spec-kit/timeclock-service/pkg/util"
)

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

func clockEventResponses(clockEvents []domain.ClockEvent) []dto.ClockEventResponse {
	resp := make([]dto.ClockEventResponse, 0, len(clockEvents))
	for i := range clockEvents {
		event := &clockEvents[i]
		resp = append(resp, dto.ClockEventResponse{
			ID:        event.ID,
			UserID:    event.UserID,
			ClockType: string(event.ClockType),
			Timestamp: event.RecordedAt,
			Username:  event.Username,
		})
	}
	return resp
}

// failureText sends the generic plain-text failure message the workflow
// pages use, carrying the status of the underlying domain error.
func failureText(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusInternalServerError
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		status = domainErr.HTTPStatus
	}
	return c.Status(status).SendString(message)
}
