package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/services"
)

const (
	messageCheckInSaved      = "Check-in saved."
	messageCheckInSaveFailed = "Could not save log."
	messageInvalidForm       = "Invalid form submission."
)

func (handler *Handler) ShowCheckIn(c *fiber.Ctx) error {
	today := handler.checkInService.Today()
	return handler.renderCheckIn(c, fiber.StatusOK, services.CheckInInput{
		LogDate: today.Format(services.CheckInDateLayout),
	}, "", "")
}

func (handler *Handler) SubmitCheckIn(c *fiber.Ctx) error {
	identity, ok := currentIdentity(c)
	if !ok {
		return c.Redirect(handler.path("/login"), fiber.StatusSeeOther)
	}

	input := services.CheckInInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.renderCheckIn(c, fiber.StatusBadRequest, input, "", messageInvalidForm)
	}

	if _, err := handler.checkInService.Save(c.UserContext(), identity.UserID, input); err != nil {
		var validationErr *services.CheckInValidationError
		if errors.As(err, &validationErr) {
			return handler.renderCheckIn(c, fiber.StatusBadRequest, input, validationErr.Field, validationErr.Message)
		}
		logRequestFailure(c, "save check-in", err)
		return handler.renderCheckIn(c, fiber.StatusInternalServerError, input, "", messageCheckInSaveFailed)
	}

	handler.setFlash(c, FlashPayload{Success: messageCheckInSaved})
	return c.Redirect(handler.path("/"), fiber.StatusSeeOther)
}

func (handler *Handler) renderCheckIn(c *fiber.Ctx, status int, input services.CheckInInput, field string, message string) error {
	return handler.render(c, status, "check_in", fiber.Map{
		"Title":      "Wellnest | Daily check-in",
		"Form":       input,
		"ErrorField": field,
		"Error":      message,
	})
}
