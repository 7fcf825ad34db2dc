package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// ErrorHandler answers any error that escapes a handler or middleware with a
// generic body. Internal error text is logged, never sent.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	if status >= fiber.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Method(), c.OriginalURL(), err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Status(status).SendString(utils.StatusMessage(status))
}

func logRequestFailure(c *fiber.Ctx, action string, err error) {
	log.Printf("%s %s: %s failed: %v", c.Method(), c.Path(), action, err)
}

// serverError logs err and renders the generic error page.
func (handler *Handler) serverError(c *fiber.Ctx, message string, err error) error {
	logRequestFailure(c, message, err)
	return handler.render(c, fiber.StatusInternalServerError, "error", fiber.Map{
		"Title":   "Wellnest | Error",
		"Message": message,
	})
}
