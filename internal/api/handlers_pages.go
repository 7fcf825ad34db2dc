package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/models"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// ShowHome lists the visitor's recent check-ins, or nothing when anonymous.
func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	logs := []models.DailyLog{}
	if identity, ok := currentIdentity(c); ok {
		recent, err := handler.checkInService.RecentLogs(c.UserContext(), identity.UserID)
		if err != nil {
			return handler.serverError(c, "Database error", err)
		}
		logs = recent
	}

	return handler.render(c, fiber.StatusOK, "home", fiber.Map{
		"Title": "Wellnest",
		"Logs":  logs,
		"Flash": handler.popFlash(c),
	})
}

func (handler *Handler) ShowAbout(c *fiber.Ctx) error {
	return handler.render(c, fiber.StatusOK, "about", fiber.Map{
		"Title": "Wellnest | About",
	})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return handler.render(c, fiber.StatusNotFound, "not_found", fiber.Map{
		"Title": "Wellnest | Not found",
	})
}
