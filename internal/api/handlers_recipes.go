package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ShowRecipes(c *fiber.Ctx) error {
	recipes, query, err := handler.recipeService.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return handler.serverError(c, "Recipe error", err)
	}

	return handler.render(c, fiber.StatusOK, "recipes", fiber.Map{
		"Title":   "Wellnest | Recipes",
		"Query":   query,
		"Recipes": recipes,
	})
}
