package api

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts every page, the static assets and the not-found
// fallback under the configured base path.
func RegisterRoutes(app *fiber.App, handler *Handler) {
	if handler.staticDir != "" {
		app.Static(handler.path("/static"), handler.staticDir)
	}

	app.Get(handler.path("/healthz"), handler.Health)

	app.Get(handler.path("/"), handler.ShowHome)
	app.Get(handler.path("/about"), handler.ShowAbout)
	app.Get(handler.path("/recipes"), handler.ShowRecipes)

	app.Get(handler.path("/register"), handler.ShowRegisterPage)
	app.Post(handler.path("/register"), handler.Register)
	app.Get(handler.path("/login"), handler.ShowLoginPage)
	app.Post(handler.path("/login"), handler.Login)
	app.Get(handler.path("/logout"), handler.Logout)
	app.Post(handler.path("/logout"), handler.Logout)

	app.Get(handler.path("/daily-check-in"), handler.AuthRequired, handler.ShowCheckIn)
	app.Post(handler.path("/daily-check-in"), handler.AuthRequired, handler.SubmitCheckIn)

	app.Use(handler.NotFound)
}
