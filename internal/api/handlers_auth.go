package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/models"
	"github.com/terraincognita07/wellnest/internal/services"
)

const (
	messageFieldsRequired     = "All fields required."
	messageUsernameTaken      = "Username already taken."
	messageInvalidCredentials = "Invalid credentials."
	messageTooManyAttempts    = "Too many login attempts. Try again later."
	messageRegistrationFailed = "Registration failed."
	messageLoginFailed        = "Login failed."
)

type registerForm struct {
	Username    string `form:"username"`
	DisplayName string `form:"display_name"`
	Password    string `form:"password"`
}

type loginForm struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	return handler.renderRegister(c, fiber.StatusOK, registerForm{}, "")
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	form := registerForm{}
	if err := c.BodyParser(&form); err != nil {
		return handler.renderRegister(c, fiber.StatusBadRequest, registerForm{}, messageFieldsRequired)
	}

	user, err := handler.authService.Register(c.UserContext(), services.RegistrationInput{
		Username:    form.Username,
		DisplayName: form.DisplayName,
		Password:    form.Password,
	})
	if err != nil {
		status, message := registrationErrorResponse(err)
		if status == fiber.StatusInternalServerError {
			logRequestFailure(c, "register", err)
		}
		return handler.renderRegister(c, status, form, message)
	}

	if err := handler.startSession(c, user); err != nil {
		logRequestFailure(c, "register", err)
		return handler.renderRegister(c, fiber.StatusInternalServerError, form, messageRegistrationFailed)
	}
	return c.Redirect(handler.path("/"), fiber.StatusSeeOther)
}

func registrationErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrAuthFieldsRequired):
		return fiber.StatusBadRequest, messageFieldsRequired
	case errors.Is(err, services.ErrUsernameTooLong):
		return fiber.StatusBadRequest, fmt.Sprintf("Username must be at most %d characters.", models.MaxUsernameLength)
	case errors.Is(err, services.ErrDisplayNameTooLong):
		return fiber.StatusBadRequest, fmt.Sprintf("Display name must be at most %d characters.", models.MaxDisplayNameLength)
	case errors.Is(err, services.ErrPasswordTooShort):
		return fiber.StatusBadRequest, fmt.Sprintf("Password must be at least %d characters.", services.MinPasswordLength)
	case errors.Is(err, services.ErrPasswordTooLong):
		return fiber.StatusBadRequest, fmt.Sprintf("Password must be at most %d bytes.", services.MaxPasswordBytes)
	case errors.Is(err, services.ErrUsernameTaken):
		return fiber.StatusConflict, messageUsernameTaken
	default:
		return fiber.StatusInternalServerError, messageRegistrationFailed
	}
}

// renderRegister never echoes the password back.
func (handler *Handler) renderRegister(c *fiber.Ctx, status int, form registerForm, message string) error {
	form.Password = ""
	return handler.render(c, status, "register", fiber.Map{
		"Title": "Wellnest | Register",
		"Form":  form,
		"Error": message,
	})
}

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	return handler.renderLogin(c, fiber.StatusOK, "", "")
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	form := loginForm{}
	_ = c.BodyParser(&form)

	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return handler.renderLogin(c, fiber.StatusTooManyRequests, form.Username, messageTooManyAttempts)
	}

	user, err := handler.authService.Authenticate(c.UserContext(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			handler.loginLimiter.addFailure(limiterKey, now)
			return handler.renderLogin(c, fiber.StatusUnauthorized, form.Username, messageInvalidCredentials)
		}
		logRequestFailure(c, "login", err)
		return handler.renderLogin(c, fiber.StatusInternalServerError, form.Username, messageLoginFailed)
	}

	handler.loginLimiter.reset(limiterKey)
	if err := handler.startSession(c, user); err != nil {
		logRequestFailure(c, "login", err)
		return handler.renderLogin(c, fiber.StatusInternalServerError, form.Username, messageLoginFailed)
	}
	return c.Redirect(handler.path("/"), fiber.StatusSeeOther)
}

func (handler *Handler) renderLogin(c *fiber.Ctx, status int, username string, message string) error {
	return handler.render(c, status, "login", fiber.Map{
		"Title":    "Wellnest | Log in",
		"Username": username,
		"Error":    message,
	})
}

// Logout is idempotent: it succeeds for anonymous visitors too.
func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.endSession(c)
	return c.Redirect(handler.path("/"), fiber.StatusSeeOther)
}
