package api

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/wellnest/internal/models"
)

// LoadSession resolves the identity behind the session cookie for every
// request. Anything unusable is treated as an anonymous visitor.
func (handler *Handler) LoadSession(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies(sessionCookieName))
	if raw == "" {
		return c.Next()
	}

	sessionID, err := handler.tokens.Parse(raw)
	if err != nil {
		handler.clearSessionCookie(c)
		return c.Next()
	}

	identity, found, err := handler.sessions.Get(c.UserContext(), sessionID)
	if err != nil {
		log.Printf("load session: %v", err)
		return c.Next()
	}
	if !found {
		handler.clearSessionCookie(c)
		return c.Next()
	}

	c.Locals(contextSessionIDKey, sessionID)
	c.Locals(contextIdentityKey, identity)
	return c.Next()
}

// AuthRequired sends anonymous visitors to the login page.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	if _, ok := currentIdentity(c); !ok {
		return c.Redirect(handler.path("/login"), fiber.StatusSeeOther)
	}
	return c.Next()
}

func currentIdentity(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(contextIdentityKey).(models.Identity)
	return identity, ok
}

func currentSessionID(c *fiber.Ctx) string {
	sessionID, _ := c.Locals(contextSessionIDKey).(string)
	return sessionID
}
