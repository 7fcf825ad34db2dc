package api

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/terraincognita07/wellnest/internal/models"
	"github.com/terraincognita07/wellnest/internal/session"
)

// startSession always issues a fresh session id and drops the previous one.
// The identity strings are copied since they may alias request buffers.
func (handler *Handler) startSession(c *fiber.Ctx, user models.User) error {
	if previous := currentSessionID(c); previous != "" {
		if err := handler.sessions.Delete(c.UserContext(), previous); err != nil {
			log.Printf("drop previous session: %v", err)
		}
	}

	sessionID := session.NewID()
	identity := user.Identity()
	identity.Username = utils.CopyString(identity.Username)
	identity.DisplayName = utils.CopyString(identity.DisplayName)
	if err := handler.sessions.Save(c.UserContext(), sessionID, identity); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	token, err := handler.tokens.Sign(sessionID)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     handler.basePath.CookiePath(),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
	})
	c.Locals(contextSessionIDKey, sessionID)
	c.Locals(contextIdentityKey, identity)
	return nil
}

func (handler *Handler) endSession(c *fiber.Ctx) {
	if sessionID := currentSessionID(c); sessionID != "" {
		if err := handler.sessions.Delete(c.UserContext(), sessionID); err != nil {
			log.Printf("delete session: %v", err)
		}
	}
	handler.clearSessionCookie(c)
	c.Locals(contextSessionIDKey, nil)
	c.Locals(contextIdentityKey, nil)
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     handler.basePath.CookiePath(),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
