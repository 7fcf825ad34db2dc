package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const flashCookiePurpose = "flash"

// FlashPayload survives exactly one redirect.
type FlashPayload struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (payload FlashPayload) empty() bool {
	return payload.Success == "" && payload.Error == ""
}

func (handler *Handler) setFlash(c *fiber.Ctx, payload FlashPayload) {
	payload.Success = strings.TrimSpace(payload.Success)
	payload.Error = strings.TrimSpace(payload.Error)
	if payload.empty() {
		handler.clearFlash(c)
		return
	}

	serialized, err := json.Marshal(payload)
	if err != nil {
		return
	}
	sealed, err := handler.cookies.seal(flashCookiePurpose, serialized)
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    sealed,
		Path:     handler.basePath.CookiePath(),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(5 * time.Minute),
	})
}

func (handler *Handler) popFlash(c *fiber.Ctx) FlashPayload {
	raw := strings.TrimSpace(c.Cookies(flashCookieName))
	if raw == "" {
		return FlashPayload{}
	}
	handler.clearFlash(c)

	plaintext, err := handler.cookies.open(flashCookiePurpose, raw)
	if err != nil {
		return FlashPayload{}
	}
	payload := FlashPayload{}
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return FlashPayload{}
	}
	return payload
}

func (handler *Handler) clearFlash(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     handler.basePath.CookiePath(),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}
