package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/wellnest/internal/models"
)

var ErrInvalidSessionID = errors.New("invalid session id")

// Store keeps the identity behind each session id. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (models.Identity, bool, error)
	Save(ctx context.Context, id string, identity models.Identity) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the shape produced by NewID.
func ValidID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.Version() == 4
}

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 24 * time.Hour
	}
	return ttl
}
