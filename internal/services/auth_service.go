package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/wellnest/internal/db"
	"github.com/terraincognita07/wellnest/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	PasswordHashCost  = 12
	MinPasswordLength = 8
	// bcrypt ignores input past 72 bytes and recent x/crypto rejects it.
	MaxPasswordBytes = 72
)

var (
	ErrAuthFieldsRequired  = errors.New("auth fields required")
	ErrUsernameTooLong     = errors.New("username too long")
	ErrDisplayNameTooLong  = errors.New("display name too long")
	ErrPasswordTooShort    = errors.New("password too short")
	ErrPasswordTooLong     = errors.New("password too long")
	ErrUsernameTaken       = errors.New("username taken")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAuthUserNotFound    = errors.New("auth user not found")
	errPasswordHashFailure = errors.New("hash password")
)

type AuthUserRepository interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePasswordHash(ctx context.Context, userID uint, passwordHash string) error
}

type RegistrationInput struct {
	Username    string
	DisplayName string
	Password    string
}

type AuthService struct {
	users    AuthUserRepository
	hashCost int
	now      func() time.Time

	dummyHashOnce sync.Once
	dummyHash     []byte
}

func NewAuthService(users AuthUserRepository) *AuthService {
	return &AuthService{users: users, hashCost: PasswordHashCost, now: time.Now}
}

// NormalizeRegistrationInput trims the text fields and applies the presence
// and length checks. The password is never trimmed.
func NormalizeRegistrationInput(input RegistrationInput) (RegistrationInput, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if input.Username == "" || input.DisplayName == "" || input.Password == "" {
		return input, ErrAuthFieldsRequired
	}
	if utf8.RuneCountInString(input.Username) > models.MaxUsernameLength {
		return input, ErrUsernameTooLong
	}
	if utf8.RuneCountInString(input.DisplayName) > models.MaxDisplayNameLength {
		return input, ErrDisplayNameTooLong
	}
	if err := ValidatePasswordLength(input.Password); err != nil {
		return input, err
	}
	return input, nil
}

func ValidatePasswordLength(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

// Register validates input, checks the username is free, and inserts the
// user with a bcrypt hash. Nothing is written when any check fails.
func (service *AuthService) Register(ctx context.Context, input RegistrationInput) (models.User, error) {
	normalized, err := NormalizeRegistrationInput(input)
	if err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByUsername(ctx, normalized.Username)
	if err != nil {
		return models.User{}, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return models.User{}, ErrUsernameTaken
	}

	passwordHash, err := service.hashPassword(normalized.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Username:     normalized.Username,
		PasswordHash: passwordHash,
		DisplayName:  normalized.DisplayName,
		CreatedAt:    service.now().UTC(),
	}
	if err := service.users.Create(ctx, &user); err != nil {
		if errors.Is(err, db.ErrDuplicateUsername) {
			return models.User{}, ErrUsernameTaken
		}
		// A concurrent registration can win the unique index even when the
		// driver does not translate the constraint error.
		if taken, checkErr := service.users.ExistsByUsername(ctx, normalized.Username); checkErr == nil && taken {
			return models.User{}, ErrUsernameTaken
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate returns ErrInvalidCredentials for a missing field, an unknown
// user and a wrong password alike. Unknown users still pay one bcrypt
// comparison.
func (service *AuthService) Authenticate(ctx context.Context, username string, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(service.dummyPasswordHash(), []byte(password))
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// ResetPassword replaces the stored hash for username. It backs the operator
// CLI and is not reachable over HTTP.
func (service *AuthService) ResetPassword(ctx context.Context, username string, newPassword string) error {
	if err := ValidatePasswordLength(newPassword); err != nil {
		return err
	}

	user, err := service.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return ErrAuthUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	passwordHash, err := service.hashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := service.users.UpdatePasswordHash(ctx, user.ID, passwordHash); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return ErrAuthUserNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (service *AuthService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), service.hashCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errPasswordHashFailure, err)
	}
	return string(hash), nil
}

func (service *AuthService) dummyPasswordHash() []byte {
	service.dummyHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("wellnest-dummy-password"), service.hashCost)
		if err == nil {
			service.dummyHash = hash
		}
	})
	return service.dummyHash
}
