package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/wellnest/internal/security"
	"github.com/terraincognita07/wellnest/internal/services"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

type PasswordResetter interface {
	ResetPassword(ctx context.Context, username string, newPassword string) error
}

type ResetPasswordOptions struct {
	Username string
	Generate bool
	In       io.Reader
	Out      io.Writer
}

// RunResetPassword replaces a user's password, either with a generated one
// that is printed once or with one typed twice at the prompt.
func RunResetPassword(ctx context.Context, resetter PasswordResetter, options ResetPasswordOptions) error {
	username := strings.TrimSpace(options.Username)
	if username == "" {
		return errors.New("username is required")
	}

	var (
		password string
		err      error
	)
	if options.Generate {
		password, err = security.RandomPassword(16)
		if err != nil {
			return fmt.Errorf("generate password: %w", err)
		}
	} else {
		password, err = promptNewPassword(options.In, options.Out)
		if err != nil {
			return err
		}
	}

	if err := resetter.ResetPassword(ctx, username, password); err != nil {
		switch {
		case errors.Is(err, services.ErrAuthUserNotFound):
			return fmt.Errorf("user %s not found", username)
		case errors.Is(err, services.ErrPasswordTooShort):
			return fmt.Errorf("password must be at least %d characters", services.MinPasswordLength)
		case errors.Is(err, services.ErrPasswordTooLong):
			return fmt.Errorf("password must be at most %d bytes", services.MaxPasswordBytes)
		default:
			return fmt.Errorf("reset password: %w", err)
		}
	}

	fmt.Fprintf(options.Out, "Password for %s updated.\n", username)
	if options.Generate {
		fmt.Fprintf(options.Out, "New password: %s\n", password)
	}
	return nil
}

func promptNewPassword(in io.Reader, out io.Writer) (string, error) {
	lines := newPromptReader(in)

	fmt.Fprint(out, "New password: ")
	first, err := lines.readSecret()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Fprint(out, "Repeat password: ")
	second, err := lines.readSecret()
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if first != second {
		return "", ErrPasswordMismatch
	}
	return first, nil
}
