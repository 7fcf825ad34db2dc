package security

import (
	"errors"
	"strings"
	"testing"
)

func TestRandomString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		length   int
		alphabet string
		wantErr  error
	}{
		{name: "negative length", length: -1, alphabet: "abc", wantErr: ErrNegativeLength},
		{name: "empty alphabet", length: 1, alphabet: "", wantErr: ErrEmptyAlphabet},
		{name: "zero length", length: 0, alphabet: "abc"},
		{name: "single alphabet character", length: 8, alphabet: "X"},
		{name: "password alphabet", length: 64, alphabet: PasswordAlphabet},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got, err := RandomString(test.length, test.alphabet)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("RandomString(%d, %q) error = %v, want %v", test.length, test.alphabet, err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("RandomString(%d, %q) returned error: %v", test.length, test.alphabet, err)
			}
			if len(got) != test.length {
				t.Fatalf("RandomString(%d, %q) len = %d, want %d", test.length, test.alphabet, len(got), test.length)
			}
			for _, char := range got {
				if !strings.ContainsRune(test.alphabet, char) {
					t.Fatalf("RandomString(%d, %q) produced char %q outside alphabet", test.length, test.alphabet, char)
				}
			}
		})
	}
}

func TestRandomPasswordEnforcesMinimumLength(t *testing.T) {
	t.Parallel()

	short, err := RandomPassword(4)
	if err != nil {
		t.Fatalf("RandomPassword returned error: %v", err)
	}
	if len(short) != MinGeneratedPasswordLength {
		t.Fatalf("RandomPassword(4) len = %d, want %d", len(short), MinGeneratedPasswordLength)
	}

	long, err := RandomPassword(20)
	if err != nil {
		t.Fatalf("RandomPassword returned error: %v", err)
	}
	if len(long) != 20 {
		t.Fatalf("RandomPassword(20) len = %d, want 20", len(long))
	}
}
