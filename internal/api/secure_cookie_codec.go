package api

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	sealedCookieVersion = "w1"
	sealedCookieKeyInfo = "wellnest sealed cookie key"
)

var errInvalidSealedCookie = errors.New("invalid sealed cookie value")

// secureCookieCodec encrypts and authenticates small cookie payloads. The
// purpose is bound as additional data so a value sealed for one cookie
// cannot be replayed into another.
type secureCookieCodec struct {
	aead cipher.AEAD
}

func newSecureCookieCodec(secretKey []byte) (*secureCookieCodec, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("cookie secret key is required")
	}

	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secretKey, nil, []byte(sealedCookieKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive cookie key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("init cookie cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init cookie aead: %w", err)
	}
	return &secureCookieCodec{aead: aead}, nil
}

func (codec *secureCookieCodec) seal(purpose string, plaintext []byte) (string, error) {
	nonce := make([]byte, codec.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate cookie nonce: %w", err)
	}

	sealed := codec.aead.Seal(nonce, nonce, plaintext, []byte(purpose))
	return sealedCookieVersion + "." + base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (codec *secureCookieCodec) open(purpose string, raw string) ([]byte, error) {
	version, encoded, found := strings.Cut(strings.TrimSpace(raw), ".")
	if !found || version != sealedCookieVersion || encoded == "" {
		return nil, errInvalidSealedCookie
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errInvalidSealedCookie
	}
	nonceSize := codec.aead.NonceSize()
	if len(payload) <= nonceSize {
		return nil, errInvalidSealedCookie
	}

	plaintext, err := codec.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], []byte(purpose))
	if err != nil {
		return nil, errInvalidSealedCookie
	}
	return plaintext, nil
}
