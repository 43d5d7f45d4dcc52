package util

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// scrypt parameters: interactive-login strength, 32-byte derived key.
const (
	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
	saltLen      = 16
)

// sessionTokenLen is the raw byte count of a session token, 192 bits.
const sessionTokenLen = 24

// HashPassword derives fresh credential material for a password. Salt and
// hash come back base64-encoded, ready to store on the user record. The
// plaintext is never persisted anywhere.
func HashPassword(password string) (salt, hash string, err error) {
	if password == "" {
		return "", "", fmt.Errorf("password is empty")
	}

	rawSalt := make([]byte, saltLen)
	if _, err := rand.Read(rawSalt); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	rawHash, err := scrypt.Key([]byte(password), rawSalt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return "", "", fmt.Errorf("derive hash: %w", err)
	}

	return base64.RawStdEncoding.EncodeToString(rawSalt),
		base64.RawStdEncoding.EncodeToString(rawHash), nil
}

// CheckPassword reports whether password matches the stored salt and hash.
// Malformed stored material fails closed.
func CheckPassword(password, salt, hash string) bool {
	if password == "" || salt == "" || hash == "" {
		return false
	}

	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil {
		return false
	}
	expected, err := base64.RawStdEncoding.DecodeString(hash)
	if err != nil || len(expected) == 0 {
		return false
	}

	derived, err := scrypt.Key([]byte(password), rawSalt, scryptN, scryptR, scryptP, len(expected))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(derived, expected) == 1
}

// NewSessionToken returns a fresh opaque session credential (URL safe).
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
