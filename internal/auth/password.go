package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	iterations = 100000
	keyLen     = sha256.Size
)

// HashPassword derives a PBKDF2-HMAC-SHA256 key from the plaintext with a
// random salt and returns it encoded as hex(salt):hex(key).
func HashPassword(plaintext string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(plaintext), salt, iterations, keyLen, sha256.New)
	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(key), nil
}

// VerifyPassword re-derives the key with the stored salt and reports
// whether it matches. Malformed encodings verify as false.
func VerifyPassword(encoded, plaintext string) bool {
	saltHex, keyHex, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	stored, err := hex.DecodeString(keyHex)
	if err != nil {
		return false
	}
	derived := pbkdf2.Key([]byte(plaintext), salt, iterations, len(stored), sha256.New)
	return hmac.Equal(derived, stored)
}
