// Package cryptox holds the password derivation used by the credential store:
// PBKDF2-HMAC-SHA256 over a per-user random salt, hex encoded for storage.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/ANITHAC1201/joicy/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// Iterations is the PBKDF2 work factor. Changing it invalidates every
	// stored hash.
	Iterations = 200_000

	// SaltSize is the number of random bytes in a fresh salt.
	SaltSize = 16

	// KeySize is the derived key length (the SHA-256 digest size).
	KeySize = sha256.Size
)

// NewSalt returns SaltSize random bytes, hex encoded.
func NewSalt() string {
	return hex.EncodeToString(common.GenerateRandByteArray(SaltSize))
}

// HashPassword derives the hex-encoded PBKDF2 hash of password under the
// hex-encoded salt.
//
// Example:
//
//	salt := cryptox.NewSalt()
//	hash, err := cryptox.HashPassword("Secret123!", salt)
//	if err != nil {
//	    return err
//	}
//	// persist salt and hash, never the password
func HashPassword(password, saltHex string) (string, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return "", fmt.Errorf("malformed salt: %w", err)
	}
	return deriveKey([]byte(password), salt, Iterations), nil
}

// VerifyPassword re-derives the hash of password under saltHex and compares
// it with expectedHex in constant time. A malformed salt never verifies.
func VerifyPassword(password, saltHex, expectedHex string) bool {
	candidate, err := HashPassword(password, saltHex)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(expectedHex)) == 1
}

func deriveKey(password, salt []byte, iterations int) string {
	return hex.EncodeToString(pbkdf2.Key(password, salt, iterations, KeySize, sha256.New))
}
