package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password using bcrypt and returns it hex-encoded.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(hash), nil
}

// CheckPasswordHash compares a plaintext password with a stored hex-encoded hash.
// Besides bcrypt it accepts the bare SHA-256 digests written by older versions,
// reporting those as legacy so the caller can re-hash them.
func CheckPasswordHash(password, storedHex string) (match bool, legacy bool) {
	raw, err := hex.DecodeString(storedHex)
	if err != nil {
		return false, false
	}
	if len(raw) == sha256.Size {
		sum := sha256.Sum256([]byte(password))
		return subtle.ConstantTimeCompare(sum[:], raw) == 1, true
	}
	return bcrypt.CompareHashAndPassword(raw, []byte(password)) == nil, false
}
