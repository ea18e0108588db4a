package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/scrypt"
)

// PasswordManager handles password hashing and verification
type PasswordManager struct {
	saltLength int
	n          int
	r          int
	p          int
	keyLen     int
}

// NewPasswordManager creates a new password manager with default parameters
func NewPasswordManager() *PasswordManager {
	return &PasswordManager{
		saltLength: 32,
		n:          32768, // 2^15
		r:          8,
		p:          1,
		keyLen:     64,
	}
}

// HashPassword hashes a password with a random salt
func (pm *PasswordManager) HashPassword(password string) (string, error) {
	salt := make([]byte, pm.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash, err := scrypt.Key([]byte(password), salt, pm.n, pm.r, pm.p, pm.keyLen)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	// Salt is stored alongside the hash
	combined := append(salt, hash...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

// VerifyPassword checks if a password matches the stored hash
func (pm *PasswordManager) VerifyPassword(password string, encoded string) (bool, error) {
	combined, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	if len(combined) != pm.saltLength+pm.keyLen {
		return false, fmt.Errorf("invalid hash length")
	}

	salt := combined[:pm.saltLength]
	stored := combined[pm.saltLength:]

	hash, err := scrypt.Key([]byte(password), salt, pm.n, pm.r, pm.p, pm.keyLen)
	if err != nil {
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	return subtle.ConstantTimeCompare(hash, stored) == 1, nil
}
