package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest password accepted for an operator account.
const MinPasswordLength = 8

// bcrypt ignores everything past 72 bytes, so longer input is refused rather than silently truncated.
const maxPasswordBytes = 72

var ErrWeakPassword = fmt.Errorf("password must be between %d and %d bytes", MinPasswordLength, maxPasswordBytes)

// HashPassword returns the bcrypt hash stored on the user record.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength || len(password) > maxPasswordBytes {
		return "", ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash. An empty or
// malformed hash never matches.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
