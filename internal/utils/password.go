package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the work factor for password hashing. bcrypt's default
// (10) keeps login latency tolerable on the small instances we deploy to.
const bcryptCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
