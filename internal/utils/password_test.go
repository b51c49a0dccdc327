package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err, "Hashing should not return an error")
	assert.NotEmpty(t, hash, "Hash should not be empty")

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err, "Hash should be a valid bcrypt hash")
	assert.Equal(t, bcryptCost, cost, "Hash should use the configured cost")
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	assert.NoError(t, err)

	assert.True(t, CheckPasswordHash("correct horse battery staple", hash), "Matching password should verify")
	assert.False(t, CheckPasswordHash("wrong password", hash), "Wrong password should not verify")
	assert.False(t, CheckPasswordHash("correct horse battery staple", "not-a-bcrypt-hash"), "Garbage hash should not verify")
}
