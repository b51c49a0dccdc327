package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3FileStorage_SetsBucket(t *testing.T) {
	store, err := NewS3FileStorage("https://example.r2.cloudflarestorage.com", "auto", "my-bucket", "AKID", "SECRET")
	require.NoError(t, err)
	assert.NotNil(t, store.client)
	assert.NotNil(t, store.presigner)
	assert.Equal(t, "my-bucket", store.bucketName)
}

func TestNewS3FileStorage_RequiresBucket(t *testing.T) {
	_, err := NewS3FileStorage("", "auto", "", "AKID", "SECRET")
	require.Error(t, err)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("documents/abc-123/contract.pdf"))
	assert.Error(t, ValidateKey("documents/../secrets/key.pem"))
	assert.Error(t, ValidateKey(".."))
}
