package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDint64Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		require.Positive(t, id)
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("parola123")
	require.NoError(t, err)
	assert.NotEqual(t, "parola123", hash)

	assert.True(t, CheckPassword(hash, "parola123"))
	assert.False(t, CheckPassword(hash, "gresit"))
	assert.False(t, CheckPassword("not-a-hash", "parola123"))
}

func TestSha256HashWithSalt(t *testing.T) {
	a := Sha256HashWithSalt("parola", "sare")
	b := Sha256HashWithSalt("parola", "sare")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, Sha256HashWithSalt("parola", "alta"))
}

func TestUrlFilename(t *testing.T) {
	assert.Equal(t, "42_170.jpg",
		UrlFilename("http://localhost/public/storage/category-images/categories/42_170.jpg"))
	assert.Equal(t, "file.png", UrlFilename("file.png"))
	assert.Equal(t, "", UrlFilename(""))
}
