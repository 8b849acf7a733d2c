package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	assert.ErrorIs(t, ValidateImage("text/plain", 100), ErrNotImage)
	assert.ErrorIs(t, ValidateImage("application/pdf", 100), ErrNotImage)
	assert.ErrorIs(t, ValidateImage("image/jpeg", 6<<20), ErrTooLarge)
	assert.NoError(t, ValidateImage("image/jpeg", 4<<20))
	assert.NoError(t, ValidateImage("image/png", MaxImageSize))
	assert.ErrorIs(t, ValidateImage("image/png", MaxImageSize+1), ErrTooLarge)
}

func TestObjectName(t *testing.T) {
	name := ObjectName("12345", "photo.JPG")
	assert.True(t, strings.HasPrefix(name, "12345_"))
	assert.True(t, strings.HasSuffix(name, ".JPG"))

	name = ObjectName("", "latte.png")
	assert.True(t, strings.HasPrefix(name, "temp_"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	name = ObjectName("9", "noext")
	assert.True(t, strings.HasSuffix(name, ".bin"))
}

func TestNameFromURL(t *testing.T) {
	url := "http://localhost:1898/public/storage/category-images/categories/42_1700000000000.jpg"
	assert.Equal(t, "42_1700000000000.jpg", NameFromURL(url))
	assert.Equal(t, "plain.png", NameFromURL("plain.png"))
	assert.Equal(t, "", NameFromURL(""))
}

func TestBucketForKind(t *testing.T) {
	b, found := BucketForKind("category")
	require.True(t, found)
	assert.Equal(t, CategoryImages, b)

	b, found = BucketForKind("event")
	require.True(t, found)
	assert.Equal(t, EventImages, b)

	b, found = BucketForKind("home")
	require.True(t, found)
	assert.Equal(t, HomeImages, b)

	_, found = BucketForKind("banner")
	assert.False(t, found)
}

func TestFsStoreRoundTrip(t *testing.T) {
	s := NewFsStore(t.TempDir(), "http://localhost:1898/")

	url, err := s.Put(EventImages, "7_1700000000000.jpg", strings.NewReader("jpegdata"))
	require.NoError(t, err)
	assert.Equal(t,
		"http://localhost:1898/public/storage/event-images/events/7_1700000000000.jpg", url)

	names, err := s.List(EventImages)
	require.NoError(t, err)
	assert.Equal(t, []string{"7_1700000000000.jpg"}, names)

	// duplicate names are refused, uploads never overwrite
	_, err = s.Put(EventImages, "7_1700000000000.jpg", strings.NewReader("other"))
	assert.Error(t, err)

	assert.True(t, DeleteByURL(s, EventImages, url))

	names, err = s.List(EventImages)
	require.NoError(t, err)
	assert.Empty(t, names)

	// removing a missing object is not an error
	assert.NoError(t, s.Remove(EventImages, "7_1700000000000.jpg"))
	assert.False(t, DeleteByURL(s, EventImages, ""))
}

func TestFsStoreListMissingBucket(t *testing.T) {
	s := NewFsStore(t.TempDir(), "http://localhost:1898")
	names, err := s.List(HomeImages)
	require.NoError(t, err)
	assert.Empty(t, names)
}
