package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectMillis(t *testing.T) {
	assert.Equal(t, int64(1700000000000), objectMillis("42_1700000000000.jpg"))
	assert.Equal(t, int64(1700000000000), objectMillis("temp_1700000000000.png"))
	assert.Zero(t, objectMillis("no-timestamp.jpg"))
	assert.Zero(t, objectMillis("bad_ts.jpg"))
	assert.Zero(t, objectMillis(""))
}
