package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, max int, window time.Duration) *Limiter {
	t.Helper()
	l, err := NewLimiter(filepath.Join(t.TempDir(), "limits.db"), max, window)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestLimiterBlocksAfterMaxFailures(t *testing.T) {
	l := newTestLimiter(t, 3, time.Minute)

	assert.False(t, l.Limited("ana|127.0.0.1"))
	assert.False(t, l.Failed("ana|127.0.0.1"))
	assert.False(t, l.Failed("ana|127.0.0.1"))
	assert.True(t, l.Failed("ana|127.0.0.1"))
	assert.True(t, l.Limited("ana|127.0.0.1"))

	// other keys are unaffected
	assert.False(t, l.Limited("bob|127.0.0.1"))
}

func TestLimiterResetClearsCounter(t *testing.T) {
	l := newTestLimiter(t, 2, time.Minute)

	l.Failed("ana")
	assert.True(t, l.Failed("ana"))
	assert.True(t, l.Limited("ana"))

	l.Reset("ana")
	assert.False(t, l.Limited("ana"))
	assert.False(t, l.Failed("ana"))
}

func TestLimiterWindowExpiry(t *testing.T) {
	l := newTestLimiter(t, 2, 10*time.Millisecond)

	l.Failed("ana")
	assert.True(t, l.Failed("ana"))
	assert.True(t, l.Limited("ana"))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, l.Limited("ana"))
	// a stale counter restarts from one
	assert.False(t, l.Failed("ana"))
}

func TestAttemptCodec(t *testing.T) {
	since := time.Unix(1700000000, 0)
	count, got := decodeAttempt(encodeAttempt(4, since))
	assert.Equal(t, 4, count)
	assert.Equal(t, since.Unix(), got.Unix())

	count, _ = decodeAttempt([]byte("garbage"))
	assert.Zero(t, count)
}
