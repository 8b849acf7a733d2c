package auth

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var attemptsBucket = []byte("login_attempts")

// Limiter counts failed sign-in attempts per key (username or client IP)
// inside a sliding window, persisted so restarts do not reset an attacker's
// counter.
type Limiter struct {
	db     *bolt.DB
	max    int
	window time.Duration
}

func NewLimiter(path string, max int, window time.Duration) (*Limiter, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "auth: open limiter store")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(attemptsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "auth: init limiter store")
	}
	return &Limiter{db: db, max: max, window: window}, nil
}

func (l *Limiter) Close() error {
	return l.db.Close()
}

func encodeAttempt(count int, since time.Time) []byte {
	return []byte(fmt.Sprintf("%d|%d", count, since.Unix()))
}

func decodeAttempt(v []byte) (count int, since time.Time) {
	parts := strings.SplitN(string(v), "|", 2)
	if len(parts) != 2 {
		return 0, time.Time{}
	}
	count, _ = strconv.Atoi(parts[0])
	sec, _ := strconv.ParseInt(parts[1], 10, 64)
	return count, time.Unix(sec, 0)
}

// Failed records one failed attempt and reports whether the key is now
// rate limited.
func (l *Limiter) Failed(key string) bool {
	limited := false
	_ = l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(attemptsBucket)
		count, since := 0, time.Now()
		if v := b.Get([]byte(key)); v != nil {
			c, s := decodeAttempt(v)
			if time.Since(s) < l.window {
				count, since = c, s
			}
		}
		count++
		limited = count >= l.max
		return b.Put([]byte(key), encodeAttempt(count, since))
	})
	return limited
}

// Limited reports whether the key has exhausted its attempts in the
// current window.
func (l *Limiter) Limited(key string) bool {
	limited := false
	_ = l.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(attemptsBucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		count, since := decodeAttempt(v)
		limited = count >= l.max && time.Since(since) < l.window
		return nil
	})
	return limited
}

// Reset clears the counter after a successful sign-in.
func (l *Limiter) Reset(key string) {
	_ = l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(attemptsBucket).Delete([]byte(key))
	})
}
