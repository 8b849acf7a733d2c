package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLegacyError(t *testing.T) {
	tests := []struct {
		message string
		want    FailureKind
	}{
		{"Invalid login credentials", FailureInvalidCredentials},
		{"error: Invalid login credentials (400)", FailureInvalidCredentials},
		{"Too many requests", FailureRateLimited},
		{"User not found", FailureUserNotFound},
		{"network error while contacting server", FailureNetwork},
		{"failed to fetch", FailureNetwork},
		{"something else entirely", FailureUnknown},
		{"", FailureUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyLegacyError(tt.message), "message=%q", tt.message)
	}
}

func TestPublicKindHidesAccountExistence(t *testing.T) {
	assert.Equal(t, FailureInvalidCredentials, PublicKind(FailureUserNotFound))
	assert.Equal(t, FailureInvalidCredentials, PublicKind(FailureInvalidCredentials))
	assert.Equal(t, FailureRateLimited, PublicKind(FailureRateLimited))
	assert.Equal(t, FailureNetwork, PublicKind(FailureNetwork))
}

func TestMessageCoversAllKinds(t *testing.T) {
	// user-not-found must read identically to bad credentials
	assert.Equal(t, Message(FailureInvalidCredentials), Message(FailureUserNotFound))
	for _, kind := range []FailureKind{
		FailureInvalidCredentials, FailureRateLimited, FailureNetwork, FailureUnknown,
	} {
		assert.NotEmpty(t, Message(kind))
	}
}
