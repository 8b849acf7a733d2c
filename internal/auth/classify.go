package auth

import "strings"

// FailureKind tags a sign-in failure so the UI can show a distinct message
// without sniffing error strings.
type FailureKind string

const (
	FailureInvalidCredentials FailureKind = "INVALID_CREDENTIALS"
	FailureRateLimited        FailureKind = "RATE_LIMITED"
	FailureUserNotFound       FailureKind = "USER_NOT_FOUND"
	FailureNetwork            FailureKind = "NETWORK"
	FailureUnknown            FailureKind = "UNKNOWN"
)

// ClassifyLegacyError maps error text produced by the hosted auth provider
// this service replaced onto the tagged failure kinds, so clients written
// against the old messages keep working.
func ClassifyLegacyError(message string) FailureKind {
	switch {
	case strings.Contains(message, "Invalid login credentials"):
		return FailureInvalidCredentials
	case strings.Contains(message, "Too many requests"):
		return FailureRateLimited
	case strings.Contains(message, "User not found"):
		return FailureUserNotFound
	case strings.Contains(message, "network"), strings.Contains(message, "fetch"):
		return FailureNetwork
	default:
		return FailureUnknown
	}
}

// PublicKind folds kinds that would leak account existence into the generic
// invalid-credentials answer. Audit logs keep the precise kind.
func PublicKind(kind FailureKind) FailureKind {
	if kind == FailureUserNotFound {
		return FailureInvalidCredentials
	}
	return kind
}

// Message returns the user-facing text for a failure kind.
func Message(kind FailureKind) string {
	switch kind {
	case FailureInvalidCredentials, FailureUserNotFound:
		return "Email sau parola incorecte. Va rugam sa incercati din nou."
	case FailureRateLimited:
		return "Prea multe incercari. Va rugam sa asteptati cateva minute."
	case FailureNetwork:
		return "Eroare de retea. Verificati conexiunea si incercati din nou."
	default:
		return "A aparut o eroare la autentificare."
	}
}
