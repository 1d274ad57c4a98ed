package llm

import "strings"

// Upstream failures are classified by inspecting the error text rather than
// structured codes; the SDK surfaces transport, auth, and quota failures with
// recognizable markers but no stable error types across providers.

// IsAuthError reports whether err looks like a credential problem
// (missing, invalid, or unauthorized API key).
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "api key") ||
		strings.Contains(msg, "unauthorized") ||
		strings.Contains(msg, "unauthenticated") ||
		strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "401") ||
		strings.Contains(msg, "403")
}

// IsQuotaError reports whether err looks like provider throttling or an
// exhausted quota, i.e. transient and retryable.
func IsQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource exhausted") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "overloaded") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "503")
}
