// Package models holds the rate limiting value types.
package models

import (
	"time"
)

// KeyPrefix namespaces counters by what is being limited.
type KeyPrefix string

const (
	KeyPrefixIP KeyPrefix = "ip"
)

// Result represents the outcome of a rate limit check.
type Result struct {
	Allowed    bool      `json:"allowed"`
	Limit      int       `json:"limit"`
	Remaining  int       `json:"remaining"`
	ResetAt    time.Time `json:"reset_at"`
	RetryAfter int       `json:"retry_after,omitempty"` // seconds, only set when not allowed
}

// Decision is a Result plus whether it came from the fallback store.
type Decision struct {
	*Result
	Degraded bool
}

// ExceededResponse is the API response when the limit is exceeded.
type ExceededResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	RetryAfter       int    `json:"retry_after"`
}

// NewKey builds the counter key for identifier under prefix.
func NewKey(prefix KeyPrefix, identifier string) string {
	return "rl:" + string(prefix) + ":" + SanitizeKeySegment(identifier)
}

// RetryAfterSeconds rounds the time until resetAt up to whole seconds, with
// a floor of one.
func RetryAfterSeconds(now, resetAt time.Time) int {
	d := resetAt.Sub(now)
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	if secs < 1 {
		return 1
	}
	return secs
}
