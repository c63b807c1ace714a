package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewKey(t *testing.T) {
	assert.Equal(t, "rl:ip:203.0.113.7", NewKey(KeyPrefixIP, "203.0.113.7"))
	assert.Equal(t, "rl:ip:2001_db8__1", NewKey(KeyPrefixIP, "2001:db8::1"))
}

func TestRetryAfterSeconds(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		resetAt time.Time
		want    int
	}{
		{name: "whole seconds", resetAt: now.Add(30 * time.Second), want: 30},
		{name: "rounds up", resetAt: now.Add(1500 * time.Millisecond), want: 2},
		{name: "already reset", resetAt: now.Add(-time.Second), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RetryAfterSeconds(now, tt.resetAt))
		})
	}
}
