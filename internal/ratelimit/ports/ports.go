// Package ports defines the storage interface the rate limiter consumes.
package ports

import (
	"context"
	"time"

	"loanrisk/internal/ratelimit/models"
)

// BucketStore counts requests per key within a window.
type BucketStore interface {
	// Allow checks if a single request is allowed and consumes one slot if so.
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error)
}
