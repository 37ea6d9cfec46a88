package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// Rate defines the rate limit configuration
type Rate struct {
	// Name scopes the counters, so limits applied to the same client do
	// not share a window
	Name string
	// Requests is the number of requests allowed in the window
	Requests int
	// Window is the time window for the rate limit
	Window time.Duration
}

// Scope returns the counter namespace of the rate.
func (r Rate) Scope() string {
	if r.Name != "" {
		return r.Name
	}
	return fmt.Sprintf("%d-%s", r.Requests, r.Window)
}

// RateLimitInfo contains information about the current rate limit status
type RateLimitInfo struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// RateLimiter defines the interface for rate limiting implementations
type RateLimiter interface {
	// Allow checks if a request is allowed and returns rate limit info
	Allow(ctx context.Context, key string, limit Rate) (bool, RateLimitInfo)
	// Reset resets the rate limit for a key
	Reset(ctx context.Context, key string) error
}

var (
	// PublicAPILimit applies to every request by client IP.
	PublicAPILimit = Rate{
		Name:     "public",
		Requests: 120,
		Window:   time.Minute,
	}

	// AuthenticatedAPILimit applies per user once authenticated.
	AuthenticatedAPILimit = Rate{
		Name:     "authenticated",
		Requests: 60,
		Window:   time.Minute,
	}

	// AuthLimit guards register, login and token refresh.
	AuthLimit = Rate{
		Name:     "auth",
		Requests: 10,
		Window:   time.Minute,
	}

	// UploadLimit guards endpoints that accept media files.
	UploadLimit = Rate{
		Name:     "upload",
		Requests: 10,
		Window:   time.Hour,
	}
)
