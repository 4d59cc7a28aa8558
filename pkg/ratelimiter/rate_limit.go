package ratelimiter

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/juju/ratelimit"
)

const (
	OnceTakeCount = 1
	OncePutCount  = 1
)

type RateLimiter struct {
	bucket *ratelimit.Bucket
}

// NewRateLimiter returns a limiter backed by a token bucket that fills at the
// rate of one token every fillInterval, up to capacity. The bucket starts
// full.
func NewRateLimiter(fillInterval time.Duration, capacity int64) (*RateLimiter, error) {
	return NewRateLimiterWithQuantum(fillInterval, capacity, OncePutCount)
}

// NewRateLimiterWithQuantum adds quantum tokens every fillInterval.
func NewRateLimiterWithQuantum(fillInterval time.Duration, capacity, quantum int64) (*RateLimiter, error) {
	if fillInterval <= 0 {
		return nil, fmt.Errorf("invalid interval value to init rate_limit")
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("invalid capacity value to init rate_limit")
	}
	if quantum <= 0 {
		return nil, fmt.Errorf("invalid quantum value to init rate_limit")
	}

	return &RateLimiter{bucket: ratelimit.NewBucketWithQuantum(fillInterval, capacity, quantum)}, nil
}

// Limit takes a token and reports whether none was available.
func (l *RateLimiter) Limit() bool {
	return l.bucket.TakeAvailable(OnceTakeCount) == 0
}

func (l *RateLimiter) Available() int64 {
	return l.bucket.Available()
}

const RemainingHeader = "X-RateLimit-Remaining"

// Handler rejects requests with 429 once the bucket is empty. Admitted
// requests carry the tokens left in RemainingHeader.
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if l.Limit() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		w.Header().Set(RemainingHeader, strconv.FormatInt(l.Available(), 10))
		next.ServeHTTP(w, r)
	})
}
