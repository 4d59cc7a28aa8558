package ratelimiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	limiter, err := NewRateLimiter(10*time.Second, 5)
	require.Nil(t, err)
	for i := 0; i < 5; i++ {
		assert.False(t, limiter.Limit())
	}
	assert.True(t, limiter.Limit())
}

func TestNewRateLimiterWithQuantum(t *testing.T) {
	limiter, err := NewRateLimiterWithQuantum(50*time.Millisecond, 10000, 500)
	require.Nil(t, err)
	assert.False(t, limiter.Limit())
	assert.Equal(t, int64(9999), limiter.Available())

	_, err = NewRateLimiterWithQuantum(0, 1, 1)
	assert.NotNil(t, err)
	_, err = NewRateLimiterWithQuantum(time.Second, 0, 1)
	assert.NotNil(t, err)
	_, err = NewRateLimiterWithQuantum(time.Second, 1, 0)
	assert.NotNil(t, err)
}

func TestHandler(t *testing.T) {
	limiter, err := NewRateLimiter(time.Hour, 2)
	require.Nil(t, err)

	h := limiter.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Header().Get(RemainingHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "0", rec.Header().Get(RemainingHeader))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
