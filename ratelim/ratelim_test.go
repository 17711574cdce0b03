package ratelim

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func okHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	w.WriteHeader(http.StatusOK)
}

func TestLimitAllowsWithinBurst(t *testing.T) {
	rl := &RateLimiter{visitors: make(map[string]*visitor), rps: rate.Limit(1), burst: 2}
	limited := rl.Limit(okHandler)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		limited(rec, req, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestLimitRejectsBeyondBurst(t *testing.T) {
	rl := &RateLimiter{visitors: make(map[string]*visitor), rps: rate.Limit(1), burst: 1}
	limited := rl.Limit(okHandler)

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	limited(first, req, nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	limited(second, req, nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "Too many requests")
}

func TestLimitTracksIPsIndependently(t *testing.T) {
	rl := &RateLimiter{visitors: make(map[string]*visitor), rps: rate.Limit(1), burst: 1}
	limited := rl.Limit(okHandler)

	reqA := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	reqA.RemoteAddr = "10.0.0.3:5000"
	reqB := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
	reqB.RemoteAddr = "10.0.0.4:5000"

	recA := httptest.NewRecorder()
	limited(recA, reqA, nil)
	recB := httptest.NewRecorder()
	limited(recB, reqB, nil)

	assert.Equal(t, http.StatusOK, recA.Code)
	assert.Equal(t, http.StatusOK, recB.Code)
}
