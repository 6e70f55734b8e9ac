package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authledger/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateConfig(requests, window, burst int) *config.Config {
	cfg := &config.Config{}
	cfg.RateLimit.Requests = requests
	cfg.RateLimit.Window = window
	cfg.RateLimit.Burst = burst
	return cfg
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name          string
		config        *config.Config
		expectedCodes []int
		clientIP      string
	}{
		{
			name:          "Under Limit",
			config:        rateConfig(10, 60, 10),
			expectedCodes: []int{200, 200, 200},
			clientIP:      "192.168.1.1",
		},
		{
			name:          "At Burst",
			config:        rateConfig(2, 60, 2),
			expectedCodes: []int{200, 200},
			clientIP:      "192.168.1.2",
		},
		{
			name:          "Exceeds Burst",
			config:        rateConfig(2, 60, 2),
			expectedCodes: []int{200, 200, 429},
			clientIP:      "192.168.1.3",
		},
		{
			name:          "Burst Defaults To Requests",
			config:        rateConfig(1, 60, 0),
			expectedCodes: []int{200, 429},
			clientIP:      "192.168.1.4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := NewRateLimiter(tt.config)

			router := gin.New()
			router.Use(limiter.Middleware())
			router.GET("/test", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			for i, want := range tt.expectedCodes {
				req := httptest.NewRequest(http.MethodGet, "/test", nil)
				req.RemoteAddr = tt.clientIP + ":1234"
				w := httptest.NewRecorder()
				router.ServeHTTP(w, req)

				assert.Equal(t, want, w.Code, "request %d", i+1)
				assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
			}
		})
	}
}

func TestRateLimiter_SeparateClients(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(rateConfig(1, 60, 1))

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, ip := range []string{"10.0.0.1", "10.0.0.2"} {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, ip)
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	require.Equal(t, "60", w.Header().Get("Retry-After"))
	require.JSONEq(t, `{"success":false,"message":"Too many requests, please try again later"}`, w.Body.String())
}

func TestRateLimiter_Evict(t *testing.T) {
	limiter := NewRateLimiter(rateConfig(10, 1, 10))
	now := time.Now()
	limiter.now = func() time.Time { return now }

	for _, ip := range []string{"192.168.1.1", "192.168.1.2", "192.168.1.3"} {
		limiter.getLimiter(ip)
	}
	require.Len(t, limiter.visitors, 3)

	now = now.Add(5 * time.Second)
	limiter.getLimiter("192.168.1.1")

	now = now.Add(6 * time.Second)
	limiter.evict()

	require.Len(t, limiter.visitors, 1)
	require.Contains(t, limiter.visitors, "192.168.1.1")
}
