package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authledger/internal/api/handlers"
	"authledger/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthHandler_Health(t *testing.T) {
	tests := []struct {
		name       string
		ping       pingFunc
		wantStatus int
	}{
		{
			name:       "Success",
			ping:       func(context.Context) error { return nil },
			wantStatus: http.StatusOK,
		},
		{
			name:       "Error_DatabaseDown",
			ping:       func(context.Context) error { return errors.New("connection refused") },
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := handlers.NewHealthHandler(tt.ping, zap.NewNop())

			router := gin.New()
			router.GET("/health", handler.Health)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantStatus != http.StatusOK {
				errResp := decode[models.ErrorResponse](t, w)
				require.Equal(t, "database connection failed", errResp.Message)
				return
			}

			resp := decode[models.HealthResponse](t, w)
			require.Equal(t, "healthy", resp.Status)
			_, err := time.Parse(time.RFC3339, resp.Time)
			require.NoError(t, err)
		})
	}
}
