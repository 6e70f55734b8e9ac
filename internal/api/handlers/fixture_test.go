package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"authledger/internal/api/handlers"
	"authledger/internal/api/middleware"
	"authledger/internal/auth"
	"authledger/internal/ledger"
	"authledger/internal/mocks"
	"authledger/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var userRole = &models.Role{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: models.RoleUser}
var adminRole = &models.Role{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: models.RoleAdmin, IsAdminGroup: true}

// fixture wires the handlers over gomock repositories and a real ledger
// whose writes are captured in recorded.
type fixture struct {
	router      *gin.Engine
	users       *mocks.MockUserRepository
	roles       *mocks.MockRoleRepository
	attempts    *mocks.MockLoginAttemptRepository
	authService *auth.Service
	ledger      *ledger.Ledger

	mu         sync.Mutex
	recorded   []*models.LoginAttempt
	failWrites bool
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		users:       mocks.NewMockUserRepository(ctrl),
		roles:       mocks.NewMockRoleRepository(ctrl),
		attempts:    mocks.NewMockLoginAttemptRepository(ctrl),
		authService: auth.NewService(auth.Config{Secret: "test_secret", ExpiresIn: time.Hour}),
	}
	f.attempts.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *models.LoginAttempt) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.recorded = append(f.recorded, a)
			if f.failWrites {
				return errors.New("ledger unavailable")
			}
			return nil
		}).AnyTimes()

	log := zap.NewNop()
	f.ledger = ledger.New(f.attempts, auth.NewFingerprinter("fp"), log)
	authMW := middleware.NewAuthMiddleware(f.authService, f.users, log)
	authHandler := handlers.NewAuthHandler(f.users, f.roles, f.authService, f.ledger, ledger.NewHeaderGeo(), false, log)
	attemptHandler := handlers.NewLoginAttemptHandler(f.ledger, log)
	userHandler := handlers.NewUserHandler(f.users, log)

	r := gin.New()
	a := r.Group("/auth")
	a.POST("/register", authHandler.Register)
	a.POST("/login", authHandler.Login)
	a.GET("/me", authMW.AuthRequired(), authHandler.Me)
	a.POST("/logout", authMW.AuthRequired(), authHandler.Logout)

	admin := r.Group("", authMW.AuthRequired(), authMW.AdminRequired())
	admin.GET("/login-attempts/all", attemptHandler.All)
	admin.GET("/login-attempts/failed", attemptHandler.Failed)
	admin.GET("/login-attempts/by-email/:email", attemptHandler.ByEmail)
	admin.GET("/login-attempts/stats", attemptHandler.Stats)
	admin.PUT("/users/:id/status", userHandler.UpdateStatus)

	f.router = r
	return f
}

func (f *fixture) do(method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		_ = json.NewEncoder(&buf).Encode(b)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// bearer signs a token for u and expects the middleware to load u
func (f *fixture) bearer(t *testing.T, u *models.User) http.Header {
	t.Helper()
	tok, _, err := f.authService.GenerateToken(u)
	require.NoError(t, err)
	f.users.EXPECT().GetByID(gomock.Any(), u.ID).Return(u, nil)
	return http.Header{"Authorization": []string{"Bearer " + tok}}
}

func (f *fixture) entries() []*models.LoginAttempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.LoginAttempt(nil), f.recorded...)
}

func (f *fixture) hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := f.authService.HashPassword(password)
	require.NoError(t, err)
	return h
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func newAccount(role *models.Role, active bool) *models.User {
	return &models.User{
		ID:        uuid.New(),
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		RoleID:    role.ID,
		Role:      role,
		IsActive:  active,
	}
}
