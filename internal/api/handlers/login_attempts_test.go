package handlers_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"authledger/internal/api/handlers"
	"authledger/internal/models"
	"authledger/internal/repository"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestLoginAttemptHandler_Lists(t *testing.T) {
	email := "a@x.com"
	failed := models.FailureWrongPassword
	sample := []models.LoginAttempt{
		{ID: uuid.New(), Email: email, IPAddress: "1.1.1.1", Success: false, FailureReason: &failed, CreatedAt: time.Now()},
		{ID: uuid.New(), Email: email, IPAddress: "1.1.1.1", Success: true, CreatedAt: time.Now().Add(-time.Minute)},
	}

	tests := []struct {
		name   string
		path   string
		filter repository.LoginAttemptFilter
	}{
		{name: "All", path: "/login-attempts/all", filter: repository.LoginAttemptFilter{Limit: repository.MaxListAll}},
		{name: "Failed", path: "/login-attempts/failed", filter: repository.LoginAttemptFilter{FailedOnly: true, Limit: repository.MaxListFailed}},
		{name: "By Email", path: "/login-attempts/by-email/A@X.com", filter: repository.LoginAttemptFilter{Email: &email, Limit: repository.MaxListByEmail}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			admin := newAccount(adminRole, true)
			f.attempts.EXPECT().List(gomock.Any(), tt.filter).Return(sample, nil)

			w := f.do(http.MethodGet, tt.path, nil, f.bearer(t, admin))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := decode[models.LoginAttemptsResponse](t, w)
			require.True(t, resp.Success)
			require.Equal(t, 2, resp.Count)
			require.Len(t, resp.Attempts, 2)
			require.Equal(t, sample[0].ID, resp.Attempts[0].ID)
			require.NotContains(t, w.Body.String(), `"password"`)
		})
	}
}

func TestLoginAttemptHandler_EmptyList(t *testing.T) {
	f := newFixture(t)
	admin := newAccount(adminRole, true)
	f.attempts.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)

	w := f.do(http.MethodGet, "/login-attempts/all", nil, f.bearer(t, admin))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"success":true,"count":0,"attempts":[]}`, w.Body.String())
}

func TestLoginAttemptHandler_Errors(t *testing.T) {
	f := newFixture(t)
	admin := newAccount(adminRole, true)
	f.attempts.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	w := f.do(http.MethodGet, "/login-attempts/failed", nil, f.bearer(t, admin))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, handlers.MsgServerError, decode[models.ErrorResponse](t, w).Message)

	f.attempts.EXPECT().Counts(gomock.Any(), gomock.Any()).Return(models.LoginAttemptCounts{}, errors.New("db down"))
	w = f.do(http.MethodGet, "/login-attempts/stats", nil, f.bearer(t, admin))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoginAttemptHandler_Stats(t *testing.T) {
	f := newFixture(t)
	admin := newAccount(adminRole, true)
	f.attempts.EXPECT().Counts(gomock.Any(), gomock.Any()).
		Return(models.LoginAttemptCounts{Total: 8, Successful: 1, Failed: 7, Today: 3, UniqueIPs: 2, UniqueEmails: 4}, nil)

	w := f.do(http.MethodGet, "/login-attempts/stats", nil, f.bearer(t, admin))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{
		"success": true,
		"stats": {
			"totalAttempts": 8,
			"successfulAttempts": 1,
			"failedAttempts": 7,
			"successRate": 12.5,
			"todayAttempts": 3,
			"uniqueIPs": 2,
			"uniqueEmails": 4
		}
	}`, w.Body.String())
}

func TestLoginAttemptHandler_RequiresAdmin(t *testing.T) {
	f := newFixture(t)
	regular := newAccount(userRole, true)

	w := f.do(http.MethodGet, "/login-attempts/all", nil, f.bearer(t, regular))
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.do(http.MethodGet, "/login-attempts/stats", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
