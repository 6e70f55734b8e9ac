package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"authledger/internal/models"
	"authledger/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_UpdateStatus(t *testing.T) {
	target := newAccount(userRole, true)

	tests := []struct {
		name       string
		id         string
		body       interface{}
		setup      func(f *fixture, admin *models.User)
		wantStatus int
		wantMsg    string
	}{
		{
			name: "Deactivate",
			id:   target.ID.String(),
			body: gin.H{"isActive": false},
			setup: func(f *fixture, admin *models.User) {
				f.users.EXPECT().SetActive(gomock.Any(), target.ID, false).Return(nil)
				inactive := *target
				inactive.IsActive = false
				f.users.EXPECT().GetByID(gomock.Any(), target.ID).Return(&inactive, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "Invalid ID",
			id:         "not-a-uuid",
			body:       gin.H{"isActive": false},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Invalid user ID",
		},
		{
			name:       "Missing Field",
			id:         target.ID.String(),
			body:       gin.H{},
			wantStatus: http.StatusBadRequest,
			wantMsg:    "Please provide all required fields",
		},
		{
			name: "Unknown User",
			id:   uuid.NewString(),
			body: gin.H{"isActive": true},
			setup: func(f *fixture, admin *models.User) {
				f.users.EXPECT().SetActive(gomock.Any(), gomock.Any(), true).Return(repository.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantMsg:    "User not found",
		},
		{
			name: "Storage Error",
			id:   target.ID.String(),
			body: gin.H{"isActive": true},
			setup: func(f *fixture, admin *models.User) {
				f.users.EXPECT().SetActive(gomock.Any(), target.ID, true).Return(errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "Server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			admin := newAccount(adminRole, true)
			if tt.setup != nil {
				tt.setup(f, admin)
			}

			w := f.do(http.MethodPut, "/users/"+tt.id+"/status", tt.body, f.bearer(t, admin))
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantMsg != "" {
				require.Equal(t, tt.wantMsg, decode[models.ErrorResponse](t, w).Message)
				return
			}
			resp := decode[models.UserResponse](t, w)
			require.True(t, resp.Success)
			require.False(t, resp.User.IsActive)
		})
	}
}

func TestUserHandler_CannotDeactivateSelf(t *testing.T) {
	f := newFixture(t)
	admin := newAccount(adminRole, true)

	w := f.do(http.MethodPut, "/users/"+admin.ID.String()+"/status", gin.H{"isActive": false}, f.bearer(t, admin))
	require.Equal(t, http.StatusBadRequest, w.Code)
}
