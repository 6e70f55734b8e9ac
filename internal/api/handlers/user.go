package handlers

import (
	"errors"
	"net/http"

	"authledger/internal/auth"
	"authledger/internal/models"
	"authledger/internal/repository"
	"authledger/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler handles administrative user endpoints
type UserHandler struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userRepo repository.UserRepository, log *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, log: log}
}

// UpdateStatus godoc
// @Summary Activate or deactivate a user
// @Description Deactivated accounts cannot log in
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body models.UpdateStatusRequest true "New status"
// @Success 200 {object} models.UserResponse
// @Failure 400 {object} models.ErrorResponse "Invalid request"
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Admin access required"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/{id}/status [put]
func (h *UserHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.Fail("Invalid user ID"))
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(validation.Message(err)))
		return
	}

	if current := auth.GetUserFromContext(c); current != nil && current.ID == id && !*req.IsActive {
		c.JSON(http.StatusBadRequest, models.Fail("You cannot deactivate your own account"))
		return
	}

	ctx := c.Request.Context()
	if err := h.userRepo.SetActive(ctx, id, *req.IsActive); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, models.Fail("User not found"))
			return
		}
		h.log.Error("failed to update user status", zap.Error(err), zap.String("user_id", id.String()))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgServerError))
		return
	}

	user, err := h.userRepo.GetByID(ctx, id)
	if err != nil {
		h.log.Error("failed to reload user", zap.Error(err), zap.String("user_id", id.String()))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgServerError))
		return
	}

	h.log.Info("user status changed",
		zap.String("user_id", id.String()),
		zap.Bool("is_active", user.IsActive),
	)
	c.JSON(http.StatusOK, models.UserResponse{Success: true, User: user.PublicProfile()})
}
