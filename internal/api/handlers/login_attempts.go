package handlers

import (
	"net/http"

	"authledger/internal/ledger"
	"authledger/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginAttemptHandler serves the read side of the login-attempt ledger
type LoginAttemptHandler struct {
	ledger *ledger.Ledger
	log    *zap.Logger
}

// NewLoginAttemptHandler creates a new ledger read handler
func NewLoginAttemptHandler(l *ledger.Ledger, log *zap.Logger) *LoginAttemptHandler {
	return &LoginAttemptHandler{ledger: l, log: log}
}

// All godoc
// @Summary List login attempts
// @Description Most recent 1000 attempts, newest first
// @Tags login-attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LoginAttemptsResponse
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Admin access required"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login-attempts/all [get]
func (h *LoginAttemptHandler) All(c *gin.Context) {
	attempts, err := h.ledger.ListAll(c.Request.Context())
	h.respond(c, "all", attempts, err)
}

// ByEmail godoc
// @Summary List login attempts for an email
// @Description Most recent 100 attempts for the given email, newest first
// @Tags login-attempts
// @Produce json
// @Security BearerAuth
// @Param email path string true "Attempted email"
// @Success 200 {object} models.LoginAttemptsResponse
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Admin access required"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login-attempts/by-email/{email} [get]
func (h *LoginAttemptHandler) ByEmail(c *gin.Context) {
	attempts, err := h.ledger.ListByEmail(c.Request.Context(), c.Param("email"))
	h.respond(c, "by-email", attempts, err)
}

// Failed godoc
// @Summary List failed login attempts
// @Description Most recent 500 failed attempts, newest first
// @Tags login-attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LoginAttemptsResponse
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Admin access required"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login-attempts/failed [get]
func (h *LoginAttemptHandler) Failed(c *gin.Context) {
	attempts, err := h.ledger.ListFailed(c.Request.Context())
	h.respond(c, "failed", attempts, err)
}

// Stats godoc
// @Summary Login attempt statistics
// @Tags login-attempts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LoginStatsResponse
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Failure 403 {object} models.ErrorResponse "Admin access required"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /login-attempts/stats [get]
func (h *LoginAttemptHandler) Stats(c *gin.Context) {
	stats, err := h.ledger.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("failed to compute login attempt stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgServerError))
		return
	}

	c.JSON(http.StatusOK, models.LoginStatsResponse{Success: true, Stats: stats})
}

func (h *LoginAttemptHandler) respond(c *gin.Context, view string, attempts []models.LoginAttempt, err error) {
	if err != nil {
		h.log.Error("failed to list login attempts", zap.Error(err), zap.String("view", view))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgServerError))
		return
	}
	if attempts == nil {
		attempts = []models.LoginAttempt{}
	}

	c.JSON(http.StatusOK, models.LoginAttemptsResponse{
		Success:  true,
		Count:    len(attempts),
		Attempts: attempts,
	})
}
