package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"authledger/internal/api/middleware"
	"authledger/internal/auth"
	"authledger/internal/ledger"
	"authledger/internal/models"
	"authledger/internal/repository"
	"authledger/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Messages returned by the authentication endpoints
const (
	MsgRegistered         = "Registration successful"
	MsgLoggedIn           = "Login successful"
	MsgLoggedOut          = "User logged out successfully"
	MsgUserExists         = "User already exists with this email address"
	MsgRegisterError      = "Server error during registration"
	MsgMissingCredentials = "Please provide email and password"
	MsgInvalidCredentials = "Invalid email or password"
	MsgAccountDeactivated = "Account is deactivated. Please contact support."
	MsgLoginError         = "Server error during login"
	MsgServerError        = "Server error"
)

// AuthHandler handles registration, login and session endpoints
type AuthHandler struct {
	userRepo     repository.UserRepository
	roleRepo     repository.RoleRepository
	authService  *auth.Service
	ledger       *ledger.Ledger
	geo          ledger.GeoLocator
	cookieSecure bool
	log          *zap.Logger
}

// NewAuthHandler creates a new authentication handler with the given dependencies
func NewAuthHandler(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	authService *auth.Service,
	l *ledger.Ledger,
	geo ledger.GeoLocator,
	cookieSecure bool,
	log *zap.Logger,
) *AuthHandler {
	if geo == nil {
		geo = ledger.NoopGeo{}
	}
	return &AuthHandler{
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		authService:  authService,
		ledger:       l,
		geo:          geo,
		cookieSecure: cookieSecure,
		log:          log,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account and start a session. The first account created gets the admin role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.RegisterRequest true "Registration details"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse "Validation failed or email already registered"
// @Failure 429 {object} models.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.Fail(validation.Message(err)))
		return
	}

	ctx := c.Request.Context()

	// The first account bootstraps the administrator
	existing, err := h.userRepo.Count(ctx)
	if err != nil {
		h.log.Error("failed to count users", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgRegisterError))
		return
	}
	roleName := models.RoleUser
	if existing == 0 {
		roleName = models.RoleAdmin
	}

	role, err := h.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		h.log.Error("failed to load role", zap.Error(err), zap.String("role", roleName))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgRegisterError))
		return
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		h.log.Error("failed to hash password", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgRegisterError))
		return
	}

	user := &models.User{
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       req.Email,
		Password:    hash,
		DateOfBirth: *req.DateOfBirth,
		Gender:      strings.TrimSpace(req.Gender),
		RoleID:      role.ID,
		Role:        role,
		IsActive:    true,
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, models.Fail(MsgUserExists))
			return
		}
		h.log.Error("failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgRegisterError))
		return
	}

	token, expiresAt, err := h.authService.GenerateToken(user)
	if err != nil {
		h.log.Error("failed to generate token", zap.Error(err), zap.String("user_id", user.ID.String()))
		c.JSON(http.StatusInternalServerError, models.Fail(MsgRegisterError))
		return
	}

	h.sendToken(c, http.StatusCreated, user, token, expiresAt, MsgRegistered)
}

// Login godoc
// @Summary User login
// @Description Verify credentials and start a session. Every call is recorded in the login-attempt ledger.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse "Missing email or password"
// @Failure 401 {object} models.ErrorResponse "Invalid credentials or deactivated account"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	attempt := ledger.Attempt{
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	attempt.Country = h.geo.Country(c.Request, attempt.IPAddress)

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A malformed body is audited like one with no credentials
		req = models.LoginRequest{}
	}
	attempt.Email = strings.TrimSpace(req.Email)
	attempt.Password = req.Password

	if attempt.Email == "" || req.Password == "" {
		attempt.Outcome = ledger.OutcomeUserNotFound
		h.ledger.Record(ctx, attempt)
		c.JSON(http.StatusBadRequest, models.Fail(MsgMissingCredentials))
		return
	}

	user, err := h.userRepo.GetByEmailWithPassword(ctx, attempt.Email)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		h.log.Error("failed to look up user for login", zap.Error(err))
		h.recordSystemError(c, attempt)
		return
	}
	if err != nil {
		user = nil
	}

	attempt.Outcome = ledger.Classify(user, func(hash string) bool {
		return h.authService.ComparePasswords(hash, req.Password) == nil
	})
	if user != nil {
		attempt.UserID = &user.ID
	}

	switch attempt.Outcome {
	case ledger.OutcomeUserNotFound, ledger.OutcomeWrongPassword:
		h.ledger.Record(ctx, attempt)
		c.JSON(http.StatusUnauthorized, models.Fail(MsgInvalidCredentials))
		return
	case ledger.OutcomeAccountDeactivated:
		h.ledger.Record(ctx, attempt)
		c.JSON(http.StatusUnauthorized, models.Fail(MsgAccountDeactivated))
		return
	}

	token, expiresAt, err := h.authService.GenerateToken(user)
	if err != nil {
		h.log.Error("failed to generate token", zap.Error(err), zap.String("user_id", user.ID.String()))
		h.recordSystemError(c, attempt)
		return
	}

	h.ledger.Record(ctx, attempt)

	now := time.Now().UTC()
	if err := h.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		h.log.Warn("failed to update last login", zap.Error(err), zap.String("user_id", user.ID.String()))
	} else {
		user.LastLoginAt = &now
	}

	h.sendToken(c, http.StatusOK, user, token, expiresAt, MsgLoggedIn)
}

// recordSystemError audits an unexpected login failure and responds 500
func (h *AuthHandler) recordSystemError(c *gin.Context, attempt ledger.Attempt) {
	if attempt.Email == "" {
		attempt.Email = models.SentinelSystemError
	}
	attempt.UserID = nil
	attempt.Outcome = ledger.OutcomeUserNotFound
	h.ledger.Record(c.Request.Context(), attempt)
	c.JSON(http.StatusInternalServerError, models.Fail(MsgLoginError))
}

// Me godoc
// @Summary Current user
// @Description Return the profile of the authenticated user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.UserResponse
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user := auth.GetUserFromContext(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, models.Fail(middleware.MsgNotAuthorized))
		return
	}

	c.JSON(http.StatusOK, models.UserResponse{
		Success: true,
		User:    user.PublicProfile(),
	})
}

// Logout godoc
// @Summary Logout
// @Description Expire the session cookie. Issued tokens remain valid until they expire.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SuccessResponse
// @Failure 401 {object} models.ErrorResponse "Not authenticated"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, "none", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, models.OK(MsgLoggedOut))
}

func (h *AuthHandler) sendToken(c *gin.Context, status int, user *models.User, token string, expiresAt time.Time, message string) {
	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.TokenCookie, token, maxAge, "/", "", h.cookieSecure, true)

	c.JSON(status, models.AuthResponse{
		Success: true,
		Token:   token,
		User:    user.PublicProfile(),
		Message: message,
	})
}
