package middleware

import (
	"errors"
	"net/http"
	"strings"

	"authledger/internal/auth"
	"authledger/internal/models"
	"authledger/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenCookie is the name of the session cookie
const TokenCookie = "token"

// Messages returned by the auth middleware
const (
	MsgNotAuthorized   = "Not authorized to access this route"
	MsgInvalidToken    = "Invalid or expired token"
	MsgUserNotFound    = "User not found"
	MsgAccountInactive = "Account is deactivated. Please contact support."
	MsgAdminRequired   = "Admin access required"
)

// AuthMiddleware authenticates requests with session tokens
type AuthMiddleware struct {
	authService *auth.Service
	userRepo    repository.UserRepository
	log         *zap.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(authService *auth.Service, userRepo repository.UserRepository, log *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
		log:         log,
	}
}

// tokenFromRequest prefers a Bearer Authorization header over the cookie.
// Other schemes are ignored.
func tokenFromRequest(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		if token := strings.TrimSpace(parts[1]); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie != "none" {
		return cookie
	}
	return ""
}

// AuthRequired loads the active user behind the request token into the context
func (m *AuthMiddleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail(MsgNotAuthorized))
			return
		}

		claims, err := m.authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail(MsgInvalidToken))
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail(MsgInvalidToken))
			return
		}

		user, err := m.userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail(MsgUserNotFound))
				return
			}
			m.log.Error("failed to load authenticated user", zap.Error(err), zap.String("user_id", userID.String()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.Fail("Server error"))
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail(MsgAccountInactive))
			return
		}

		c.Set(auth.ContextUserKey, user)
		c.Next()
	}
}

// AdminRequired must run after AuthRequired
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.GetUserFromContext(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail(MsgNotAuthorized))
			return
		}
		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, models.Fail(MsgAdminRequired))
			return
		}
		c.Next()
	}
}
