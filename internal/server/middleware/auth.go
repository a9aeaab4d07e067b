package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	tokens "github.com/aminedz/microimport/internal/auth"
	"github.com/aminedz/microimport/internal/domain/models"
	"github.com/aminedz/microimport/internal/repository/mongodb"
)

const userContextKey = "currentUser"

// Auth guards routes behind a valid session token. The token is read from
// the session cookie first, then from the Authorization header, matching how
// the browser client and API clients authenticate respectively.
type Auth struct {
	tokens *tokens.TokenManager
	users  *mongodb.UserRepository
	logger *zap.Logger
}

// NewAuth wires the auth middleware.
func NewAuth(tokenManager *tokens.TokenManager, users *mongodb.UserRepository, logger *zap.Logger) *Auth {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auth{tokens: tokenManager, users: users, logger: logger}
}

// Handler returns the gin middleware function.
func (a *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "missing session token"})
			return
		}

		claims, err := a.tokens.Validate(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		user, err := a.users.FindByID(c.Request.Context(), userID)
		if err != nil {
			a.logger.Warn("token references unknown user", zap.String("user_id", claims.UserID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid or expired token"})
			return
		}

		if !user.Active {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "account disabled"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")
	if token := strings.TrimPrefix(header, "Bearer "); token != header {
		return token
	}
	return ""
}

// CurrentUser returns the authenticated user stored by the middleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// SetCurrentUser injects a user into the request context. Exposed for
// handler tests that bypass the middleware.
func SetCurrentUser(c *gin.Context, user *models.User) {
	c.Set(userContextKey, user)
}
