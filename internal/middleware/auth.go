package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/apierror"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/model"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/repository"
	"github.com/AniruddhAgrahari/sweet-shop-management-system/internal/token"
)

const (
	UserKey = "current_user"
)

// Auth validates the Bearer token on every protected route and resolves the
// token subject back to a stored identity. Resolving on every request (rather
// than trusting the role claim alone) keeps the guard honest when a user
// record changes between token issuance and use.
func Auth(tokens *token.Service, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		user, err := users.FindByUsername(c.Request.Context(), claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Could not validate credentials"))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// RequireAdmin rejects requests whose resolved identity is not an admin.
// Must be mounted after Auth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil || user.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("The user doesn't have enough privileges"))
			return
		}
		c.Next()
	}
}

// GetUser retrieves the identity resolved by Auth, or nil when the request
// never passed through it.
func GetUser(c *gin.Context) *model.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*model.User)
	return user
}
