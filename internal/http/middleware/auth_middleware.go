package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// Context keys set by the middlewares in this package.
const (
	UserKey = "user"
	TeamKey = "team"
)

// Protect creates the authentication middleware. The credential comes from
// the Authorization header or, for browser clients, the jwt cookie. A token
// issued before the user's last password change is rejected as stale.
func Protect(tokenSvc domain.TokenService, userRepo domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortErr(c, domain.Unauthenticated("you are not logged in, please log in to get access"))
			return
		}

		claims, err := tokenSvc.Verify(token, domain.PurposeAccess)
		if err != nil {
			abortErr(c, err)
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.Subject)
		if err != nil {
			abortErr(c, domain.Unauthenticated("the user belonging to this token no longer exists"))
			return
		}
		if user.PasswordChangedAt != nil && claims.IssuedAt < user.PasswordChangedAt.Unix() {
			abortErr(c, domain.Unauthenticated("password was recently changed, please log in again"))
			return
		}

		c.Set(UserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Protect.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(UserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// extractToken prefers the Authorization header over the jwt cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := c.Cookie("jwt"); err == nil {
		return cookie
	}
	return ""
}

// abortErr writes the error envelope and stops the chain. Non-operational
// errors are masked.
func abortErr(c *gin.Context, err error) {
	if opErr, ok := domain.AsError(err); ok {
		c.AbortWithStatusJSON(opErr.Code, gin.H{"status": opErr.Status(), "message": opErr.Message})
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "something went very wrong"})
}
