package middleware

import (
	"net/http"

	"project-manager/internal/models"
	"project-manager/internal/service"
	"project-manager/internal/util"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// AuthRequired resolves the session cookie to a user and stores it in the
// request context. A missing or malformed cookie reads as "no session"
// and is rejected the same way as a revoked token.
func AuthRequired(users *service.UserService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Authentification requise.")
			c.Abort()
			return
		}

		user, err := users.CurrentUser(token)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Session expirée, veuillez vous reconnecter.")
			c.Abort()
			return
		}

		c.Set(currentUserKey, &user)
		c.Next()
	}
}

// CurrentUser returns the user placed in the context by AuthRequired.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
