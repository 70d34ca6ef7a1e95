package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todo-api/internal/domain"
)

const (
	// AuthHeader transporta el token en ambos sentidos.
	AuthHeader = "x-auth"

	authUserKey  = "auth_user"
	authTokenKey = "auth_token"
)

// Authenticator resuelve un token al usuario que lo emitio.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.User, error)
}

// AuthMiddleware corta con 401 si el header falta o el token no verifica.
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(c.GetHeader(AuthHeader))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(authUserKey, user)
		c.Set(authTokenKey, token)
		c.Next()
	}
}

// GetAuthUser obtiene el usuario autenticado desde el contexto.
func GetAuthUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(authUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

func GetAuthToken(c *gin.Context) string {
	return c.GetString(authTokenKey)
}

func mustAuthUser(c *gin.Context) (domain.User, bool) {
	user, ok := GetAuthUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		c.Abort()
	}
	return user, ok
}
