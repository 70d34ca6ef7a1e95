package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterDeps agrupa lo que NewRouter necesita para montar la tabla de rutas.
type RouterDeps struct {
	Logger         *zap.Logger
	Auth           Authenticator
	Users          *UserHandler
	Todos          *TodoHandler
	Health         *HealthHandler
	AllowedOrigins []string
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(deps RouterDeps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware(deps.AllowedOrigins), jsonContentTypeMiddleware())

	if deps.Health != nil {
		r.GET("/healthz", deps.Health.Health)
	}

	auth := AuthMiddleware(deps.Auth)

	todos := r.Group("/todos", auth)
	todos.GET("", deps.Todos.List)
	todos.POST("", deps.Todos.Create)
	todos.GET("/:id", deps.Todos.Get)
	todos.PATCH("/:id", deps.Todos.Update)
	todos.DELETE("/:id", deps.Todos.Delete)

	users := r.Group("/users")
	users.POST("", deps.Users.Register)
	users.POST("/login", deps.Users.Login)
	users.GET("/me", auth, deps.Users.Me)
	users.DELETE("/me/token", auth, deps.Users.Logout)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// corsMiddleware expone x-auth a los origenes permitidos. Sin origenes no agrega headers.
func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	originMap := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		originMap[trimmed] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		_, allowed := originMap[origin]
		if origin != "" && allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
			c.Header("Access-Control-Allow-Headers", "Content-Type, "+AuthHeader)
			c.Header("Access-Control-Expose-Headers", AuthHeader)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		}

		if c.Request.Method == http.MethodOptions && allowed {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
