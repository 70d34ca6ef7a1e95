package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-api/internal/service"
)

// UserHandler mantiene dependencias para endpoints de usuarios.
type UserHandler struct {
	logger   *zap.Logger
	userServ *service.UserService
}

// NewUserHandler crea una instancia de UserHandler con dependencias necesarias.
func NewUserHandler(logger *zap.Logger, userServ *service.UserService) *UserHandler {
	return &UserHandler{
		logger:   logger,
		userServ: userServ,
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register maneja POST /users.
func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.logger.Warn("invalid register request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.userServ.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "register", err)
		return
	}

	c.Header(AuthHeader, token)
	c.JSON(http.StatusOK, user.Public())
}

// Login maneja POST /users/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.logger.Warn("invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, token, err := h.userServ.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "login", err)
		return
	}

	c.Header(AuthHeader, token)
	c.JSON(http.StatusOK, user.Public())
}

// Me maneja GET /users/me; el usuario ya viene resuelto por AuthMiddleware.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user.Public())
}

// Logout maneja DELETE /users/me/token.
func (h *UserHandler) Logout(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}
	if err := h.userServ.Logout(c.Request.Context(), user.ID, GetAuthToken(c)); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not logout"})
		return
	}
	c.Status(http.StatusOK)
}
