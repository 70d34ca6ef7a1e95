package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"todo-api/internal/domain"
	"todo-api/internal/service"
)

// TodoHandler expone el CRUD de todos del usuario autenticado.
type TodoHandler struct {
	logger   *zap.Logger
	todoServ *service.TodoService
}

func NewTodoHandler(logger *zap.Logger, todoServ *service.TodoService) *TodoHandler {
	return &TodoHandler{
		logger:   logger,
		todoServ: todoServ,
	}
}

// List maneja GET /todos.
func (h *TodoHandler) List(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}
	todos, err := h.todoServ.List(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.logger, "list todos", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

// Get maneja GET /todos/:id.
func (h *TodoHandler) Get(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}
	todo, err := h.todoServ.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "get todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// Create maneja POST /todos. Responde el todo sin envolver.
func (h *TodoHandler) Create(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		h.logger.Warn("invalid create todo request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	todo, err := h.todoServ.Create(c.Request.Context(), user.ID, req.Text)
	if err != nil {
		respondError(c, h.logger, "create todo", err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// Update maneja PATCH /todos/:id.
func (h *TodoHandler) Update(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if !domain.IsValidID(id) {
		respondError(c, h.logger, "update todo", domain.ErrNotFound)
		return
	}

	// completed se lee como any: solo el booleano true completa el todo.
	var req struct {
		Text      *string `json:"text"`
		Completed any     `json:"completed"`
	}
	if err := bindOptionalJSON(c, &req); err != nil {
		h.logger.Warn("invalid update todo request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	completed, _ := req.Completed.(bool)

	todo, err := h.todoServ.Update(c.Request.Context(), user.ID, id, domain.TodoPatch{
		Text:      req.Text,
		Completed: completed,
	})
	if err != nil {
		respondError(c, h.logger, "update todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}

// Delete maneja DELETE /todos/:id y devuelve el documento borrado.
func (h *TodoHandler) Delete(c *gin.Context) {
	user, ok := mustAuthUser(c)
	if !ok {
		return
	}
	todo, err := h.todoServ.Delete(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "delete todo", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo})
}
