package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/http/middleware"
)

// TaskHandlers handles personal task HTTP requests
type TaskHandlers struct {
	taskSvc domain.TaskService
	logger  *zap.Logger
}

// NewTaskHandlers creates new task handlers
func NewTaskHandlers(taskSvc domain.TaskService, logger *zap.Logger) *TaskHandlers {
	return &TaskHandlers{taskSvc: taskSvc, logger: logger}
}

// TaskRequest represents task creation input
type TaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
}

// TaskPatchRequest represents a partial task update; absent fields stay untouched
type TaskPatchRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r *TaskRequest) toInput() domain.TaskInput {
	return domain.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		Completed:   r.Completed,
		DueDate:     r.DueDate,
	}
}

func (r *TaskPatchRequest) toPatch() domain.TaskPatch {
	return domain.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Priority:    r.Priority,
		Status:      r.Status,
		Completed:   r.Completed,
		DueDate:     r.DueDate,
	}
}

// List returns the caller's tasks, shaped by the request query parameters.
func (h *TaskHandlers) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	tasks, pagination, err := h.taskSvc.List(c.Request.Context(), user.ID, c.Request.URL.Query())
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"tasks": tasks, "pagination": pagination})
}

// Get returns one of the caller's tasks
func (h *TaskHandlers) Get(c *gin.Context) {
	user := middleware.CurrentUser(c)
	taskID, err := idParam(c, "id")
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	task, err := h.taskSvc.Get(c.Request.Context(), user.ID, taskID)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"task": task})
}

// Create creates a task owned by the caller
func (h *TaskHandlers) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), user.ID, req.toInput())
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"task": task})
}

// Update applies a partial update to one of the caller's tasks
func (h *TaskHandlers) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	taskID, err := idParam(c, "id")
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	var req TaskPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), user.ID, taskID, req.toPatch())
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"task": task})
}

// Delete removes one of the caller's tasks
func (h *TaskHandlers) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	taskID, err := idParam(c, "id")
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), user.ID, taskID); err != nil {
		respondErr(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// idParam parses a numeric route parameter.
func idParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, domain.Validation("invalid " + name + " parameter")
	}
	return uint(id), nil
}
