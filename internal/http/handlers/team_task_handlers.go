package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/http/middleware"
)

// TeamTaskHandlers handles shared task HTTP requests. All routes run behind
// the team access middleware.
type TeamTaskHandlers struct {
	teamTaskSvc domain.TeamTaskService
	logger      *zap.Logger
}

// NewTeamTaskHandlers creates new team task handlers
func NewTeamTaskHandlers(teamTaskSvc domain.TeamTaskService, logger *zap.Logger) *TeamTaskHandlers {
	return &TeamTaskHandlers{teamTaskSvc: teamTaskSvc, logger: logger}
}

// List returns the team's tasks, shaped by the request query parameters.
func (h *TeamTaskHandlers) List(c *gin.Context) {
	team := middleware.CurrentTeam(c)

	tasks, pagination, err := h.teamTaskSvc.List(c.Request.Context(), team.ID, c.Request.URL.Query())
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"tasks": tasks, "pagination": pagination})
}

// Get returns one of the team's tasks
func (h *TeamTaskHandlers) Get(c *gin.Context) {
	team := middleware.CurrentTeam(c)
	taskID, err := idParam(c, "id")
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	task, err := h.teamTaskSvc.Get(c.Request.Context(), team.ID, taskID)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"task": task})
}

// Create creates a task in the team, owner only
func (h *TeamTaskHandlers) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	team := middleware.CurrentTeam(c)

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	task, err := h.teamTaskSvc.Create(c.Request.Context(), team, user.ID, req.toInput())
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"task": task})
}

// Update applies a partial update. Non-owner members may only change the
// status field.
func (h *TeamTaskHandlers) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	team := middleware.CurrentTeam(c)
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

	task, err := h.teamTaskSvc.Update(c.Request.Context(), team, user.ID, taskID, req.toPatch())
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"task": task})
}

// Delete removes one of the team's tasks, owner only
func (h *TeamTaskHandlers) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	team := middleware.CurrentTeam(c)
	taskID, err := idParam(c, "id")
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}

	if err := h.teamTaskSvc.Delete(c.Request.Context(), team, user.ID, taskID); err != nil {
		respondErr(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
