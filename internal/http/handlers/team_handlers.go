package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/http/middleware"
)

// TeamHandlers handles team HTTP requests. Routes with a :teamId parameter
// run behind the team access middleware, so the resolved team is already in
// the context and the caller is known to belong to it.
type TeamHandlers struct {
	teamSvc domain.TeamService
	logger  *zap.Logger
}

// NewTeamHandlers creates new team handlers
func NewTeamHandlers(teamSvc domain.TeamService, logger *zap.Logger) *TeamHandlers {
	return &TeamHandlers{teamSvc: teamSvc, logger: logger}
}

// TeamRequest represents team creation input
type TeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// TeamPatchRequest represents a partial team update. Members holds emails of
// users to invite.
type TeamPatchRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Members     []string `json:"members"`
}

// List returns the teams the caller owns or has joined
func (h *TeamHandlers) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	teams, err := h.teamSvc.List(c.Request.Context(), user.ID)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"teams": teams})
}

// Get returns the resolved team
func (h *TeamHandlers) Get(c *gin.Context) {
	respondData(c, http.StatusOK, gin.H{"team": middleware.CurrentTeam(c)})
}

// Create creates a team owned by the caller
func (h *TeamHandlers) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req TeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	team, err := h.teamSvc.Create(c.Request.Context(), user.ID, req.Name, req.Description)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusCreated, gin.H{"team": team})
}

// Update renames the team or invites members, owner only
func (h *TeamHandlers) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	team := middleware.CurrentTeam(c)

	var req TeamPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	updated, err := h.teamSvc.Update(c.Request.Context(), team, user.ID, req.Name, req.Description, req.Members)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"team": updated})
}

// Delete removes the team and its tasks, owner only
func (h *TeamHandlers) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	team := middleware.CurrentTeam(c)

	if err := h.teamSvc.Delete(c.Request.Context(), team, user.ID); err != nil {
		respondErr(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveMembers removes members by email, owner only
func (h *TeamHandlers) RemoveMembers(c *gin.Context) {
	user := middleware.CurrentUser(c)
	team := middleware.CurrentTeam(c)

	var req struct {
		Members []string `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	updated, err := h.teamSvc.RemoveMembers(c.Request.Context(), team, user.ID, req.Members)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"team": updated})
}

// Leave removes the caller from the team; the owner cannot leave
func (h *TeamHandlers) Leave(c *gin.Context) {
	user := middleware.CurrentUser(c)
	team := middleware.CurrentTeam(c)

	updated, err := h.teamSvc.Leave(c.Request.Context(), team, user.ID)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"team": updated})
}

// TransferOwnership hands the team to another member, owner only
func (h *TeamHandlers) TransferOwnership(c *gin.Context) {
	user := middleware.CurrentUser(c)
	team := middleware.CurrentTeam(c)

	var req struct {
		MemberID uint `json:"memberId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, h.logger, domain.Validation(err.Error()))
		return
	}

	updated, err := h.teamSvc.TransferOwnership(c.Request.Context(), team, user.ID, req.MemberID)
	if err != nil {
		respondErr(c, h.logger, err)
		return
	}
	respondData(c, http.StatusOK, gin.H{"team": updated})
}
