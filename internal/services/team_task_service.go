package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/query"
)

// TeamTaskServiceImpl implements domain.TeamTaskService. Callers are assumed
// to have passed the team access check already; this layer enforces the
// owner-only mutation rules.
type TeamTaskServiceImpl struct {
	teamTaskRepo domain.TeamTaskRepository
}

// NewTeamTaskService creates a new team task service
func NewTeamTaskService(teamTaskRepo domain.TeamTaskRepository) domain.TeamTaskService {
	return &TeamTaskServiceImpl{teamTaskRepo: teamTaskRepo}
}

// List implements domain.TeamTaskService
func (s *TeamTaskServiceImpl) List(ctx context.Context, teamID uint, params url.Values) ([]domain.TeamTask, query.Pagination, error) {
	return s.teamTaskRepo.ListByTeam(ctx, teamID, params)
}

// Get implements domain.TeamTaskService
func (s *TeamTaskServiceImpl) Get(ctx context.Context, teamID, taskID uint) (*domain.TeamTask, error) {
	return s.teamTaskRepo.FindByID(ctx, taskID, teamID)
}

// Create implements domain.TeamTaskService, owner only.
func (s *TeamTaskServiceImpl) Create(ctx context.Context, team *domain.Team, callerID uint, input domain.TaskInput) (*domain.TeamTask, error) {
	if !team.IsOwner(callerID) {
		return nil, domain.Forbidden("you are not authorized to create tasks in this team")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, domain.Validation("please provide a task title")
	}
	priority, err := canonicalPriority(input.Priority)
	if err != nil {
		return nil, err
	}
	status, err := canonicalStatus(input.Status)
	if err != nil {
		return nil, err
	}

	completed := status == domain.StatusCompleted
	if input.Completed != nil {
		completed = *input.Completed
	}

	task := &domain.TeamTask{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      status,
		Completed:   completed,
		DueDate:     input.DueDate,
		TeamID:      team.ID,
	}
	if err := s.teamTaskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update implements domain.TeamTaskService. Non-owner members may only move a
// task between statuses; everything else is reserved for the owner.
func (s *TeamTaskServiceImpl) Update(ctx context.Context, team *domain.Team, callerID, taskID uint, patch domain.TaskPatch) (*domain.TeamTask, error) {
	if !team.IsOwner(callerID) && !patch.IsStatusOnly() {
		return nil, domain.Forbidden("you are only allowed to update the task status")
	}

	task, err := s.teamTaskRepo.FindByID(ctx, taskID, team.ID)
	if err != nil {
		return nil, err
	}
	if err := applyTaskPatch(&taskFields{
		Title:       &task.Title,
		Description: &task.Description,
		Priority:    &task.Priority,
		Status:      &task.Status,
		Completed:   &task.Completed,
		DueDate:     &task.DueDate,
	}, patch); err != nil {
		return nil, err
	}
	if err := s.teamTaskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete implements domain.TeamTaskService, owner only.
func (s *TeamTaskServiceImpl) Delete(ctx context.Context, team *domain.Team, callerID, taskID uint) error {
	if !team.IsOwner(callerID) {
		return domain.Forbidden("you are not authorized to delete tasks in this team")
	}
	return s.teamTaskRepo.Delete(ctx, taskID, team.ID)
}
