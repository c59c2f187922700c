package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/query"
)

// TaskServiceImpl implements domain.TaskService
type TaskServiceImpl struct {
	taskRepo domain.TaskRepository
}

// NewTaskService creates a new task service
func NewTaskService(taskRepo domain.TaskRepository) domain.TaskService {
	return &TaskServiceImpl{taskRepo: taskRepo}
}

// List implements domain.TaskService
func (s *TaskServiceImpl) List(ctx context.Context, userID uint, params url.Values) ([]domain.Task, query.Pagination, error) {
	return s.taskRepo.ListByUser(ctx, userID, params)
}

// Get implements domain.TaskService
func (s *TaskServiceImpl) Get(ctx context.Context, userID, taskID uint) (*domain.Task, error) {
	return s.taskRepo.FindByID(ctx, taskID, userID)
}

// Create implements domain.TaskService. Priority and status are canonicalized
// and the completed flag is derived from the status unless set explicitly.
func (s *TaskServiceImpl) Create(ctx context.Context, userID uint, input domain.TaskInput) (*domain.Task, error) {
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

	task := &domain.Task{
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		Status:      status,
		Completed:   completed,
		DueDate:     input.DueDate,
		UserID:      userID,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update implements domain.TaskService. Unset patch fields keep their current
// value.
func (s *TaskServiceImpl) Update(ctx context.Context, userID, taskID uint, patch domain.TaskPatch) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID, userID)
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
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete implements domain.TaskService
func (s *TaskServiceImpl) Delete(ctx context.Context, userID, taskID uint) error {
	return s.taskRepo.Delete(ctx, taskID, userID)
}
