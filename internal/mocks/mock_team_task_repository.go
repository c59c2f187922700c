package mocks

import (
	"context"
	"net/url"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/query"
)

// MockTeamTaskRepository implements domain.TeamTaskRepository interface for testing
type MockTeamTaskRepository struct {
	CreateFunc     func(ctx context.Context, task *domain.TeamTask) error
	FindByIDFunc   func(ctx context.Context, id, teamID uint) (*domain.TeamTask, error)
	UpdateFunc     func(ctx context.Context, task *domain.TeamTask) error
	DeleteFunc     func(ctx context.Context, id, teamID uint) error
	ListByTeamFunc func(ctx context.Context, teamID uint, params url.Values) ([]domain.TeamTask, query.Pagination, error)
}

// NewMockTeamTaskRepository creates a new MockTeamTaskRepository with default behaviors
func NewMockTeamTaskRepository() *MockTeamTaskRepository {
	return &MockTeamTaskRepository{}
}

// Create creates a new team task
func (m *MockTeamTaskRepository) Create(ctx context.Context, task *domain.TeamTask) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	// Default behavior: assign an id and succeed
	task.ID = 1
	return nil
}

// FindByID finds a task scoped to its team
func (m *MockTeamTaskRepository) FindByID(ctx context.Context, id, teamID uint) (*domain.TeamTask, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, teamID)
	}
	// Default behavior: not found
	return nil, domain.ErrTeamTaskNotFound
}

// Update updates an existing team task
func (m *MockTeamTaskRepository) Update(ctx context.Context, task *domain.TeamTask) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	// Default behavior: success
	return nil
}

// Delete removes a task scoped to its team
func (m *MockTeamTaskRepository) Delete(ctx context.Context, id, teamID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, teamID)
	}
	// Default behavior: success
	return nil
}

// ListByTeam lists the team's tasks
func (m *MockTeamTaskRepository) ListByTeam(ctx context.Context, teamID uint, params url.Values) ([]domain.TeamTask, query.Pagination, error) {
	if m.ListByTeamFunc != nil {
		return m.ListByTeamFunc(ctx, teamID, params)
	}
	// Default behavior: empty page
	return nil, query.Pagination{Page: 1, Limit: query.DefaultLimit}, nil
}

// Compile-time interface compliance verification
var _ domain.TeamTaskRepository = (*MockTeamTaskRepository)(nil)
