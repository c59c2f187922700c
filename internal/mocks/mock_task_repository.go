package mocks

import (
	"context"
	"net/url"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/query"
)

// MockTaskRepository implements domain.TaskRepository interface for testing
type MockTaskRepository struct {
	CreateFunc     func(ctx context.Context, task *domain.Task) error
	FindByIDFunc   func(ctx context.Context, id, userID uint) (*domain.Task, error)
	UpdateFunc     func(ctx context.Context, task *domain.Task) error
	DeleteFunc     func(ctx context.Context, id, userID uint) error
	ListByUserFunc func(ctx context.Context, userID uint, params url.Values) ([]domain.Task, query.Pagination, error)
}

// NewMockTaskRepository creates a new MockTaskRepository with default behaviors
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{}
}

// Create creates a new task
func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	// Default behavior: assign an id and succeed
	task.ID = 1
	return nil
}

// FindByID finds a task scoped to its owner
func (m *MockTaskRepository) FindByID(ctx context.Context, id, userID uint) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrTaskNotFound
}

// Update updates an existing task
func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	// Default behavior: success
	return nil
}

// Delete removes a task scoped to its owner
func (m *MockTaskRepository) Delete(ctx context.Context, id, userID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	// Default behavior: success
	return nil
}

// ListByUser lists the owner's tasks
func (m *MockTaskRepository) ListByUser(ctx context.Context, userID uint, params url.Values) ([]domain.Task, query.Pagination, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, params)
	}
	// Default behavior: empty page
	return nil, query.Pagination{Page: 1, Limit: query.DefaultLimit}, nil
}

// Compile-time interface compliance verification
var _ domain.TaskRepository = (*MockTaskRepository)(nil)
