package services

import (
	"context"
	"testing"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/mocks"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestTaskServiceImpl_Create(t *testing.T) {
	tests := []struct {
		name         string
		input        domain.TaskInput
		expectedCode int
		validate     func(t *testing.T, task *domain.Task)
	}{
		{
			name:  "defaults applied",
			input: domain.TaskInput{Title: "buy milk"},
			validate: func(t *testing.T, task *domain.Task) {
				if task.Priority != domain.PriorityMedium {
					t.Errorf("expected medium priority, got %s", task.Priority)
				}
				if task.Status != domain.StatusPending {
					t.Errorf("expected pending status, got %s", task.Status)
				}
				if task.Completed {
					t.Error("new pending task must not be completed")
				}
			},
		},
		{
			name:  "status aliases are canonicalized",
			input: domain.TaskInput{Title: "ship release", Status: "DONE"},
			validate: func(t *testing.T, task *domain.Task) {
				if task.Status != domain.StatusCompleted {
					t.Errorf("expected completed status, got %s", task.Status)
				}
				if !task.Completed {
					t.Error("completed status must derive the completed flag")
				}
			},
		},
		{
			name:         "missing title",
			input:        domain.TaskInput{Description: "no title"},
			expectedCode: 400,
		},
		{
			name:         "invalid priority",
			input:        domain.TaskInput{Title: "x", Priority: "urgent"},
			expectedCode: 400,
		},
		{
			name:         "invalid status",
			input:        domain.TaskInput{Title: "x", Status: "cancelled"},
			expectedCode: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTaskService(mocks.NewMockTaskRepository())
			task, err := svc.Create(context.Background(), 1, tt.input)
			if tt.expectedCode != 0 {
				expectCode(t, err, tt.expectedCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if task.UserID != 1 {
				t.Errorf("expected owner 1, got %d", task.UserID)
			}
			tt.validate(t, task)
		})
	}
}

func TestTaskServiceImpl_Update(t *testing.T) {
	existing := func() *domain.Task {
		return &domain.Task{
			ID:       3,
			Title:    "old title",
			Priority: domain.PriorityLow,
			Status:   domain.StatusPending,
			UserID:   1,
		}
	}

	t.Run("partial patch keeps untouched fields", func(t *testing.T) {
		repo := mocks.NewMockTaskRepository()
		repo.FindByIDFunc = func(ctx context.Context, id, userID uint) (*domain.Task, error) {
			return existing(), nil
		}
		svc := NewTaskService(repo)

		task, err := svc.Update(context.Background(), 1, 3, domain.TaskPatch{Status: strPtr("in progress")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Title != "old title" {
			t.Errorf("title must be untouched, got %q", task.Title)
		}
		if task.Status != domain.StatusInProgress {
			t.Errorf("expected in-progress, got %s", task.Status)
		}
	})

	t.Run("status change re-derives completed", func(t *testing.T) {
		repo := mocks.NewMockTaskRepository()
		repo.FindByIDFunc = func(ctx context.Context, id, userID uint) (*domain.Task, error) {
			return existing(), nil
		}
		svc := NewTaskService(repo)

		task, err := svc.Update(context.Background(), 1, 3, domain.TaskPatch{Status: strPtr("done")})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !task.Completed {
			t.Error("completed must follow the status")
		}
	})

	t.Run("explicit completed flag wins", func(t *testing.T) {
		repo := mocks.NewMockTaskRepository()
		repo.FindByIDFunc = func(ctx context.Context, id, userID uint) (*domain.Task, error) {
			return existing(), nil
		}
		svc := NewTaskService(repo)

		task, err := svc.Update(context.Background(), 1, 3, domain.TaskPatch{
			Status:    strPtr("completed"),
			Completed: boolPtr(false),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.Completed {
			t.Error("explicit completed=false must override the derivation")
		}
	})

	t.Run("empty title rejected", func(t *testing.T) {
		repo := mocks.NewMockTaskRepository()
		repo.FindByIDFunc = func(ctx context.Context, id, userID uint) (*domain.Task, error) {
			return existing(), nil
		}
		svc := NewTaskService(repo)

		_, err := svc.Update(context.Background(), 1, 3, domain.TaskPatch{Title: strPtr("  ")})
		expectCode(t, err, 400)
	})

	t.Run("another user's task behaves like a missing one", func(t *testing.T) {
		svc := NewTaskService(mocks.NewMockTaskRepository())
		_, err := svc.Update(context.Background(), 2, 3, domain.TaskPatch{Status: strPtr("done")})
		expectCode(t, err, 404)
	})
}
