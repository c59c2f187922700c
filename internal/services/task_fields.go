package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// taskFields points at the mutable fields shared by personal and team tasks,
// so one patch routine serves both.
type taskFields struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Status      *domain.Status
	Completed   *bool
	DueDate     **time.Time
}

// applyTaskPatch applies set patch fields in place. A status change re-derives
// the completed flag; an explicit completed value wins over the derivation.
func applyTaskPatch(f *taskFields, patch domain.TaskPatch) error {
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return domain.Validation("task title cannot be empty")
		}
		*f.Title = *patch.Title
	}
	if patch.Description != nil {
		*f.Description = *patch.Description
	}
	if patch.Priority != nil {
		priority, err := canonicalPriority(*patch.Priority)
		if err != nil {
			return err
		}
		*f.Priority = priority
	}
	if patch.Status != nil {
		status, err := canonicalStatus(*patch.Status)
		if err != nil {
			return err
		}
		*f.Status = status
		*f.Completed = status == domain.StatusCompleted
	}
	if patch.Completed != nil {
		*f.Completed = *patch.Completed
	}
	if patch.DueDate != nil {
		*f.DueDate = patch.DueDate
	}
	return nil
}

// canonicalPriority validates and normalizes a priority supplied by a client.
// Empty means "use the default".
func canonicalPriority(raw string) (domain.Priority, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.PriorityMedium, nil
	}
	p, ok := domain.ParsePriority(raw)
	if !ok {
		return "", domain.Validation(fmt.Sprintf("invalid priority %q, must be one of low, medium, high", raw))
	}
	return p, nil
}

// canonicalStatus validates and normalizes a status supplied by a client.
// Empty means "use the default".
func canonicalStatus(raw string) (domain.Status, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.StatusPending, nil
	}
	st, ok := domain.ParseStatus(raw)
	if !ok {
		return "", domain.Validation(fmt.Sprintf("invalid status %q, must be one of pending, in-progress, completed", raw))
	}
	return st, nil
}
