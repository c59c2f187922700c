package repositories

import (
	"context"
	"errors"
	"net/url"
	"time"

	"gorm.io/gorm"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/query"
)

// TaskRepositoryImpl implements domain.TaskRepository using GORM
type TaskRepositoryImpl struct {
	db *gorm.DB
}

// DBTask represents the database model for Task (with GORM tags)
type DBTask struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string
	Priority    string `gorm:"size:16;index"`
	Status      string `gorm:"size:32;index"`
	Completed   bool   `gorm:"index"`
	DueDate     *time.Time
	UserID      uint      `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBTask) TableName() string {
	return "tasks"
}

// taskQuerySchema is the allow-list the query parser validates task list
// parameters against. Searching spans title and description.
var taskQuerySchema = query.Schema{
	Columns: map[string]string{
		"id":          "id",
		"title":       "title",
		"description": "description",
		"priority":    "priority",
		"status":      "status",
		"completed":   "completed",
		"dueDate":     "due_date",
		"userId":      "user_id",
		"createdAt":   "created_at",
	},
	SearchFields: []string{"title", "description"},
}

// NewTaskRepository creates a new task repository
func NewTaskRepository(db *gorm.DB) domain.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

// Create implements domain.TaskRepository
func (r *TaskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	dbTask := taskToDB(task)
	if err := r.db.WithContext(ctx).Create(dbTask).Error; err != nil {
		return err
	}
	task.ID = dbTask.ID
	task.CreatedAt = dbTask.CreatedAt
	return nil
}

// FindByID implements domain.TaskRepository. The owner scope is part of the
// lookup, so another user's task id behaves like a missing record.
func (r *TaskRepositoryImpl) FindByID(ctx context.Context, id, userID uint) (*domain.Task, error) {
	var dbTask DBTask
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&dbTask).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return taskToDomain(&dbTask), nil
}

// Update implements domain.TaskRepository
func (r *TaskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", task.ID, task.UserID).
		Save(taskToDB(task)).Error
}

// Delete implements domain.TaskRepository
func (r *TaskRepositoryImpl) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&DBTask{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// ListByUser implements domain.TaskRepository. The owner predicate is forced
// after the parsed filters, so it cannot be overridden by the request.
func (r *TaskRepositoryImpl) ListByUser(ctx context.Context, userID uint, params url.Values) ([]domain.Task, query.Pagination, error) {
	plan, err := query.Parse(params, taskQuerySchema)
	if err != nil {
		return nil, query.Pagination{}, domain.Validation(err.Error())
	}

	var rows []DBTask
	scope := []query.Condition{{Column: "user_id", Value: userID}}
	pagination, err := query.Run(ctx, r.db, &DBTask{}, plan, scope, &rows)
	if err != nil {
		return nil, query.Pagination{}, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, *taskToDomain(&rows[i]))
	}
	return tasks, pagination, nil
}

func taskToDB(task *domain.Task) *DBTask {
	return &DBTask{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
	}
}

func taskToDomain(dbTask *DBTask) *domain.Task {
	return &domain.Task{
		ID:          dbTask.ID,
		Title:       dbTask.Title,
		Description: dbTask.Description,
		Priority:    domain.Priority(dbTask.Priority),
		Status:      domain.Status(dbTask.Status),
		Completed:   dbTask.Completed,
		DueDate:     dbTask.DueDate,
		UserID:      dbTask.UserID,
		CreatedAt:   dbTask.CreatedAt,
		UpdatedAt:   dbTask.UpdatedAt,
	}
}
