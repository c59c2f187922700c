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

// TeamTaskRepositoryImpl implements domain.TeamTaskRepository using GORM
type TeamTaskRepositoryImpl struct {
	db *gorm.DB
}

// DBTeamTask represents the database model for TeamTask (with GORM tags)
type DBTeamTask struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string
	Priority    string `gorm:"size:16;index"`
	Status      string `gorm:"size:32;index"`
	Completed   bool   `gorm:"index"`
	DueDate     *time.Time
	TeamID      uint      `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBTeamTask) TableName() string {
	return "team_tasks"
}

var teamTaskQuerySchema = query.Schema{
	Columns: map[string]string{
		"id":          "id",
		"title":       "title",
		"description": "description",
		"priority":    "priority",
		"status":      "status",
		"completed":   "completed",
		"dueDate":     "due_date",
		"teamId":      "team_id",
		"createdAt":   "created_at",
	},
	SearchFields: []string{"title", "description"},
}

// NewTeamTaskRepository creates a new team task repository
func NewTeamTaskRepository(db *gorm.DB) domain.TeamTaskRepository {
	return &TeamTaskRepositoryImpl{db: db}
}

// Create implements domain.TeamTaskRepository
func (r *TeamTaskRepositoryImpl) Create(ctx context.Context, task *domain.TeamTask) error {
	row := teamTaskToDB(task)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	task.ID = row.ID
	task.CreatedAt = row.CreatedAt
	return nil
}

// FindByID implements domain.TeamTaskRepository, scoped to the team.
func (r *TeamTaskRepositoryImpl) FindByID(ctx context.Context, id, teamID uint) (*domain.TeamTask, error) {
	var row DBTeamTask
	err := r.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamTaskNotFound
		}
		return nil, err
	}
	return teamTaskToDomain(&row), nil
}

// Update implements domain.TeamTaskRepository
func (r *TeamTaskRepositoryImpl) Update(ctx context.Context, task *domain.TeamTask) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", task.ID, task.TeamID).
		Save(teamTaskToDB(task)).Error
}

// Delete implements domain.TeamTaskRepository
func (r *TeamTaskRepositoryImpl) Delete(ctx context.Context, id, teamID uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND team_id = ?", id, teamID).Delete(&DBTeamTask{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrTeamTaskNotFound
	}
	return nil
}

// ListByTeam implements domain.TeamTaskRepository. The team predicate is
// forced after the parsed filters, so it cannot be overridden.
func (r *TeamTaskRepositoryImpl) ListByTeam(ctx context.Context, teamID uint, params url.Values) ([]domain.TeamTask, query.Pagination, error) {
	plan, err := query.Parse(params, teamTaskQuerySchema)
	if err != nil {
		return nil, query.Pagination{}, domain.Validation(err.Error())
	}

	var rows []DBTeamTask
	scope := []query.Condition{{Column: "team_id", Value: teamID}}
	pagination, err := query.Run(ctx, r.db, &DBTeamTask{}, plan, scope, &rows)
	if err != nil {
		return nil, query.Pagination{}, err
	}

	tasks := make([]domain.TeamTask, 0, len(rows))
	for i := range rows {
		tasks = append(tasks, *teamTaskToDomain(&rows[i]))
	}
	return tasks, pagination, nil
}

func teamTaskToDB(task *domain.TeamTask) *DBTeamTask {
	return &DBTeamTask{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    string(task.Priority),
		Status:      string(task.Status),
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		TeamID:      task.TeamID,
		CreatedAt:   task.CreatedAt,
	}
}

func teamTaskToDomain(row *DBTeamTask) *domain.TeamTask {
	return &domain.TeamTask{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    domain.Priority(row.Priority),
		Status:      domain.Status(row.Status),
		Completed:   row.Completed,
		DueDate:     row.DueDate,
		TeamID:      row.TeamID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
