package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// TeamRepositoryImpl implements domain.TeamRepository using GORM
type TeamRepositoryImpl struct {
	db *gorm.DB
}

// DBTeam represents the database model for Team. Membership is an explicit
// many-to-many relation distinct from ownership; the owner is connected as a
// member on creation so access checks stay uniform.
type DBTeam struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Description string
	OwnerID     uint     `gorm:"index;not null"`
	Owner       *DBUser  `gorm:"foreignKey:OwnerID"`
	Members     []DBUser `gorm:"many2many:team_members;joinForeignKey:TeamID;joinReferences:UserID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBTeam) TableName() string {
	return "teams"
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *gorm.DB) domain.TeamRepository {
	return &TeamRepositoryImpl{db: db}
}

// Create implements domain.TeamRepository. The owner is connected as a
// member in the same transaction.
func (r *TeamRepositoryImpl) Create(ctx context.Context, team *domain.Team) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := &DBTeam{
			Name:        team.Name,
			Description: team.Description,
			OwnerID:     team.OwnerID,
		}
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		if err := tx.Model(row).Association("Members").Append(&DBUser{ID: team.OwnerID}); err != nil {
			return err
		}
		team.ID = row.ID
		team.CreatedAt = row.CreatedAt
		return nil
	})
}

// FindByID implements domain.TeamRepository, loading owner and members.
func (r *TeamRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Team, error) {
	var row DBTeam
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members").
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTeamNotFound
		}
		return nil, err
	}
	return teamToDomain(&row), nil
}

// ListForUser implements domain.TeamRepository: teams the user owns or has joined.
func (r *TeamRepositoryImpl) ListForUser(ctx context.Context, userID uint) ([]domain.Team, error) {
	var rows []DBTeam
	err := r.db.WithContext(ctx).
		Distinct("teams.*").
		Joins("LEFT JOIN team_members ON team_members.team_id = teams.id").
		Where("teams.owner_id = ? OR team_members.user_id = ?", userID, userID).
		Preload("Owner").
		Preload("Members").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	teams := make([]domain.Team, 0, len(rows))
	for i := range rows {
		teams = append(teams, *teamToDomain(&rows[i]))
	}
	return teams, nil
}

// UpdateInfo implements domain.TeamRepository; nil fields are left untouched.
func (r *TeamRepositoryImpl) UpdateInfo(ctx context.Context, teamID uint, name, description *string) error {
	updates := map[string]any{}
	if name != nil {
		updates["name"] = *name
	}
	if description != nil {
		updates["description"] = *description
	}
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&DBTeam{}).Where("id = ?", teamID).Updates(updates).Error
}

// AddMembers implements domain.TeamRepository
func (r *TeamRepositoryImpl) AddMembers(ctx context.Context, teamID uint, userIDs []uint) error {
	members := make([]DBUser, 0, len(userIDs))
	for _, id := range userIDs {
		members = append(members, DBUser{ID: id})
	}
	return r.db.WithContext(ctx).Model(&DBTeam{ID: teamID}).Association("Members").Append(&members)
}

// RemoveMember implements domain.TeamRepository
func (r *TeamRepositoryImpl) RemoveMember(ctx context.Context, teamID, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBTeam{ID: teamID}).Association("Members").Delete(&DBUser{ID: userID})
}

// UpdateOwner implements domain.TeamRepository
func (r *TeamRepositoryImpl) UpdateOwner(ctx context.Context, teamID, ownerID uint) error {
	return r.db.WithContext(ctx).Model(&DBTeam{}).Where("id = ?", teamID).Update("owner_id", ownerID).Error
}

// Delete implements domain.TeamRepository. Team tasks and the membership
// relation are removed in the same transaction.
func (r *TeamRepositoryImpl) Delete(ctx context.Context, teamID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&DBTeamTask{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&DBTeam{ID: teamID}).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(&DBTeam{}, teamID).Error
	})
}

func teamToDomain(row *DBTeam) *domain.Team {
	team := &domain.Team{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		OwnerID:     row.OwnerID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.Owner != nil {
		team.Owner = userToDomain(row.Owner)
	}
	for i := range row.Members {
		team.Members = append(team.Members, *userToDomain(&row.Members[i]))
	}
	return team
}
