package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags). Password
// is nullable: OAuth-only accounts have no local credential.
type DBUser struct {
	ID                uint       `gorm:"primaryKey"`
	Name              string     `gorm:"size:30;not null"`
	Email             string     `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash      *string    `gorm:"column:password"`
	Verified          bool       `gorm:"index"`
	PasswordChangedAt *time.Time
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := userToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return userToDomain(&dbUser), nil
}

// UpdatePassword implements domain.UserRepository. Setting the change
// timestamp invalidates every token issued before this moment.
func (r *UserRepositoryImpl) UpdatePassword(ctx context.Context, userID uint, hash string, changedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(map[string]any{
		"password":            hash,
		"password_changed_at": changedAt,
	}).Error
}

// SetVerified implements domain.UserRepository
func (r *UserRepositoryImpl) SetVerified(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Update("verified", true).Error
}

// userToDB converts a domain user to a database user
func userToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                user.ID,
		Name:              user.Name,
		Email:             user.Email,
		PasswordHash:      user.PasswordHash,
		Verified:          user.Verified,
		PasswordChangedAt: user.PasswordChangedAt,
	}
}

// userToDomain converts a database user to a domain user
func userToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                dbUser.ID,
		Name:              dbUser.Name,
		Email:             dbUser.Email,
		PasswordHash:      dbUser.PasswordHash,
		Verified:          dbUser.Verified,
		PasswordChangedAt: dbUser.PasswordChangedAt,
		CreatedAt:         dbUser.CreatedAt,
		UpdatedAt:         dbUser.UpdatedAt,
	}
}
