package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// DBVerificationToken represents the database model for VerificationToken
type DBVerificationToken struct {
	ID        uint   `gorm:"primaryKey"`
	Token     string `gorm:"size:64;index;not null"`
	UserID    uint   `gorm:"index;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBVerificationToken) TableName() string {
	return "verification_tokens"
}

// DBPasswordResetOTP represents the database model for PasswordResetOTP
type DBPasswordResetOTP struct {
	ID        uint   `gorm:"primaryKey"`
	CodeHash  string `gorm:"not null"`
	UserID    uint   `gorm:"index;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (DBPasswordResetOTP) TableName() string {
	return "password_reset_otps"
}

// VerificationTokenRepositoryImpl implements domain.VerificationTokenRepository
type VerificationTokenRepositoryImpl struct {
	db *gorm.DB
}

// NewVerificationTokenRepository creates a new verification token repository
func NewVerificationTokenRepository(db *gorm.DB) domain.VerificationTokenRepository {
	return &VerificationTokenRepositoryImpl{db: db}
}

// Create implements domain.VerificationTokenRepository
func (r *VerificationTokenRepositoryImpl) Create(ctx context.Context, token *domain.VerificationToken) error {
	row := &DBVerificationToken{
		Token:     token.Token,
		UserID:    token.UserID,
		ExpiresAt: token.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	token.ID = row.ID
	token.CreatedAt = row.CreatedAt
	return nil
}

// FindByUserAndToken implements domain.VerificationTokenRepository
func (r *VerificationTokenRepositoryImpl) FindByUserAndToken(ctx context.Context, userID uint, token string) (*domain.VerificationToken, error) {
	var row DBVerificationToken
	err := r.db.WithContext(ctx).Where("user_id = ? AND token = ?", userID, token).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return verificationTokenToDomain(&row), nil
}

// FindLatestByUser implements domain.VerificationTokenRepository
func (r *VerificationTokenRepositoryImpl) FindLatestByUser(ctx context.Context, userID uint) (*domain.VerificationToken, error) {
	var row DBVerificationToken
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, err
	}
	return verificationTokenToDomain(&row), nil
}

// DeleteAllForUser implements domain.VerificationTokenRepository. Every token
// for the user is purged once one is consumed.
func (r *VerificationTokenRepositoryImpl) DeleteAllForUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBVerificationToken{}).Error
}

func verificationTokenToDomain(row *DBVerificationToken) *domain.VerificationToken {
	return &domain.VerificationToken{
		ID:        row.ID,
		Token:     row.Token,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}
}

// PasswordResetRepositoryImpl implements domain.PasswordResetRepository
type PasswordResetRepositoryImpl struct {
	db *gorm.DB
}

// NewPasswordResetRepository creates a new password reset repository
func NewPasswordResetRepository(db *gorm.DB) domain.PasswordResetRepository {
	return &PasswordResetRepositoryImpl{db: db}
}

// Create implements domain.PasswordResetRepository
func (r *PasswordResetRepositoryImpl) Create(ctx context.Context, otp *domain.PasswordResetOTP) error {
	row := &DBPasswordResetOTP{
		CodeHash:  otp.CodeHash,
		UserID:    otp.UserID,
		ExpiresAt: otp.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	otp.ID = row.ID
	otp.CreatedAt = row.CreatedAt
	return nil
}

// FindByID implements domain.PasswordResetRepository
func (r *PasswordResetRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.PasswordResetOTP, error) {
	var row DBPasswordResetOTP
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPNotFound
		}
		return nil, err
	}
	return &domain.PasswordResetOTP{
		ID:        row.ID,
		CodeHash:  row.CodeHash,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

// Delete implements domain.PasswordResetRepository. The record is consumed
// on successful verification.
func (r *PasswordResetRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBPasswordResetOTP{}, id).Error
}
