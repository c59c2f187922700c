package mocks

import (
	"context"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// MockVerificationTokenRepository implements domain.VerificationTokenRepository for testing
type MockVerificationTokenRepository struct {
	CreateFunc             func(ctx context.Context, token *domain.VerificationToken) error
	FindByUserAndTokenFunc func(ctx context.Context, userID uint, token string) (*domain.VerificationToken, error)
	FindLatestByUserFunc   func(ctx context.Context, userID uint) (*domain.VerificationToken, error)
	DeleteAllForUserFunc   func(ctx context.Context, userID uint) error
}

// NewMockVerificationTokenRepository creates a new mock with default behaviors
func NewMockVerificationTokenRepository() *MockVerificationTokenRepository {
	return &MockVerificationTokenRepository{}
}

// Create stores a verification token
func (m *MockVerificationTokenRepository) Create(ctx context.Context, token *domain.VerificationToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	// Default behavior: assign an id and succeed
	token.ID = 1
	return nil
}

// FindByUserAndToken looks up a token belonging to the user
func (m *MockVerificationTokenRepository) FindByUserAndToken(ctx context.Context, userID uint, token string) (*domain.VerificationToken, error) {
	if m.FindByUserAndTokenFunc != nil {
		return m.FindByUserAndTokenFunc(ctx, userID, token)
	}
	// Default behavior: not found
	return nil, domain.ErrTokenNotFound
}

// FindLatestByUser returns the most recent token for the user
func (m *MockVerificationTokenRepository) FindLatestByUser(ctx context.Context, userID uint) (*domain.VerificationToken, error) {
	if m.FindLatestByUserFunc != nil {
		return m.FindLatestByUserFunc(ctx, userID)
	}
	// Default behavior: not found
	return nil, domain.ErrTokenNotFound
}

// DeleteAllForUser purges the user's tokens
func (m *MockVerificationTokenRepository) DeleteAllForUser(ctx context.Context, userID uint) error {
	if m.DeleteAllForUserFunc != nil {
		return m.DeleteAllForUserFunc(ctx, userID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.VerificationTokenRepository = (*MockVerificationTokenRepository)(nil)

// MockPasswordResetRepository implements domain.PasswordResetRepository for testing
type MockPasswordResetRepository struct {
	CreateFunc   func(ctx context.Context, otp *domain.PasswordResetOTP) error
	FindByIDFunc func(ctx context.Context, id uint) (*domain.PasswordResetOTP, error)
	DeleteFunc   func(ctx context.Context, id uint) error
}

// NewMockPasswordResetRepository creates a new mock with default behaviors
func NewMockPasswordResetRepository() *MockPasswordResetRepository {
	return &MockPasswordResetRepository{}
}

// Create stores a reset OTP record
func (m *MockPasswordResetRepository) Create(ctx context.Context, otp *domain.PasswordResetOTP) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	// Default behavior: assign an id and succeed
	otp.ID = 1
	return nil
}

// FindByID looks up a reset OTP record
func (m *MockPasswordResetRepository) FindByID(ctx context.Context, id uint) (*domain.PasswordResetOTP, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrOTPNotFound
}

// Delete consumes a reset OTP record
func (m *MockPasswordResetRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.PasswordResetRepository = (*MockPasswordResetRepository)(nil)
