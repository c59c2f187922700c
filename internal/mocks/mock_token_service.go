package mocks

import (
	"fmt"
	"time"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	SignFunc   func(subject uint, purpose domain.TokenPurpose) (string, error)
	VerifyFunc func(token string, purpose domain.TokenPurpose) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Sign issues a token for the subject and purpose
func (m *MockTokenService) Sign(subject uint, purpose domain.TokenPurpose) (string, error) {
	if m.SignFunc != nil {
		return m.SignFunc(subject, purpose)
	}
	// Default behavior: return a recognizable mock token
	return fmt.Sprintf("%s_token_%d", purpose, subject), nil
}

// Verify validates a token issued for the given purpose
func (m *MockTokenService) Verify(token string, purpose domain.TokenPurpose) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token, purpose)
	}
	// Default behavior: accept any non-empty token as subject 1
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		Subject:   1,
		Purpose:   purpose,
		IssuedAt:  now,
		ExpiresAt: now + 900,
	}, nil
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
