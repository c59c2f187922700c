package mocks

import (
	"context"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// MockTeamRepository implements domain.TeamRepository interface for testing
type MockTeamRepository struct {
	CreateFunc       func(ctx context.Context, team *domain.Team) error
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Team, error)
	ListForUserFunc  func(ctx context.Context, userID uint) ([]domain.Team, error)
	UpdateInfoFunc   func(ctx context.Context, teamID uint, name, description *string) error
	AddMembersFunc   func(ctx context.Context, teamID uint, userIDs []uint) error
	RemoveMemberFunc func(ctx context.Context, teamID, userID uint) error
	UpdateOwnerFunc  func(ctx context.Context, teamID, ownerID uint) error
	DeleteFunc       func(ctx context.Context, teamID uint) error
}

// NewMockTeamRepository creates a new MockTeamRepository with default behaviors
func NewMockTeamRepository() *MockTeamRepository {
	return &MockTeamRepository{}
}

// Create creates a new team
func (m *MockTeamRepository) Create(ctx context.Context, team *domain.Team) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, team)
	}
	// Default behavior: assign an id and succeed
	team.ID = 1
	return nil
}

// FindByID finds a team with its owner and members
func (m *MockTeamRepository) FindByID(ctx context.Context, id uint) (*domain.Team, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrTeamNotFound
}

// ListForUser lists teams the user owns or has joined
func (m *MockTeamRepository) ListForUser(ctx context.Context, userID uint) ([]domain.Team, error) {
	if m.ListForUserFunc != nil {
		return m.ListForUserFunc(ctx, userID)
	}
	// Default behavior: empty list
	return nil, nil
}

// UpdateInfo updates the team's name and description
func (m *MockTeamRepository) UpdateInfo(ctx context.Context, teamID uint, name, description *string) error {
	if m.UpdateInfoFunc != nil {
		return m.UpdateInfoFunc(ctx, teamID, name, description)
	}
	// Default behavior: success
	return nil
}

// AddMembers connects users to the team
func (m *MockTeamRepository) AddMembers(ctx context.Context, teamID uint, userIDs []uint) error {
	if m.AddMembersFunc != nil {
		return m.AddMembersFunc(ctx, teamID, userIDs)
	}
	// Default behavior: success
	return nil
}

// RemoveMember disconnects a user from the team
func (m *MockTeamRepository) RemoveMember(ctx context.Context, teamID, userID uint) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, teamID, userID)
	}
	// Default behavior: success
	return nil
}

// UpdateOwner sets a new team owner
func (m *MockTeamRepository) UpdateOwner(ctx context.Context, teamID, ownerID uint) error {
	if m.UpdateOwnerFunc != nil {
		return m.UpdateOwnerFunc(ctx, teamID, ownerID)
	}
	// Default behavior: success
	return nil
}

// Delete removes the team
func (m *MockTeamRepository) Delete(ctx context.Context, teamID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, teamID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.TeamRepository = (*MockTeamRepository)(nil)
