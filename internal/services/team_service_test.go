package services

import (
	"context"
	"testing"

	"github.com/ameen0saad/TO-DO-List/domain"
	"github.com/ameen0saad/TO-DO-List/internal/mocks"
)

func testTeam() *domain.Team {
	return &domain.Team{
		ID:      10,
		Name:    "backend",
		OwnerID: 1,
		Members: []domain.User{
			{ID: 1, Email: "owner@example.com"},
			{ID: 2, Email: "member@example.com"},
		},
	}
}

func newTeamService(teamRepo *mocks.MockTeamRepository, userRepo *mocks.MockUserRepository) domain.TeamService {
	if teamRepo.FindByIDFunc == nil {
		teamRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.Team, error) {
			if id == 10 {
				return testTeam(), nil
			}
			return nil, domain.ErrTeamNotFound
		}
	}
	return NewTeamService(teamRepo, userRepo)
}

func TestTeamServiceImpl_Access(t *testing.T) {
	svc := newTeamService(mocks.NewMockTeamRepository(), mocks.NewMockUserRepository())

	t.Run("member gets the team", func(t *testing.T) {
		team, err := svc.Access(context.Background(), 10, 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if team.ID != 10 {
			t.Errorf("unexpected team %d", team.ID)
		}
	})

	t.Run("outsider gets the same not-found as a missing team", func(t *testing.T) {
		_, outsiderErr := svc.Access(context.Background(), 10, 99)
		_, missingErr := svc.Access(context.Background(), 404, 2)
		expectCode(t, outsiderErr, 404)
		if outsiderErr.Error() != missingErr.Error() {
			t.Errorf("membership must not be probeable: %q vs %q", outsiderErr, missingErr)
		}
	})
}

func TestTeamServiceImpl_Update(t *testing.T) {
	t.Run("non-owner forbidden", func(t *testing.T) {
		svc := newTeamService(mocks.NewMockTeamRepository(), mocks.NewMockUserRepository())
		_, err := svc.Update(context.Background(), testTeam(), 2, strPtr("new name"), nil, nil)
		expectCode(t, err, 403)
	})

	t.Run("unknown member email fails before any write", func(t *testing.T) {
		teamRepo := mocks.NewMockTeamRepository()
		updated := false
		teamRepo.UpdateInfoFunc = func(ctx context.Context, teamID uint, name, description *string) error {
			updated = true
			return nil
		}
		svc := newTeamService(teamRepo, mocks.NewMockUserRepository())

		_, err := svc.Update(context.Background(), testTeam(), 1, nil, nil, []string{"ghost@example.com"})
		expectCode(t, err, 404)
		if updated {
			t.Error("no write must happen when a member email is unknown")
		}
	})

	t.Run("owner invites members by email", func(t *testing.T) {
		teamRepo := mocks.NewMockTeamRepository()
		var added []uint
		teamRepo.AddMembersFunc = func(ctx context.Context, teamID uint, userIDs []uint) error {
			added = userIDs
			return nil
		}
		userRepo := mocks.NewMockUserRepository()
		userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: 3, Email: email}, nil
		}
		svc := newTeamService(teamRepo, userRepo)

		_, err := svc.Update(context.Background(), testTeam(), 1, nil, nil, []string{"Third@Example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(added) != 1 || added[0] != 3 {
			t.Errorf("expected member 3 to be added, got %v", added)
		}
	})
}

func TestTeamServiceImpl_RemoveMembers(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.User, error) {
		switch email {
		case "owner@example.com":
			return &domain.User{ID: 1, Email: email}, nil
		case "member@example.com":
			return &domain.User{ID: 2, Email: email}, nil
		}
		return nil, domain.ErrUserNotFound
	}

	t.Run("non-owner forbidden", func(t *testing.T) {
		svc := newTeamService(mocks.NewMockTeamRepository(), userRepo)
		_, err := svc.RemoveMembers(context.Background(), testTeam(), 2, []string{"member@example.com"})
		expectCode(t, err, 403)
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		svc := newTeamService(mocks.NewMockTeamRepository(), userRepo)
		_, err := svc.RemoveMembers(context.Background(), testTeam(), 1, []string{"owner@example.com"})
		expectCode(t, err, 403)
	})

	t.Run("owner removes a member", func(t *testing.T) {
		teamRepo := mocks.NewMockTeamRepository()
		var removed []uint
		teamRepo.RemoveMemberFunc = func(ctx context.Context, teamID, userID uint) error {
			removed = append(removed, userID)
			return nil
		}
		svc := newTeamService(teamRepo, userRepo)

		_, err := svc.RemoveMembers(context.Background(), testTeam(), 1, []string{"member@example.com"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(removed) != 1 || removed[0] != 2 {
			t.Errorf("expected member 2 removed, got %v", removed)
		}
	})
}

func TestTeamServiceImpl_Leave(t *testing.T) {
	t.Run("owner cannot leave", func(t *testing.T) {
		svc := newTeamService(mocks.NewMockTeamRepository(), mocks.NewMockUserRepository())
		_, err := svc.Leave(context.Background(), testTeam(), 1)
		expectCode(t, err, 403)
	})

	t.Run("member leaves", func(t *testing.T) {
		teamRepo := mocks.NewMockTeamRepository()
		var removed uint
		teamRepo.RemoveMemberFunc = func(ctx context.Context, teamID, userID uint) error {
			removed = userID
			return nil
		}
		svc := newTeamService(teamRepo, mocks.NewMockUserRepository())

		if _, err := svc.Leave(context.Background(), testTeam(), 2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed != 2 {
			t.Errorf("expected member 2 removed, got %d", removed)
		}
	})
}

func TestTeamServiceImpl_TransferOwnership(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	userRepo.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return &domain.User{ID: id}, nil
	}

	tests := []struct {
		name         string
		callerID     uint
		memberID     uint
		expectedCode int
	}{
		{name: "non-owner forbidden", callerID: 2, memberID: 1, expectedCode: 403},
		{name: "self transfer rejected", callerID: 1, memberID: 1, expectedCode: 400},
		{name: "target must be a member", callerID: 1, memberID: 99, expectedCode: 403},
		{name: "missing member id", callerID: 1, memberID: 0, expectedCode: 400},
		{name: "owner transfers to a member", callerID: 1, memberID: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			teamRepo := mocks.NewMockTeamRepository()
			var newOwner uint
			teamRepo.UpdateOwnerFunc = func(ctx context.Context, teamID, ownerID uint) error {
				newOwner = ownerID
				return nil
			}
			svc := newTeamService(teamRepo, userRepo)

			_, err := svc.TransferOwnership(context.Background(), testTeam(), tt.callerID, tt.memberID)
			if tt.expectedCode != 0 {
				expectCode(t, err, tt.expectedCode)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if newOwner != tt.memberID {
				t.Errorf("expected owner %d, got %d", tt.memberID, newOwner)
			}
		})
	}
}
