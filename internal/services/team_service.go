package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ameen0saad/TO-DO-List/domain"
)

// TeamServiceImpl implements domain.TeamService
type TeamServiceImpl struct {
	teamRepo domain.TeamRepository
	userRepo domain.UserRepository
}

// NewTeamService creates a new team service
func NewTeamService(teamRepo domain.TeamRepository, userRepo domain.UserRepository) domain.TeamService {
	return &TeamServiceImpl{teamRepo: teamRepo, userRepo: userRepo}
}

// List implements domain.TeamService
func (s *TeamServiceImpl) List(ctx context.Context, userID uint) ([]domain.Team, error) {
	return s.teamRepo.ListForUser(ctx, userID)
}

// Access implements domain.TeamService. A team the caller does not belong to
// is reported as not found, so outsiders cannot probe for team ids.
func (s *TeamServiceImpl) Access(ctx context.Context, teamID, userID uint) (*domain.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if !team.IsOwner(userID) && !team.HasMember(userID) {
		return nil, domain.ErrTeamNotFound
	}
	return team, nil
}

// Create implements domain.TeamService
func (s *TeamServiceImpl) Create(ctx context.Context, ownerID uint, name, description string) (*domain.Team, error) {
	if strings.TrimSpace(name) == "" {
		return nil, domain.Validation("please provide a team name")
	}

	team := &domain.Team{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}
	return s.teamRepo.FindByID(ctx, team.ID)
}

// Update implements domain.TeamService. Only the owner may rename the team or
// invite members; members are added by email.
func (s *TeamServiceImpl) Update(ctx context.Context, team *domain.Team, callerID uint, name, description *string, memberEmails []string) (*domain.Team, error) {
	if !team.IsOwner(callerID) {
		return nil, domain.Forbidden("you are not authorized to update this team")
	}
	if name != nil && strings.TrimSpace(*name) == "" {
		return nil, domain.Validation("team name cannot be empty")
	}

	memberIDs, err := s.resolveMembers(ctx, memberEmails)
	if err != nil {
		return nil, err
	}

	if err := s.teamRepo.UpdateInfo(ctx, team.ID, name, description); err != nil {
		return nil, err
	}
	if len(memberIDs) > 0 {
		if err := s.teamRepo.AddMembers(ctx, team.ID, memberIDs); err != nil {
			return nil, err
		}
	}
	return s.teamRepo.FindByID(ctx, team.ID)
}

// Delete implements domain.TeamService, owner only.
func (s *TeamServiceImpl) Delete(ctx context.Context, team *domain.Team, callerID uint) error {
	if !team.IsOwner(callerID) {
		return domain.Forbidden("you are not authorized to delete this team")
	}
	return s.teamRepo.Delete(ctx, team.ID)
}

// RemoveMembers implements domain.TeamService. Only the owner may remove
// members, and the owner cannot be removed this way.
func (s *TeamServiceImpl) RemoveMembers(ctx context.Context, team *domain.Team, callerID uint, memberEmails []string) (*domain.Team, error) {
	if !team.IsOwner(callerID) {
		return nil, domain.Forbidden("only the owner can remove members from the team")
	}
	if len(memberEmails) == 0 {
		return nil, domain.Validation("please provide the emails of the members to remove")
	}

	memberIDs, err := s.resolveMembers(ctx, memberEmails)
	if err != nil {
		return nil, err
	}
	for _, id := range memberIDs {
		if id == team.OwnerID {
			return nil, domain.Forbidden("the team owner cannot be removed")
		}
	}

	for _, id := range memberIDs {
		if err := s.teamRepo.RemoveMember(ctx, team.ID, id); err != nil {
			return nil, err
		}
	}
	return s.teamRepo.FindByID(ctx, team.ID)
}

// Leave implements domain.TeamService. The owner must transfer ownership or
// delete the team instead.
func (s *TeamServiceImpl) Leave(ctx context.Context, team *domain.Team, callerID uint) (*domain.Team, error) {
	if team.IsOwner(callerID) {
		return nil, domain.Forbidden("the owner cannot leave the team, transfer ownership or delete it instead")
	}
	if err := s.teamRepo.RemoveMember(ctx, team.ID, callerID); err != nil {
		return nil, err
	}
	return s.teamRepo.FindByID(ctx, team.ID)
}

// TransferOwnership implements domain.TeamService. The new owner must already
// be a member and cannot be the caller.
func (s *TeamServiceImpl) TransferOwnership(ctx context.Context, team *domain.Team, callerID, memberID uint) (*domain.Team, error) {
	if memberID == 0 {
		return nil, domain.Validation("please provide the member ID to transfer ownership to")
	}
	if !team.IsOwner(callerID) {
		return nil, domain.Forbidden("only the owner can transfer ownership of the team")
	}
	if memberID == callerID {
		return nil, domain.Validation("you cannot transfer ownership to yourself")
	}
	if !team.HasMember(memberID) {
		return nil, domain.Forbidden("this user does not belong to this team")
	}
	if _, err := s.userRepo.FindByID(ctx, memberID); err != nil {
		return nil, err
	}

	if err := s.teamRepo.UpdateOwner(ctx, team.ID, memberID); err != nil {
		return nil, err
	}
	return s.teamRepo.FindByID(ctx, team.ID)
}

// resolveMembers maps emails to user ids, failing on the first unknown email.
func (s *TeamServiceImpl) resolveMembers(ctx context.Context, emails []string) ([]uint, error) {
	ids := make([]uint, 0, len(emails))
	for _, email := range emails {
		user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				return nil, domain.NotFound(fmt.Sprintf("there is no user with that email: %s", email))
			}
			return nil, err
		}
		ids = append(ids, user.ID)
	}
	return ids, nil
}
