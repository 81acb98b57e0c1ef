package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/campuscollab/taskboard-api/internal/models"
	"github.com/campuscollab/taskboard-api/internal/repository"
	"github.com/campuscollab/taskboard-api/internal/utils"
)

const teamCodeMaxAttempts = 10

var (
	ErrTeamNameRequired     = errors.New("team name is required")
	ErrTeamNotFound         = errors.New("team not found")
	ErrInvalidTeamCode      = errors.New("invalid team code")
	ErrAlreadyTeamMember    = errors.New("already a member of this team")
	ErrNotTeamMember        = errors.New("user is not a member of this team")
	ErrTeamCreatorNotFound  = errors.New("creator does not reference an existing user")
	ErrTeamCodeExhausted    = errors.New("could not allocate a unique team code")
	ErrTeamCodeConflict     = errors.New("team code collided, retry the request")
)

// TeamService provides business logic for team and membership operations.
type TeamService struct {
	teamRepo repository.TeamRepository
	userRepo repository.UserRepository
}

// NewTeamService creates a new TeamService.
func NewTeamService(teamRepo repository.TeamRepository, userRepo repository.UserRepository) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		userRepo: userRepo,
	}
}

// CreateTeamInput represents parameters to create a new team.
type CreateTeamInput struct {
	Name        string
	Description string
	CreatorID   uint64
}

// CreateTeam allocates a unique team code and creates the team together with
// the creator's admin membership in one transaction.
func (s *TeamService) CreateTeam(input CreateTeamInput) (*models.Team, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.userRepo.FindByID(input.CreatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamCreatorNotFound
		}
		return nil, fmt.Errorf("failed to verify creator: %w", err)
	}

	code, err := s.allocateTeamCode()
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:        input.Name,
		Description: input.Description,
		CreatorID:   input.CreatorID,
		TeamCode:    code,
	}

	member := &models.TeamMember{
		UserID:   input.CreatorID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	}

	if err := s.teamRepo.CreateWithAdmin(team, member); err != nil {
		// Concurrent creation can win the same code between the existence
		// check and the insert; the unique index rejects the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTeamCodeConflict
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	return team, nil
}

// allocateTeamCode generates codes until one is free or the retry bound is
// exhausted. Exhaustion is an explicit failure, never a silent fallback to a
// possibly duplicate code.
func (s *TeamService) allocateTeamCode() (string, error) {
	for attempt := 0; attempt < teamCodeMaxAttempts; attempt++ {
		code, err := utils.GenerateTeamCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate team code: %w", err)
		}

		_, err = s.teamRepo.FindByCode(code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check team code: %w", err)
		}
	}

	return "", ErrTeamCodeExhausted
}

// ListTeams returns all teams with their creators preloaded.
func (s *TeamService) ListTeams() ([]models.Team, error) {
	teams, err := s.teamRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// GetTeamWithMembers returns a team and all of its members.
func (s *TeamService) GetTeamWithMembers(teamID uint64) (*models.Team, []models.TeamMember, error) {
	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTeamNotFound
		}
		return nil, nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return team, members, nil
}

// ListMembers returns the members of an existing team.
func (s *TeamService) ListMembers(teamID uint64) ([]models.TeamMember, error) {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	members, err := s.teamRepo.ListMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}

	return members, nil
}

// ListTeamsForUser returns memberships (team + role) for a user.
func (s *TeamService) ListTeamsForUser(userID uint64) ([]models.TeamMember, error) {
	memberships, err := s.teamRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return memberships, nil
}

// JoinTeam adds a user to a team by its numeric ID with role member.
func (s *TeamService) JoinTeam(teamID, userID uint64) (*models.TeamMember, error) {
	if _, err := s.teamRepo.FindByID(teamID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to find team: %w", err)
	}

	if _, err := s.teamRepo.FindMember(teamID, userID); err == nil {
		return nil, ErrAlreadyTeamMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.TeamMember{
		TeamID:   teamID,
		UserID:   userID,
		Role:     models.RoleMember,
		JoinedAt: time.Now(),
	}

	if err := s.teamRepo.AddMember(member); err != nil {
		// Two concurrent joins can both pass the membership check; the
		// composite primary key rejects the second insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyTeamMember
		}
		return nil, fmt.Errorf("failed to join team: %w", err)
	}

	return member, nil
}

// JoinTeamByCode resolves a 6-character code case-insensitively and then
// follows the ID-based join path.
func (s *TeamService) JoinTeamByCode(code string, userID uint64) (*models.Team, *models.TeamMember, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	team, err := s.teamRepo.FindByCode(normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidTeamCode
		}
		return nil, nil, fmt.Errorf("failed to find team by code: %w", err)
	}

	member, err := s.JoinTeam(team.ID, userID)
	if err != nil {
		return nil, nil, err
	}

	return team, member, nil
}

// LeaveTeam removes a member, promoting a successor when the requester was
// the sole admin, or deleting the team when no member remains. The returned
// bool reports whether the team itself was deleted.
func (s *TeamService) LeaveTeam(teamID, userID uint64) (bool, error) {
	member, err := s.teamRepo.FindMember(teamID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotTeamMember
		}
		return false, fmt.Errorf("failed to find membership: %w", err)
	}

	team, err := s.teamRepo.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrTeamNotFound
		}
		return false, fmt.Errorf("failed to find team: %w", err)
	}

	isCreator := team.CreatorID == userID
	isAdmin := member.Role == models.RoleAdmin

	if isCreator || isAdmin {
		admins, err := s.teamRepo.CountAdmins(teamID)
		if err != nil {
			return false, fmt.Errorf("failed to count admins: %w", err)
		}

		if admins <= 1 {
			successor, err := s.teamRepo.FindSuccessor(teamID, userID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// Last member out: the team goes with them.
					if err := s.teamRepo.Delete(teamID); err != nil {
						return false, fmt.Errorf("failed to delete team: %w", err)
					}
					return true, nil
				}
				return false, fmt.Errorf("failed to find successor: %w", err)
			}

			if err := s.teamRepo.RemoveMemberPromoting(teamID, userID, successor.UserID); err != nil {
				return false, fmt.Errorf("failed to hand over team: %w", err)
			}
			return false, nil
		}
	}

	if err := s.teamRepo.RemoveMember(teamID, userID); err != nil {
		return false, fmt.Errorf("failed to leave team: %w", err)
	}

	return false, nil
}
