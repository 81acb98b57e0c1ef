package repository

import (
	"errors"
	"fmt"

	"github.com/campuscollab/taskboard-api/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateTeam is returned when inserting the team row fails inside the creation transaction.
	ErrCreateTeam = errors.New("team repository: create team failed")
	// ErrCreateTeamMember is returned when inserting the admin membership fails inside the creation transaction.
	ErrCreateTeamMember = errors.New("team repository: create team member failed")
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithAdmin creates the team and the creator's admin membership
// atomically. If the membership insert fails no team row remains.
func (r *GormTeamRepository) CreateWithAdmin(team *models.Team, member *models.TeamMember) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTeam, err)
		}

		member.TeamID = team.ID

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateTeamMember, err)
		}

		return nil
	})
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// FindByCode finds a team by team code. Callers upper-case the code first;
// codes are stored upper case.
func (r *GormTeamRepository) FindByCode(code string) (*models.Team, error) {
	var team models.Team
	if err := r.db.Where("team_code = ?", code).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// List returns all teams with their creators preloaded
func (r *GormTeamRepository) List() ([]models.Team, error) {
	var teams []models.Team
	if err := r.db.Preload("Creator").Order("created_at DESC").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

// Delete removes a team and its membership rows in a transaction. Tasks that
// reference the team are deliberately left dangling.
func (r *GormTeamRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Team{}, id).Error
	})
}

// AddMember adds a member to a team
func (r *GormTeamRepository) AddMember(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// RemoveMember removes a member from a team
func (r *GormTeamRepository) RemoveMember(teamID, userID uint64) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&models.TeamMember{}).Error
}

// RemoveMemberPromoting runs the admin-succession writes in one transaction:
// the successor gets the admin role, the team's creator_id is reassigned to
// them, and the leaving member's row is removed.
func (r *GormTeamRepository) RemoveMemberPromoting(teamID, leavingUserID, successorID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", teamID, successorID).
			Update("role", models.RoleAdmin).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Team{}).
			Where("id = ?", teamID).
			Update("creator_id", successorID).Error; err != nil {
			return err
		}

		return tx.Where("team_id = ? AND user_id = ?", teamID, leavingUserID).
			Delete(&models.TeamMember{}).Error
	})
}

// FindMember finds a specific team member
func (r *GormTeamRepository) FindMember(teamID, userID uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembers lists all members of a team with user details
func (r *GormTeamRepository) ListMembers(teamID uint64) ([]models.TeamMember, error) {
	var members []models.TeamMember
	if err := r.db.Preload("User").
		Where("team_id = ?", teamID).
		Order("user_id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// ListMembershipsByUserID lists all teams a user is a member of
func (r *GormTeamRepository) ListMembershipsByUserID(userID uint64) ([]models.TeamMember, error) {
	var memberships []models.TeamMember
	if err := r.db.Preload("Team").
		Where("user_id = ?", userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CountAdmins counts members of the team with the admin role
func (r *GormTeamRepository) CountAdmins(teamID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND role = ?", teamID, models.RoleAdmin).
		Count(&count).Error
	return count, err
}

// FindSuccessor returns the remaining member with the lowest user ID. The
// lowest-id rule is an arbitrary but deterministic tie-break; join order is
// not reliable once memberships have been edited.
func (r *GormTeamRepository) FindSuccessor(teamID, excludeUserID uint64) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("team_id = ? AND user_id <> ?", teamID, excludeUserID).
		Order("user_id ASC").
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}
