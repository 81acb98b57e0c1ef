package repository

import (
	"github.com/campuscollab/taskboard-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByStudentID finds a user by student ID
	FindByStudentID(studentID string) (*models.User, error)

	// List returns all users
	List() ([]models.User, error)
}

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	// CreateWithAdmin creates a team and its creator's admin membership
	// within a single transaction.
	CreateWithAdmin(team *models.Team, member *models.TeamMember) error

	// FindByID finds a team by ID
	FindByID(id uint64) (*models.Team, error)

	// FindByCode finds a team by its upper-cased team code
	FindByCode(code string) (*models.Team, error)

	// List returns all teams with their creators preloaded
	List() ([]models.Team, error)

	// Delete removes a team and its membership rows. Tasks referencing the
	// team are left in place.
	Delete(id uint64) error

	// AddMember adds a member to a team
	AddMember(member *models.TeamMember) error

	// RemoveMember removes a member from a team
	RemoveMember(teamID, userID uint64) error

	// RemoveMemberPromoting promotes successorID to admin, reassigns the
	// team's creator to them and removes the leaving member, all within a
	// single transaction.
	RemoveMemberPromoting(teamID, leavingUserID, successorID uint64) error

	// FindMember finds a specific team member
	FindMember(teamID, userID uint64) (*models.TeamMember, error)

	// ListMembers lists all members of a team with user details
	ListMembers(teamID uint64) ([]models.TeamMember, error)

	// ListMembershipsByUserID lists all teams a user is a member of
	ListMembershipsByUserID(userID uint64) ([]models.TeamMember, error)

	// CountAdmins counts members of the team with the admin role
	CountAdmins(teamID uint64) (int64, error)

	// FindSuccessor returns the member with the lowest user ID excluding
	// excludeUserID, or gorm.ErrRecordNotFound when no other member exists.
	FindSuccessor(teamID, excludeUserID uint64) (*models.TeamMember, error)
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// ListVisibleToUser returns all tasks the user owns, is assigned to, or
	// that belong to one of the user's teams, newest first.
	ListVisibleToUser(userID uint64) ([]models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task; gorm.ErrRecordNotFound when the ID is absent
	Delete(id uint64) error
}
