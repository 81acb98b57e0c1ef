package dto

import (
	"time"

	"github.com/campuscollab/taskboard-api/internal/models"
)

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatorID   uint64    `json:"creator_id"`
	TeamCode    string    `json:"team_code"`
	CreatedAt   time.Time `json:"created_at"`
}

// TeamWithCreatorDTO adds the creator's display name
type TeamWithCreatorDTO struct {
	TeamDTO
	CreatorName string `json:"creator_name"`
}

// TeamWithRoleDTO represents a team together with the user's role in it
type TeamWithRoleDTO struct {
	TeamDTO
	Role models.TeamRole `json:"role"`
}

// TeamMemberDTO represents a member in a team with user details
type TeamMemberDTO struct {
	UserID    uint64          `json:"user_id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	StudentID string          `json:"student_id"`
	Role      models.TeamRole `json:"role"`
	JoinedAt  time.Time       `json:"joined_at"`
}

// TeamDetailDTO represents detailed team information with its member list
type TeamDetailDTO struct {
	TeamDTO
	Members []TeamMemberDTO `json:"members"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:          team.ID,
		Name:        team.Name,
		Description: team.Description,
		CreatorID:   team.CreatorID,
		TeamCode:    team.TeamCode,
		CreatedAt:   team.CreatedAt,
	}
}

// ToTeamWithCreatorDTO converts a team with its creator preloaded
func ToTeamWithCreatorDTO(team models.Team) TeamWithCreatorDTO {
	return TeamWithCreatorDTO{
		TeamDTO:     ToTeamDTO(team),
		CreatorName: team.Creator.Name,
	}
}

// ToTeamWithRoleDTO converts a membership to a team DTO with the user's role
func ToTeamWithRoleDTO(member models.TeamMember) TeamWithRoleDTO {
	return TeamWithRoleDTO{
		TeamDTO: ToTeamDTO(member.Team),
		Role:    member.Role,
	}
}

// ToTeamMemberDTO converts a membership with its user preloaded
func ToTeamMemberDTO(member models.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{
		UserID:    member.UserID,
		Name:      member.User.Name,
		Email:     member.User.Email,
		StudentID: member.User.StudentID,
		Role:      member.Role,
		JoinedAt:  member.JoinedAt,
	}
}

// ToTeamDetailDTO converts a team with its member list to a detailed DTO
func ToTeamDetailDTO(team models.Team, members []models.TeamMember) TeamDetailDTO {
	memberDTOs := make([]TeamMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToTeamMemberDTO(member)
	}

	return TeamDetailDTO{
		TeamDTO: ToTeamDTO(team),
		Members: memberDTOs,
	}
}
