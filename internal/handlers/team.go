package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuscollab/taskboard-api/internal/dto"
	apierrors "github.com/campuscollab/taskboard-api/internal/errors"
	"github.com/campuscollab/taskboard-api/internal/services"
)

// TeamHandler coordinates team-related HTTP handlers.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a new team with a unique code; the creator becomes the
// team's first admin member.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		CreatorID   uint64 `json:"creator_id" binding:"required"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Name and creator_id are required")
		return
	}

	team, err := h.teamService.CreateTeam(services.CreateTeamInput{
		Name:        req.Name,
		Description: req.Description,
		CreatorID:   req.CreatorID,
	})
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamDTO(*team))
}

// ListTeams returns all teams with their creators' names.
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams()
	if err != nil {
		respondTeamError(c, err)
		return
	}

	teamDTOs := make([]dto.TeamWithCreatorDTO, len(teams))
	for i, team := range teams {
		teamDTOs[i] = dto.ToTeamWithCreatorDTO(team)
	}

	c.JSON(http.StatusOK, teamDTOs)
}

// GetTeam returns team details with the member list.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	team, members, err := h.teamService.GetTeamWithMembers(teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamDetailDTO(*team, members))
}

// JoinTeam adds a user to a team by its numeric ID.
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	type JoinRequest struct {
		UserID uint64 `json:"user_id" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "user_id is required")
		return
	}

	member, err := h.teamService.JoinTeam(teamID, req.UserID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Successfully joined team",
		"membership": member,
	})
}

// JoinTeamByCode adds a user to a team resolved from a 6-character code.
// Registered as a static route so it wins over /teams/:id routes.
func (h *TeamHandler) JoinTeamByCode(c *gin.Context) {
	type JoinByCodeRequest struct {
		TeamCode string `json:"team_code" binding:"required"`
		UserID   uint64 `json:"user_id" binding:"required"`
	}

	var req JoinByCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "team_code and user_id are required")
		return
	}

	team, member, err := h.teamService.JoinTeamByCode(req.TeamCode, req.UserID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Successfully joined team",
		"team":       dto.ToTeamDTO(*team),
		"membership": member,
	})
}

// LeaveTeam removes the requesting user from a team, running admin
// succession when they were the sole admin. The response distinguishes the
// case where the team itself was deleted.
func (h *TeamHandler) LeaveTeam(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "user_id is required")
		return
	}

	teamDeleted, err := h.teamService.LeaveTeam(teamID, userID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	if teamDeleted {
		c.JSON(http.StatusOK, gin.H{
			"message":      "Team deleted",
			"team_deleted": true,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left team successfully"})
}

// ListTeamMembers returns the member list of a team with user details.
func (h *TeamHandler) ListTeamMembers(c *gin.Context) {
	teamID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid team ID")
		return
	}

	members, err := h.teamService.ListMembers(teamID)
	if err != nil {
		respondTeamError(c, err)
		return
	}

	memberDTOs := make([]dto.TeamMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = dto.ToTeamMemberDTO(member)
	}

	c.JSON(http.StatusOK, memberDTOs)
}

func respondTeamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTeamNameRequired):
		apierrors.BadRequest(c, "Team name is required")
	case errors.Is(err, services.ErrTeamCreatorNotFound):
		apierrors.BadRequest(c, "Creator does not reference an existing user")
	case errors.Is(err, services.ErrTeamNotFound):
		apierrors.NotFound(c, "Team not found")
	case errors.Is(err, services.ErrInvalidTeamCode):
		apierrors.NotFound(c, "Invalid team code")
	case errors.Is(err, services.ErrNotTeamMember):
		apierrors.NotFound(c, "User is not a member of this team")
	case errors.Is(err, services.ErrAlreadyTeamMember):
		apierrors.Conflict(c, "Already a member of this team")
	case errors.Is(err, services.ErrTeamCodeConflict):
		apierrors.Conflict(c, "Team code collided, please retry")
	default:
		apierrors.InternalError(c, "Server error")
	}
}
