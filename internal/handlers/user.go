package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuscollab/taskboard-api/internal/dto"
	apierrors "github.com/campuscollab/taskboard-api/internal/errors"
	"github.com/campuscollab/taskboard-api/internal/services"
)

// UserHandler coordinates user listing and per-user queries.
type UserHandler struct {
	authService *services.AuthService
	teamService *services.TeamService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, teamService *services.TeamService) *UserHandler {
	return &UserHandler{
		authService: authService,
		teamService: teamService,
	}
}

// ListUsers returns all users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Server error")
		return
	}

	userDTOs := make([]dto.UserDTO, len(users))
	for i, user := range users {
		userDTOs[i] = dto.ToUserDTO(user)
	}

	c.JSON(http.StatusOK, userDTOs)
}

// ListUserTeams returns the teams a user belongs to, with their role.
func (h *UserHandler) ListUserTeams(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid user ID")
		return
	}

	memberships, err := h.teamService.ListTeamsForUser(userID)
	if err != nil {
		apierrors.InternalError(c, "Server error")
		return
	}

	teamDTOs := make([]dto.TeamWithRoleDTO, len(memberships))
	for i, membership := range memberships {
		teamDTOs[i] = dto.ToTeamWithRoleDTO(membership)
	}

	c.JSON(http.StatusOK, teamDTOs)
}
