package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuscollab/taskboard-api/internal/database"
	"github.com/campuscollab/taskboard-api/internal/dto"
	"github.com/campuscollab/taskboard-api/internal/models"
	"github.com/campuscollab/taskboard-api/internal/repository"
	"github.com/campuscollab/taskboard-api/internal/services"
)

// TeamHandlerTestSuite defines the test suite for TeamHandler
type TeamHandlerTestSuite struct {
	suite.Suite
	db          *gorm.DB
	teamService *services.TeamService
	router      *gin.Engine
	nextStudent int
}

// SetupTest runs before each test
func (suite *TeamHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	teamRepo := repository.NewTeamRepository(suite.db)
	suite.teamService = services.NewTeamService(teamRepo, userRepo)
	handler := NewTeamHandler(suite.teamService)

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	teams := suite.router.Group("/api/teams")
	{
		teams.POST("", handler.CreateTeam)
		teams.GET("", handler.ListTeams)
		teams.POST("/join-by-code", handler.JoinTeamByCode)
		teams.GET("/:id", handler.GetTeam)
		teams.POST("/:id/join", handler.JoinTeam)
		teams.DELETE("/:id/leave", handler.LeaveTeam)
		teams.GET("/:id/members", handler.ListTeamMembers)
	}
}

// TearDownTest runs after each test
func (suite *TeamHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TeamHandlerTestSuite) createTestUser(name string) *models.User {
	suite.nextStudent++
	user := &models.User{
		Name:      name,
		Email:     name + "@example.com",
		Password:  "hashedpassword",
		StudentID: fmt.Sprintf("%08d", 20250000+suite.nextStudent),
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TeamHandlerTestSuite) createTestTeam(name string, creatorID uint64) *models.Team {
	team, err := suite.teamService.CreateTeam(services.CreateTeamInput{
		Name:      name,
		CreatorID: creatorID,
	})
	suite.Require().NoError(err)
	return team
}

func (suite *TeamHandlerTestSuite) do(method, url string, payload any) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TeamHandlerTestSuite) TestCreateTeam_Success() {
	user := suite.createTestUser("alice")

	w := suite.do("POST", "/api/teams", map[string]any{
		"name":        "Study Group",
		"description": "CS307 revision",
		"creator_id":  user.ID,
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.TeamDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Study Group", response.Name)
	assert.Regexp(suite.T(), regexp.MustCompile(`^[A-Z0-9]{6}$`), response.TeamCode)

	var members []models.TeamMember
	suite.Require().NoError(suite.db.Where("team_id = ?", response.ID).Find(&members).Error)
	suite.Require().Len(members, 1)
	assert.Equal(suite.T(), user.ID, members[0].UserID)
	assert.Equal(suite.T(), models.RoleAdmin, members[0].Role)
}

func (suite *TeamHandlerTestSuite) TestCreateTeam_UnknownCreator() {
	w := suite.do("POST", "/api/teams", map[string]any{
		"name":       "Ghost Team",
		"creator_id": 999,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TeamHandlerTestSuite) TestCreateTeam_MissingName() {
	user := suite.createTestUser("alice")

	w := suite.do("POST", "/api/teams", map[string]any{
		"creator_id": user.ID,
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *TeamHandlerTestSuite) TestListTeams_IncludesCreatorName() {
	user := suite.createTestUser("alice")
	suite.createTestTeam("Study Group", user.ID)

	w := suite.do("GET", "/api/teams", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response []dto.TeamWithCreatorDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response, 1)
	assert.Equal(suite.T(), "alice", response[0].CreatorName)
}

func (suite *TeamHandlerTestSuite) TestGetTeam_Detail() {
	creator := suite.createTestUser("alice")
	joiner := suite.createTestUser("bob")
	team := suite.createTestTeam("Study Group", creator.ID)

	_, err := suite.teamService.JoinTeam(team.ID, joiner.ID)
	suite.Require().NoError(err)

	w := suite.do("GET", fmt.Sprintf("/api/teams/%d", team.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.TeamDetailDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), team.TeamCode, response.TeamCode)
	suite.Require().Len(response.Members, 2)
}

func (suite *TeamHandlerTestSuite) TestGetTeam_NotFound() {
	w := suite.do("GET", "/api/teams/999", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TeamHandlerTestSuite) TestJoinTeam_Success() {
	creator := suite.createTestUser("alice")
	joiner := suite.createTestUser("bob")
	team := suite.createTestTeam("Study Group", creator.ID)

	w := suite.do("POST", fmt.Sprintf("/api/teams/%d/join", team.ID), map[string]any{
		"user_id": joiner.ID,
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var member models.TeamMember
	suite.Require().NoError(suite.db.Where("team_id = ? AND user_id = ?", team.ID, joiner.ID).First(&member).Error)
	assert.Equal(suite.T(), models.RoleMember, member.Role)
}

func (suite *TeamHandlerTestSuite) TestJoinTeam_AlreadyMember() {
	creator := suite.createTestUser("alice")
	team := suite.createTestTeam("Study Group", creator.ID)

	w := suite.do("POST", fmt.Sprintf("/api/teams/%d/join", team.ID), map[string]any{
		"user_id": creator.ID,
	})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(1), count)
}

func (suite *TeamHandlerTestSuite) TestJoinTeam_UnknownTeam() {
	user := suite.createTestUser("alice")

	w := suite.do("POST", "/api/teams/999/join", map[string]any{
		"user_id": user.ID,
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TeamHandlerTestSuite) TestJoinTeamByCode_CaseInsensitive() {
	creator := suite.createTestUser("alice")
	joiner := suite.createTestUser("bob")
	team := suite.createTestTeam("Study Group", creator.ID)

	w := suite.do("POST", "/api/teams/join-by-code", map[string]any{
		"team_code": "  " + strings.ToLower(team.TeamCode) + " ",
		"user_id":   joiner.ID,
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var member models.TeamMember
	suite.Require().NoError(suite.db.Where("team_id = ? AND user_id = ?", team.ID, joiner.ID).First(&member).Error)
	assert.Equal(suite.T(), models.RoleMember, member.Role)
}

func (suite *TeamHandlerTestSuite) TestJoinTeamByCode_InvalidCode() {
	joiner := suite.createTestUser("bob")

	w := suite.do("POST", "/api/teams/join-by-code", map[string]any{
		"team_code": "NOPE42",
		"user_id":   joiner.ID,
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TeamHandlerTestSuite) TestLeaveTeam_PlainMember() {
	creator := suite.createTestUser("alice")
	member := suite.createTestUser("bob")
	team := suite.createTestTeam("Study Group", creator.ID)

	_, err := suite.teamService.JoinTeam(team.ID, member.ID)
	suite.Require().NoError(err)

	w := suite.do("DELETE", fmt.Sprintf("/api/teams/%d/leave?user_id=%d", team.ID, member.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", team.ID, member.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)

	// Team and the creator's admin membership are untouched
	var reloaded models.Team
	suite.Require().NoError(suite.db.First(&reloaded, team.ID).Error)
	assert.Equal(suite.T(), creator.ID, reloaded.CreatorID)
}

func (suite *TeamHandlerTestSuite) TestLeaveTeam_SoleAdminPromotesLowestID() {
	creator := suite.createTestUser("alice")
	second := suite.createTestUser("bob")
	third := suite.createTestUser("carol")
	team := suite.createTestTeam("Study Group", creator.ID)

	_, err := suite.teamService.JoinTeam(team.ID, second.ID)
	suite.Require().NoError(err)
	_, err = suite.teamService.JoinTeam(team.ID, third.ID)
	suite.Require().NoError(err)

	w := suite.do("DELETE", fmt.Sprintf("/api/teams/%d/leave?user_id=%d", team.ID, creator.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	// Requester is gone
	var count int64
	suite.Require().NoError(suite.db.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", team.ID, creator.ID).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count)

	// The member with the lowest user ID was promoted
	var successor models.TeamMember
	suite.Require().NoError(suite.db.Where("team_id = ? AND user_id = ?", team.ID, second.ID).
		First(&successor).Error)
	assert.Equal(suite.T(), models.RoleAdmin, successor.Role)

	var other models.TeamMember
	suite.Require().NoError(suite.db.Where("team_id = ? AND user_id = ?", team.ID, third.ID).
		First(&other).Error)
	assert.Equal(suite.T(), models.RoleMember, other.Role)

	// Team survives with reassigned creator
	var reloaded models.Team
	suite.Require().NoError(suite.db.First(&reloaded, team.ID).Error)
	assert.Equal(suite.T(), second.ID, reloaded.CreatorID)
}

func (suite *TeamHandlerTestSuite) TestLeaveTeam_LastMemberDeletesTeam() {
	creator := suite.createTestUser("alice")
	team := suite.createTestTeam("Study Group", creator.ID)

	w := suite.do("DELETE", fmt.Sprintf("/api/teams/%d/leave?user_id=%d", team.ID, creator.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), true, response["team_deleted"])

	var teamCount int64
	suite.Require().NoError(suite.db.Model(&models.Team{}).Where("id = ?", team.ID).Count(&teamCount).Error)
	assert.Equal(suite.T(), int64(0), teamCount)

	var memberCount int64
	suite.Require().NoError(suite.db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount).Error)
	assert.Equal(suite.T(), int64(0), memberCount)
}

func (suite *TeamHandlerTestSuite) TestLeaveTeam_NotMember() {
	creator := suite.createTestUser("alice")
	outsider := suite.createTestUser("bob")
	team := suite.createTestTeam("Study Group", creator.ID)

	w := suite.do("DELETE", fmt.Sprintf("/api/teams/%d/leave?user_id=%d", team.ID, outsider.ID), nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *TeamHandlerTestSuite) TestListTeamMembers_UnknownTeam() {
	w := suite.do("GET", "/api/teams/999/members", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTeamHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamHandlerTestSuite))
}
