package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuscollab/taskboard-api/internal/dto"
	apierrors "github.com/campuscollab/taskboard-api/internal/errors"
	"github.com/campuscollab/taskboard-api/internal/models"
	"github.com/campuscollab/taskboard-api/internal/services"
	"github.com/campuscollab/taskboard-api/internal/utils"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks returns all tasks visible to the user in the user_id query
// parameter: owned, assigned, or belonging to one of the user's teams.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "user_id is required")
		return
	}

	tasks, err := h.taskService.ListTasks(userID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(tasks))
}

// CreateTask creates a new task.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Category    models.TaskCategory `json:"category"`
		Tags        []string            `json:"tags"`
		Time        string              `json:"time"`
		Status      models.TaskStatus   `json:"status"`
		Comments    string              `json:"comments"`
		OwnerID     uint64              `json:"owner_id"`
		AssigneeID  *uint64             `json:"assignee_id"`
		TeamID      *uint64             `json:"team_id"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.OwnerID == 0 {
		apierrors.BadRequest(c, "owner_id is required")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Time:        req.Time,
		Status:      req.Status,
		Comments:    req.Comments,
		OwnerID:     req.OwnerID,
		AssigneeID:  req.AssigneeID,
		TeamID:      req.TeamID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a sparse patch: only fields present in the request body
// are modified. An explicit null clears assignee_id or team_id.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	type UpdateTaskRequest struct {
		Title       *string                `json:"title"`
		Description *string                `json:"description"`
		Category    *models.TaskCategory   `json:"category"`
		Tags        *[]string              `json:"tags"`
		Time        *string                `json:"time"`
		Status      *models.TaskStatus     `json:"status"`
		Completed   *bool                  `json:"completed"`
		Comments    *string                `json:"comments"`
		AssigneeID  utils.Optional[uint64] `json:"assignee_id"`
		TeamID      utils.Optional[uint64] `json:"team_id"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Tags:        req.Tags,
		Time:        req.Time,
		Status:      req.Status,
		Completed:   req.Completed,
		Comments:    req.Comments,
	}
	if req.AssigneeID.Set {
		if req.AssigneeID.Value == nil {
			input.ClearAssignee = true
		} else {
			input.AssigneeID = req.AssigneeID.Value
		}
	}
	if req.TeamID.Set {
		if req.TeamID.Value == nil {
			input.ClearTeam = true
		} else {
			input.TeamID = req.TeamID.Value
		}
	}

	task, err := h.taskService.UpdateTask(taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.BadRequest(c, "Title and category are required")
	case errors.Is(err, services.ErrCategoryRequired):
		apierrors.BadRequest(c, "Title and category are required")
	case errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrTaskOwnerInvalid):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Server error")
	}
}
