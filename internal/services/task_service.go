package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/campuscollab/taskboard-api/internal/models"
	"github.com/campuscollab/taskboard-api/internal/repository"
)

const defaultTaskTime = "1h 00m"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrTitleRequired    = errors.New("title is required")
	ErrCategoryRequired = errors.New("category is required")
	ErrInvalidCategory  = errors.New("category must be one of Academics, Recreational, Sports, Events")
	ErrInvalidStatus    = errors.New("status must be one of Pending, In Progress, Completed")
	ErrTaskOwnerInvalid = errors.New("owner does not reference an existing user")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
	Category    models.TaskCategory
	Tags        []string
	Time        string
	Status      models.TaskStatus
	Comments    string
	OwnerID     uint64
	AssigneeID  *uint64
	TeamID      *uint64
}

// UpdateTaskInput represents a sparse patch: nil fields are left untouched.
// The Clear flags distinguish an explicit null from an absent field for the
// two nullable references.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	Category      *models.TaskCategory
	Tags          *[]string
	Time          *string
	Status        *models.TaskStatus
	Completed     *bool
	Comments      *string
	AssigneeID    *uint64
	ClearAssignee bool
	TeamID        *uint64
	ClearTeam     bool
}

// ListTasks returns all tasks visible to the user: owned, assigned, or
// belonging to one of the user's teams.
func (s *TaskService) ListTasks(userID uint64) ([]models.Task, error) {
	tasks, err := s.taskRepo.ListVisibleToUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CreateTask creates a new task with validation
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}
	if input.Category == "" {
		return nil, ErrCategoryRequired
	}
	if !models.ValidCategory(input.Category) {
		return nil, ErrInvalidCategory
	}

	if _, err := s.userRepo.FindByID(input.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskOwnerInvalid
		}
		return nil, fmt.Errorf("failed to verify owner: %w", err)
	}

	if input.Time == "" {
		input.Time = defaultTaskTime
	}
	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !models.ValidStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Tags:        input.Tags,
		Time:        input.Time,
		Status:      input.Status,
		Comments:    input.Comments,
		OwnerID:     input.OwnerID,
		AssigneeID:  input.AssigneeID,
		TeamID:      input.TeamID,
	}
	task.SyncCompleted()

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Team")
}

// UpdateTask applies a sparse patch to an existing task
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Category != nil {
		if !models.ValidCategory(*input.Category) {
			return nil, ErrInvalidCategory
		}
		task.Category = *input.Category
	}
	if input.Tags != nil {
		task.Tags = *input.Tags
	}
	if input.Time != nil {
		task.Time = *input.Time
	}
	if input.Comments != nil {
		task.Comments = *input.Comments
	}

	// Status is authoritative over the legacy completed flag; the boolean
	// only drives the transition when status was not supplied.
	if input.Status != nil {
		if !models.ValidStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		task.Status = *input.Status
	} else if input.Completed != nil {
		if *input.Completed {
			task.Status = models.TaskStatusCompleted
		} else {
			task.Status = models.TaskStatusPending
		}
	}
	task.SyncCompleted()

	if input.ClearAssignee {
		task.AssigneeID = nil
	} else if input.AssigneeID != nil {
		task.AssigneeID = input.AssigneeID
	}
	if input.ClearTeam {
		task.TeamID = nil
	} else if input.TeamID != nil {
		task.TeamID = input.TeamID
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Assignee", "Team")
}

// DeleteTask deletes a task
func (s *TaskService) DeleteTask(taskID uint64) error {
	if err := s.taskRepo.Delete(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}
