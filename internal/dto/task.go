package dto

import (
	"time"

	"github.com/campuscollab/taskboard-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"student_id"`
}

// TaskDTO represents a task in API responses, enriched with the assignee's
// and team's display names when those references are present.
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Category     models.TaskCategory `json:"category"`
	Tags         []string            `json:"tags"`
	Time         string              `json:"time"`
	Status       models.TaskStatus   `json:"status"`
	Completed    bool                `json:"completed"`
	Comments     string              `json:"comments"`
	OwnerID      uint64              `json:"owner_id"`
	AssigneeID   *uint64             `json:"assignee_id"`
	TeamID       *uint64             `json:"team_id"`
	AssigneeName string              `json:"assignee_name,omitempty"`
	TeamName     string              `json:"team_name,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		StudentID: user.StudentID,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Category:    task.Category,
		Tags:        task.Tags,
		Time:        task.Time,
		Status:      task.Status,
		Completed:   task.Completed,
		Comments:    task.Comments,
		OwnerID:     task.OwnerID,
		AssigneeID:  task.AssigneeID,
		TeamID:      task.TeamID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if dto.Tags == nil {
		dto.Tags = []string{}
	}

	// Display names are filled in only when the relations were preloaded
	if task.Assignee != nil {
		dto.AssigneeName = task.Assignee.Name
	}
	if task.Team != nil {
		dto.TeamName = task.Team.Name
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
