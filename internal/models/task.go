package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

type TaskCategory string

const (
	CategoryAcademics    TaskCategory = "Academics"
	CategoryRecreational TaskCategory = "Recreational"
	CategorySports       TaskCategory = "Sports"
	CategoryEvents       TaskCategory = "Events"
)

// ValidCategory reports whether c is one of the fixed task categories.
func ValidCategory(c TaskCategory) bool {
	switch c {
	case CategoryAcademics, CategoryRecreational, CategorySports, CategoryEvents:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

type Task struct {
	ID          uint64                       `gorm:"primarykey" json:"id"`
	Title       string                       `gorm:"not null" json:"title"`
	Description string                       `gorm:"type:text" json:"description"`
	Category    TaskCategory                 `gorm:"type:varchar(50);not null" json:"category"`
	Tags        datatypes.JSONSlice[string]  `json:"tags"`
	Time        string                       `gorm:"type:varchar(50)" json:"time"`
	Status      TaskStatus                   `gorm:"type:varchar(20)" json:"status"`
	Completed   bool                         `json:"completed"`
	Comments    string                       `gorm:"type:text" json:"comments"`
	OwnerID     uint64                       `gorm:"not null" json:"owner_id"`
	AssigneeID  *uint64                      `json:"assignee_id"`
	TeamID      *uint64                      `json:"team_id"`
	CreatedAt   time.Time                    `json:"created_at"`
	UpdatedAt   time.Time                    `json:"updated_at"`

	// Relations
	Owner    User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Assignee *User `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Team     *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// AfterFind reconciles the legacy completed flag with status. Rows written
// before status existed carry only the boolean; status wins when both are set.
func (t *Task) AfterFind(tx *gorm.DB) error {
	if t.Status == "" {
		if t.Completed {
			t.Status = TaskStatusCompleted
		} else {
			t.Status = TaskStatusPending
		}
	}
	t.Completed = t.Status == TaskStatusCompleted
	return nil
}

// SyncCompleted mirrors status into the legacy completed flag before a write.
func (t *Task) SyncCompleted() {
	t.Completed = t.Status == TaskStatusCompleted
}
