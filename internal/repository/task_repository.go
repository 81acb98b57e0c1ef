package repository

import (
	"github.com/campuscollab/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// ListVisibleToUser returns the union of tasks the user owns, is assigned
// to, or that belong to one of the user's teams. A single scan with an OR
// condition keeps the result deduplicated.
func (r *GormTaskRepository) ListVisibleToUser(userID uint64) ([]models.Task, error) {
	var tasks []models.Task

	teamSubQuery := r.db.Model(&models.TeamMember{}).
		Select("team_id").
		Where("user_id = ?", userID)

	err := r.db.
		Where("owner_id = ? OR assignee_id = ? OR team_id IN (?)", userID, userID, teamSubQuery).
		Order("created_at DESC").
		Preload("Assignee").
		Preload("Team").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}

	return tasks, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task, reporting gorm.ErrRecordNotFound when no row matched
func (r *GormTaskRepository) Delete(id uint64) error {
	result := r.db.Delete(&models.Task{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
