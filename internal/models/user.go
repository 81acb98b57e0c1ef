package models

import "time"

type User struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	StudentID string    `gorm:"type:varchar(12);uniqueIndex;not null" json:"student_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	OwnedTasks  []Task       `gorm:"foreignKey:OwnerID" json:"-"`
	Memberships []TeamMember `gorm:"foreignKey:UserID" json:"-"`
}
