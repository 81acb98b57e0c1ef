package models

import "time"

type Team struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatorID   uint64    `gorm:"not null" json:"creator_id"`
	TeamCode    string    `gorm:"type:varchar(6);uniqueIndex;not null" json:"team_code"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	Creator User         `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Members []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
}
