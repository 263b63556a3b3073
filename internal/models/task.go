package model

import "time"

// Task is a plan: a top-level goal container owning a forest of milestones.
// Invariant: IsPublic is true exactly when ShareableLink is non-nil.
type Task struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	UserID        string    `gorm:"size:36;index;not null" json:"user_id"`
	IsPublic      bool      `gorm:"not null;default:false" json:"is_public"`
	ShareableLink *string   `gorm:"uniqueIndex" json:"shareable_link,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Milestones []Milestone `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE" json:"milestones,omitempty"`
}
