package model

import (
	"time"

	"plan-tracker.com/plan-tracker/internal/constants"
)

// Milestone is a trackable unit of work inside a plan. ParentID forms a
// self-referential forest: nil marks a root. Children is a derived view
// rebuilt at read time by grouping rows on ParentID; it is never stored.
type Milestone struct {
	ID          string                    `gorm:"primaryKey;size:36" json:"id"`
	Title       string                    `gorm:"not null" json:"title"`
	Description string                    `json:"description"`
	Deadline    *time.Time                `json:"deadline,omitempty"`
	TaskID      string                    `gorm:"size:36;index;not null" json:"task_id"`
	ParentID    *string                   `gorm:"size:36;index" json:"parent_id,omitempty"`
	Status      constants.MilestoneStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`

	Children []Milestone `gorm:"-" json:"children,omitempty"`
}
