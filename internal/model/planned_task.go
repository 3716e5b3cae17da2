package model

import "time"

// How a task ended up on someone's daily plan.
const (
	SourceRollover        = "rollover"
	SourceDueDate         = "due_date"
	SourcePriority        = "priority"
	SourceProjectSequence = "project_sequence"
	SourceManual          = "manual"
	SourceSystem          = "system"
)

// PlannedTask binds one task to one user and one calendar date. It is the
// unit the UI reads for "today's plan"; the same task may be planned for
// several distinct dates.
type PlannedTask struct {
	ID          uint      `gorm:"primaryKey"`
	TaskID      uint      `gorm:"index"`
	UserID      uint      `gorm:"index:idx_planned_user_date"`
	Date        time.Time `gorm:"index:idx_planned_user_date"`
	Source      string
	Suggested   bool `gorm:"default:false"`
	Accepted    bool `gorm:"default:false"`
	SuggestedBy string
	CompletedAt *time.Time
	CreatedAt   time.Time

	Task Task `gorm:"foreignKey:TaskID"`
}

// KnownSource reports whether s is one of the planner's source labels.
func KnownSource(s string) bool {
	switch s {
	case SourceRollover, SourceDueDate, SourcePriority, SourceProjectSequence, SourceManual, SourceSystem:
		return true
	}
	return false
}
