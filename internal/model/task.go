package model

import "time"

// Task statuses as stored by the portal. Tasks are owned and mutated by other
// subsystems; the planner only reads them.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusDone       = "done"
)

// Task priorities, lowest to highest.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityUrgent   = "urgent"
	PriorityCritical = "critical"
)

// Task represents a single work item in the portal.
type Task struct {
	ID         uint `gorm:"primaryKey"`
	Name       string
	Status     string `gorm:"index;default:todo"`
	Priority   string `gorm:"index;default:medium"`
	DueDate    *time.Time
	AssigneeID *uint `gorm:"index"`
	ProjectID  uint  `gorm:"index"`
	ClientID   uint  `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Project Project `gorm:"foreignKey:ProjectID"`
	Client  Client  `gorm:"foreignKey:ClientID"`
}

// IsClosed reports whether the task needs no further attention.
func (t Task) IsClosed() bool {
	return t.Status == TaskStatusCompleted || t.Status == TaskStatusDone
}
