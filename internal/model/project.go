package model

import "time"

// Project statuses relevant to planning. A project in any other status
// (on hold, archived, ...) keeps its tasks out of suggestion pools.
const (
	ProjectStatusActive     = "active"
	ProjectStatusInProgress = "in_progress"
)

// Project groups tasks under a client engagement.
type Project struct {
	ID        uint `gorm:"primaryKey"`
	ClientID  uint `gorm:"index"`
	Name      string
	Status    string `gorm:"index;default:active"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Tasks []Task `gorm:"foreignKey:ProjectID"`
}
