package model

import "time"

// ActiveTimer marks a task the user is currently timing. Start/stop mechanics
// belong to the time-tracking subsystem; the planner only reads presence.
type ActiveTimer struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"index"`
	TaskID    uint `gorm:"index"`
	StartedAt time.Time
}
