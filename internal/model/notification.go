package model

import (
	"encoding/json"
	"time"
)

// Notification kinds and tiers.
const (
	NotificationTypeReminder = "reminder"

	NotificationCategoryTask = "task"

	NotificationPriorityUrgent = "urgent"
	NotificationPriorityHigh   = "high"
	NotificationPriorityNormal = "normal"
)

// ReminderTypePriority tags reminder notifications emitted by the sweep; the
// notification history filtered by this tag is the sweep's rate-limit ledger.
const ReminderTypePriority = "priority_reminder"

// Notification is an outbound message persisted for the portal inbox.
// Rows are append-only from the planner's point of view.
type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index"`
	Type      string `gorm:"index"`
	Category  string
	Priority  string
	Title     string
	Message   string
	Link      string
	Metadata  string // JSON blob
	ReadAt    *time.Time
	CreatedAt time.Time `gorm:"index"`
}

// ReminderMetadata is the metadata payload carried by sweep reminders.
type ReminderMetadata struct {
	TaskID       uint   `json:"taskId"`
	ReminderType string `json:"reminderType"`
}

// ReminderMeta decodes the metadata blob; ok is false when the notification
// carries no well-formed reminder payload.
func (n Notification) ReminderMeta() (ReminderMetadata, bool) {
	var meta ReminderMetadata
	if err := json.Unmarshal([]byte(n.Metadata), &meta); err != nil {
		return ReminderMetadata{}, false
	}
	return meta, meta.ReminderType != ""
}
