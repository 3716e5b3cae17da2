package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agency-planner/internal/model"
)

// ReminderKey identifies a (task, user) pair in the rate-limit ledger.
type ReminderKey struct {
	TaskID uint
	UserID uint
}

// NotificationRepository appends to the portal's notification history and
// answers the sweep's "when did I last remind (task, user)" question from it.
// There is no separate last-sent table; the history is the state.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if err := r.db.WithContext(ctx).Create(n).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

// LastReminderIndex returns the most recent priority-reminder time per
// (task, user) pair among notifications created since the given instant.
func (r *NotificationRepository) LastReminderIndex(ctx context.Context, since time.Time) (map[ReminderKey]time.Time, error) {
	var rows []model.Notification
	if err := r.db.WithContext(ctx).
		Where("type = ? AND created_at >= ?", model.NotificationTypeReminder, since).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recent reminders: %w", err)
	}

	index := make(map[ReminderKey]time.Time, len(rows))
	for _, n := range rows {
		meta, ok := n.ReminderMeta()
		if !ok || meta.ReminderType != model.ReminderTypePriority {
			continue
		}
		key := ReminderKey{TaskID: meta.TaskID, UserID: n.UserID}
		if last, ok := index[key]; !ok || n.CreatedAt.After(last) {
			index[key] = n.CreatedAt
		}
	}
	return index, nil
}

// ListForUser returns the user's notifications, newest first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]model.Notification, error) {
	var rows []model.Notification
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return rows, nil
}
