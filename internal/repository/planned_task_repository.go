package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agency-planner/internal/model"
)

// PlannedTaskRepository manages daily plan entries.
type PlannedTaskRepository struct {
	db *gorm.DB
}

func NewPlannedTaskRepository(db *gorm.DB) *PlannedTaskRepository {
	return &PlannedTaskRepository{db: db}
}

// ListForDate returns the user's plan entries for the given day.
func (r *PlannedTaskRepository) ListForDate(ctx context.Context, userID uint, day time.Time) ([]model.PlannedTask, error) {
	var entries []model.PlannedTask
	if err := r.dayScope(ctx, userID, day).
		Preload("Task").
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list plan entries: %w", err)
	}
	return entries, nil
}

// ListIncompleteForDate returns plan entries for the day left unfinished.
func (r *PlannedTaskRepository) ListIncompleteForDate(ctx context.Context, userID uint, day time.Time) ([]model.PlannedTask, error) {
	var entries []model.PlannedTask
	if err := r.dayScope(ctx, userID, day).
		Where("completed_at IS NULL").
		Preload("Task").
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list incomplete plan entries: %w", err)
	}
	return entries, nil
}

// Create adds a single plan entry (the manual-add path).
func (r *PlannedTaskRepository) Create(ctx context.Context, entry *model.PlannedTask) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create plan entry: %w", err)
	}
	return nil
}

// CreateBatch inserts entries in one transaction, skipping task ids already
// planned for that user and day. Double-submitting an accept is therefore
// idempotent rather than an error.
func (r *PlannedTaskRepository) CreateBatch(ctx context.Context, userID uint, day time.Time, entries []model.PlannedTask) ([]model.PlannedTask, error) {
	var created []model.PlannedTask
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []model.PlannedTask
		if err := tx.
			Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
			Find(&existing).Error; err != nil {
			return fmt.Errorf("read existing plan: %w", err)
		}
		planned := make(map[uint]struct{}, len(existing))
		for _, e := range existing {
			planned[e.TaskID] = struct{}{}
		}

		for i := range entries {
			if _, ok := planned[entries[i].TaskID]; ok {
				continue
			}
			if err := tx.Create(&entries[i]).Error; err != nil {
				return fmt.Errorf("create plan entry: %w", err)
			}
			planned[entries[i].TaskID] = struct{}{}
			created = append(created, entries[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// MarkCompleted stamps a plan entry done. It scopes by user so one user
// cannot complete another's entry.
func (r *PlannedTaskRepository) MarkCompleted(ctx context.Context, userID, entryID uint, at time.Time) (*model.PlannedTask, error) {
	var entry model.PlannedTask
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, entryID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	entry.CompletedAt = &at
	if err := r.db.WithContext(ctx).Save(&entry).Error; err != nil {
		return nil, fmt.Errorf("complete plan entry: %w", err)
	}
	return &entry, nil
}

func (r *PlannedTaskRepository) dayScope(ctx context.Context, userID uint, day time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1))
}
