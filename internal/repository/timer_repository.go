package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"agency-planner/internal/model"
)

// TimerRepository reads the time-tracking subsystem's active timer marks.
type TimerRepository struct {
	db *gorm.DB
}

func NewTimerRepository(db *gorm.DB) *TimerRepository {
	return &TimerRepository{db: db}
}

// ActiveTaskIDs returns the set of task ids currently being timed by anyone.
func (r *TimerRepository) ActiveTaskIDs(ctx context.Context) (map[uint]struct{}, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&model.ActiveTimer{}).
		Distinct("task_id").
		Pluck("task_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list active timers: %w", err)
	}
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
