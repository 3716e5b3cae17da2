package service

import (
	"context"
	"fmt"
	"time"

	"agency-planner/internal/model"
	"agency-planner/internal/repository"
)

// PlanService covers the plain plan-entry operations around the suggestion
// engine: manual adds, reads, completion.
type PlanService struct {
	taskRepo *repository.TaskRepository
	planRepo *repository.PlannedTaskRepository
}

func NewPlanService(taskRepo *repository.TaskRepository, planRepo *repository.PlannedTaskRepository) *PlanService {
	return &PlanService{taskRepo: taskRepo, planRepo: planRepo}
}

// ListDay returns the user's plan for the given day.
func (s *PlanService) ListDay(ctx context.Context, userID uint, date time.Time) ([]model.PlannedTask, error) {
	return s.planRepo.ListForDate(ctx, userID, StartOfDay(date))
}

// AddManual puts a task on the user's plan outside the suggestion flow.
func (s *PlanService) AddManual(ctx context.Context, userID, taskID uint, date time.Time) (*model.PlannedTask, error) {
	task, err := s.taskRepo.FindByID(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("%w: task %d not found", ErrInvalidInput, taskID)
	}
	if task.IsClosed() {
		return nil, fmt.Errorf("%w: task %d is already closed", ErrInvalidInput, taskID)
	}

	entry := model.PlannedTask{
		TaskID:   taskID,
		UserID:   userID,
		Date:     StartOfDay(date),
		Source:   model.SourceManual,
		Accepted: true,
	}
	if err := s.planRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// Complete stamps a plan entry done.
func (s *PlanService) Complete(ctx context.Context, userID, entryID uint, at time.Time) (*model.PlannedTask, error) {
	return s.planRepo.MarkCompleted(ctx, userID, entryID, at)
}
