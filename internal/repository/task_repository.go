package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"agency-planner/internal/model"
)

// priorityRankSQL orders rows highest priority first.
const priorityRankSQL = "CASE tasks.priority " +
	"WHEN 'critical' THEN 0 WHEN 'urgent' THEN 1 WHEN 'high' THEN 2 " +
	"WHEN 'medium' THEN 3 ELSE 4 END"

// TaskRepository reads work items for the planner. Task rows are owned by the
// portal's CRUD side; nothing here mutates them.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) FindByID(ctx context.Context, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListDueOn returns the user's unfinished tasks due within the given day.
func (r *TaskRepository) ListDueOn(ctx context.Context, userID uint, day time.Time) ([]model.Task, error) {
	next := day.AddDate(0, 0, 1)
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Where("assignee_id = ? AND due_date >= ? AND due_date < ? AND status <> ?",
			userID, day, next, model.TaskStatusCompleted).
		Order("due_date ASC, created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list due tasks: %w", err)
	}
	return tasks, nil
}

// ListOpenHighPriority returns the user's HIGH tasks in active projects.
func (r *TaskRepository) ListOpenHighPriority(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.openInActiveProjects(ctx, userID).
		Where("tasks.priority = ?", model.PriorityHigh).
		Order("tasks.created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list high priority tasks: %w", err)
	}
	return tasks, nil
}

// ListOpenInActiveProjects returns the user's open tasks in active projects,
// highest priority first, oldest first within a priority.
func (r *TaskRepository) ListOpenInActiveProjects(ctx context.Context, userID uint) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.openInActiveProjects(ctx, userID).
		Order(priorityRankSQL + ", tasks.created_at ASC").
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list open tasks: %w", err)
	}
	return tasks, nil
}

// ListReminderCandidates returns every open, assigned task with a standard
// priority, with project and client preloaded for message composition.
func (r *TaskRepository) ListReminderCandidates(ctx context.Context) ([]model.Task, error) {
	priorities := []string{
		model.PriorityLow, model.PriorityMedium, model.PriorityHigh,
		model.PriorityUrgent, model.PriorityCritical,
	}
	var tasks []model.Task
	if err := r.db.WithContext(ctx).
		Preload("Project").
		Preload("Client").
		Where("status NOT IN ? AND assignee_id IS NOT NULL AND priority IN ?",
			[]string{model.TaskStatusCompleted, model.TaskStatusDone}, priorities).
		Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list reminder candidates: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) openInActiveProjects(ctx context.Context, userID uint) *gorm.DB {
	return r.db.WithContext(ctx).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.assignee_id = ? AND tasks.status IN ? AND projects.status IN ?",
			userID,
			[]string{model.TaskStatusTodo, model.TaskStatusInProgress},
			[]string{model.ProjectStatusInProgress, model.ProjectStatusActive})
}
