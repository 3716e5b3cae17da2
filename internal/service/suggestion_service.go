package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"agency-planner/internal/model"
	"agency-planner/internal/repository"
)

// ErrInvalidInput marks caller mistakes that should surface as a client error.
var ErrInvalidInput = errors.New("invalid input")

// Suggestion is one ranked entry of a proposed daily plan.
type Suggestion struct {
	Task   model.Task `json:"task"`
	Source string     `json:"source"`
	Score  int        `json:"score"`
	Reason string     `json:"reason"`
}

// SuggestionService assembles a ranked daily plan from four candidate
// sources and persists accepted picks.
type SuggestionService struct {
	taskRepo *repository.TaskRepository
	planRepo *repository.PlannedTaskRepository
	cfg      SuggestionConfig
}

func NewSuggestionService(taskRepo *repository.TaskRepository, planRepo *repository.PlannedTaskRepository, cfg SuggestionConfig) *SuggestionService {
	return &SuggestionService{taskRepo: taskRepo, planRepo: planRepo, cfg: cfg}
}

// GenerateSuggestions proposes up to MaxSuggestions tasks for the user's day.
// It is read-only: calling it twice without intervening writes returns the
// same ordered result.
func (s *SuggestionService) GenerateSuggestions(ctx context.Context, userID uint, date time.Time) ([]Suggestion, error) {
	day := StartOfDay(date)

	planned, err := s.planRepo.ListForDate(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	// Tasks already on today's plan, plus tasks claimed by an earlier source
	// in this run. A task surfaces through at most one source.
	claimed := make(map[uint]struct{}, len(planned))
	for _, entry := range planned {
		claimed[entry.TaskID] = struct{}{}
	}

	var out []Suggestion
	add := func(task model.Task, source string, score int, reason string) {
		claimed[task.ID] = struct{}{}
		out = append(out, Suggestion{Task: task, Source: source, Score: score, Reason: reason})
	}

	rollovers, err := s.planRepo.ListIncompleteForDate(ctx, userID, day.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}
	taken := 0
	for _, entry := range rollovers {
		if taken >= s.cfg.RolloverLimit {
			break
		}
		if _, ok := claimed[entry.TaskID]; ok {
			continue
		}
		add(entry.Task, model.SourceRollover, s.cfg.RolloverScore, ReasonRollover)
		taken++
	}

	due, err := s.taskRepo.ListDueOn(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	taken = 0
	for _, task := range due {
		if taken >= s.cfg.DueTodayLimit {
			break
		}
		if _, ok := claimed[task.ID]; ok {
			continue
		}
		add(task, model.SourceDueDate, s.cfg.DueTodayScore, ReasonDueToday)
		taken++
	}

	high, err := s.taskRepo.ListOpenHighPriority(ctx, userID)
	if err != nil {
		return nil, err
	}
	taken = 0
	for _, task := range high {
		if taken >= s.cfg.HighPriorityLimit {
			break
		}
		if _, ok := claimed[task.ID]; ok {
			continue
		}
		add(task, model.SourcePriority, s.cfg.HighPriorityScore, ReasonHighPriority)
		taken++
	}

	sequence, err := s.taskRepo.ListOpenInActiveProjects(ctx, userID)
	if err != nil {
		return nil, err
	}
	taken = 0
	for _, task := range sequence {
		if taken >= s.cfg.ProjectSequenceLimit {
			break
		}
		if _, ok := claimed[task.ID]; ok {
			continue
		}
		add(task, model.SourceProjectSequence, s.cfg.ProjectSequenceScore, ReasonProjectSequence)
		taken++
	}

	// Stable: ties keep source order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > s.cfg.MaxSuggestions {
		out = out[:s.cfg.MaxSuggestions]
	}
	return out, nil
}

// AcceptSuggestions persists the picked (taskId, source) pairs as the user's
// plan for the day. Writes happen in one transaction; task ids already
// planned for that day are skipped.
func (s *SuggestionService) AcceptSuggestions(ctx context.Context, userID uint, date time.Time, taskIDs []uint, sources []string) ([]model.PlannedTask, error) {
	if len(taskIDs) == 0 {
		return nil, fmt.Errorf("%w: no tasks given", ErrInvalidInput)
	}
	if len(sources) != len(taskIDs) {
		return nil, fmt.Errorf("%w: %d tasks but %d sources", ErrInvalidInput, len(taskIDs), len(sources))
	}

	day := StartOfDay(date)
	entries := make([]model.PlannedTask, 0, len(taskIDs))
	for i, taskID := range taskIDs {
		source := sources[i]
		if !model.KnownSource(source) {
			return nil, fmt.Errorf("%w: unknown source %q", ErrInvalidInput, source)
		}
		entries = append(entries, model.PlannedTask{
			TaskID:      taskID,
			UserID:      userID,
			Date:        day,
			Source:      source,
			Suggested:   true,
			Accepted:    true,
			SuggestedBy: model.SourceSystem,
		})
	}

	return s.planRepo.CreateBatch(ctx, userID, day, entries)
}
