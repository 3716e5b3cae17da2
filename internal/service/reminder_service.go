package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"agency-planner/internal/model"
	"agency-planner/internal/repository"
)

// NotificationSink persists reminder notifications and answers the sweep's
// rate-limit lookups from the same history.
type NotificationSink interface {
	Create(ctx context.Context, n *model.Notification) error
	LastReminderIndex(ctx context.Context, since time.Time) (map[repository.ReminderKey]time.Time, error)
}

// Notifier pushes a reminder to an external channel. Delivery is best-effort;
// the persisted notification row is the record.
type Notifier interface {
	Send(ctx context.Context, userID uint, title, message string) error
}

// SweepResult reports one sweep execution.
type SweepResult struct {
	TasksChecked  int `json:"tasksChecked"`
	RemindersSent int `json:"remindersSent"`
}

// ReminderService nags assignees about unattended tasks at a cadence
// proportional to priority. It keeps no state of its own: every sweep
// re-derives its decisions from the task store, the active timer marks and
// the notification history.
type ReminderService struct {
	taskRepo  *repository.TaskRepository
	timerRepo *repository.TimerRepository
	sink      NotificationSink
	notifier  Notifier // nil disables external delivery
	cfg       ReminderConfig
	log       *logrus.Entry
	now       func() time.Time
}

func NewReminderService(taskRepo *repository.TaskRepository, timerRepo *repository.TimerRepository, sink NotificationSink, notifier Notifier, cfg ReminderConfig, log *logrus.Entry) *ReminderService {
	return &ReminderService{
		taskRepo:  taskRepo,
		timerRepo: timerRepo,
		sink:      sink,
		notifier:  notifier,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// WithClock overrides the service's time source.
func (s *ReminderService) WithClock(now func() time.Time) *ReminderService {
	s.now = now
	return s
}

// RunSweep evaluates every eligible task once. A failed emission is logged
// and skipped; the sweep never aborts part-way.
func (s *ReminderService) RunSweep(ctx context.Context) (SweepResult, error) {
	const op = "service.ReminderService.RunSweep"
	now := s.now()
	log := s.log.WithField("operation", op)

	candidates, err := s.taskRepo.ListReminderCandidates(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	activeTasks, err := s.timerRepo.ActiveTaskIDs(ctx)
	if err != nil {
		return SweepResult{}, err
	}

	lastSent, err := s.sink.LastReminderIndex(ctx, now.Add(-s.cfg.LedgerWindow))
	if err != nil {
		return SweepResult{}, err
	}

	result := SweepResult{TasksChecked: len(candidates)}
	for _, task := range candidates {
		if _, timing := activeTasks[task.ID]; timing {
			// The assignee is already working it.
			continue
		}

		assignee := *task.AssigneeID
		key := repository.ReminderKey{TaskID: task.ID, UserID: assignee}
		if last, ok := lastSent[key]; ok && now.Sub(last) < s.cfg.Interval(task.Priority) {
			continue
		}

		if err := s.sendReminder(ctx, now, task, assignee); err != nil {
			log.WithError(err).WithField("task_id", task.ID).Warn("reminder not sent")
			continue
		}
		result.RemindersSent++
	}

	log.WithFields(logrus.Fields{
		"tasks_checked":  result.TasksChecked,
		"reminders_sent": result.RemindersSent,
	}).Info("reminder sweep finished")
	return result, nil
}

func (s *ReminderService) sendReminder(ctx context.Context, now time.Time, task model.Task, userID uint) error {
	title, message := composeReminder(task, now)

	metadata, err := json.Marshal(model.ReminderMetadata{
		TaskID:       task.ID,
		ReminderType: model.ReminderTypePriority,
	})
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, s.cfg.SendTimeout)
	defer cancel()

	notification := model.Notification{
		UserID:   userID,
		Type:     model.NotificationTypeReminder,
		Category: model.NotificationCategoryTask,
		Priority: NotificationPriorityFor(task.Priority),
		Title:    title,
		Message:  message,
		Link:     fmt.Sprintf("/tasks/%d", task.ID),
		Metadata: string(metadata),
	}
	if err := s.sink.Create(sendCtx, &notification); err != nil {
		return err
	}

	if s.notifier != nil {
		if err := s.notifier.Send(sendCtx, userID, title, message); err != nil {
			// The durable row exists; the push channel is advisory.
			s.log.WithError(err).WithField("user_id", userID).Warn("external delivery failed")
		}
	}
	return nil
}

// composeReminder builds the notification title and body for a task.
func composeReminder(task model.Task, now time.Time) (title, message string) {
	overdue := task.DueDate != nil && task.DueDate.Before(now)

	if overdue {
		title = fmt.Sprintf("%s OVERDUE: %s", priorityMarker(task.Priority), task.Name)
	} else {
		title = fmt.Sprintf("%s Reminder: %s", priorityMarker(task.Priority), task.Name)
	}

	message = fmt.Sprintf("%s · %s · %s", task.Client.Name, task.Project.Name, HumanizeStatus(task.Status))
	if overdue {
		days := daysOverdue(*task.DueDate, now)
		message += fmt.Sprintf(" · %d %s overdue", days, pluralDays(days))
	}
	return title, message
}

// daysOverdue counts whole days late, rounding any partial day up.
func daysOverdue(due, now time.Time) int {
	return int(math.Ceil(now.Sub(due).Hours() / 24))
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

func priorityMarker(priority string) string {
	switch priority {
	case model.PriorityUrgent, model.PriorityCritical:
		return "🔴"
	case model.PriorityHigh:
		return "🟠"
	case model.PriorityMedium:
		return "🟡"
	default:
		return "🟢"
	}
}
