package service

import (
	"strings"
	"time"

	"agency-planner/internal/model"
)

// SuggestionConfig carries the per-source score and cap tables. Sources are
// not weighted per task: membership in a source is the priority signal, so
// each source contributes a flat score.
type SuggestionConfig struct {
	RolloverScore        int
	DueTodayScore        int
	HighPriorityScore    int
	ProjectSequenceScore int

	RolloverLimit        int
	DueTodayLimit        int
	HighPriorityLimit    int
	ProjectSequenceLimit int

	// MaxSuggestions caps the final ranked plan.
	MaxSuggestions int
}

func DefaultSuggestionConfig() SuggestionConfig {
	return SuggestionConfig{
		RolloverScore:        140,
		DueTodayScore:        100,
		HighPriorityScore:    50,
		ProjectSequenceScore: 20,
		RolloverLimit:        5,
		DueTodayLimit:        5,
		HighPriorityLimit:    3,
		ProjectSequenceLimit: 4,
		MaxSuggestions:       10,
	}
}

// Reason strings surfaced with each suggestion.
const (
	ReasonRollover        = "Incomplete from yesterday"
	ReasonDueToday        = "Due today"
	ReasonHighPriority    = "High priority task"
	ReasonProjectSequence = "Next task in active project"
)

// ReminderConfig carries the sweep's cadence tables.
type ReminderConfig struct {
	// Intervals maps task priority to the minimum gap between reminders
	// for the same (task, user) pair.
	Intervals map[string]time.Duration

	// DefaultInterval applies to unmapped priorities.
	DefaultInterval time.Duration

	// LedgerWindow bounds how far back the rate-limit ledger reads. It must
	// cover the largest interval.
	LedgerWindow time.Duration

	// SendTimeout bounds each individual emission so one stuck sink call
	// cannot stall the whole sweep.
	SendTimeout time.Duration
}

func DefaultReminderConfig() ReminderConfig {
	return ReminderConfig{
		Intervals: map[string]time.Duration{
			model.PriorityUrgent:   5 * time.Minute,
			model.PriorityCritical: 5 * time.Minute,
			model.PriorityHigh:     30 * time.Minute,
			model.PriorityMedium:   120 * time.Minute,
			model.PriorityLow:      480 * time.Minute,
		},
		DefaultInterval: 480 * time.Minute,
		LedgerWindow:    8 * time.Hour,
		SendTimeout:     10 * time.Second,
	}
}

// Interval returns the minimum reminder gap for a task priority.
func (c ReminderConfig) Interval(priority string) time.Duration {
	if d, ok := c.Intervals[priority]; ok {
		return d
	}
	return c.DefaultInterval
}

// NotificationPriorityFor collapses the five task priorities into the three
// notification tiers.
func NotificationPriorityFor(taskPriority string) string {
	switch taskPriority {
	case model.PriorityUrgent, model.PriorityCritical:
		return model.NotificationPriorityUrgent
	case model.PriorityHigh:
		return model.NotificationPriorityHigh
	default:
		return model.NotificationPriorityNormal
	}
}

// StartOfDay truncates t to calendar-day resolution in its own location.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// HumanizeStatus turns "in_progress" into "In Progress".
func HumanizeStatus(status string) string {
	words := strings.Split(status, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
