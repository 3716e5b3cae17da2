package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-planner/internal/model"
)

var planDay = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func TestGenerateSuggestions_RolloverBeforeDueToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	leftover := f.createTask(t, taskOpts{name: "leftover", assignee: ptrUint(f.user.ID)})
	f.planTask(t, leftover.ID, planDay.AddDate(0, 0, -1), nil)

	f.createTask(t, taskOpts{
		name:     "due today",
		assignee: ptrUint(f.user.ID),
		due:      ptrTime(planDay.Add(9 * time.Hour)),
	})

	got, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "leftover", got[0].Task.Name)
	assert.Equal(t, model.SourceRollover, got[0].Source)
	assert.Equal(t, 140, got[0].Score)
	assert.Equal(t, ReasonRollover, got[0].Reason)

	assert.Equal(t, "due today", got[1].Task.Name)
	assert.Equal(t, model.SourceDueDate, got[1].Source)
	assert.Equal(t, 100, got[1].Score)
}

func TestGenerateSuggestions_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		f.createTask(t, taskOpts{
			name:     "task",
			priority: model.PriorityHigh,
			assignee: ptrUint(f.user.ID),
		})
	}

	first, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)
	second, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSuggestions_NoDuplicateTasks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Due today, HIGH, open in an active project: eligible for three sources.
	f.createTask(t, taskOpts{
		name:     "everything at once",
		priority: model.PriorityHigh,
		assignee: ptrUint(f.user.ID),
		due:      ptrTime(planDay.Add(10 * time.Hour)),
	})

	got, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)
	require.Len(t, got, 1)
	// The earliest source claims it.
	assert.Equal(t, model.SourceDueDate, got[0].Source)
}

func TestGenerateSuggestions_CapAndOrdering(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		task := f.createTask(t, taskOpts{name: "rolled", assignee: ptrUint(f.user.ID)})
		f.planTask(t, task.ID, planDay.AddDate(0, 0, -1), nil)
	}
	for i := 0; i < 6; i++ {
		f.createTask(t, taskOpts{
			name:     "due",
			assignee: ptrUint(f.user.ID),
			due:      ptrTime(planDay.Add(time.Duration(i) * time.Hour)),
		})
	}
	for i := 0; i < 4; i++ {
		f.createTask(t, taskOpts{name: "high", priority: model.PriorityHigh, assignee: ptrUint(f.user.ID)})
	}
	for i := 0; i < 5; i++ {
		f.createTask(t, taskOpts{name: "seq", priority: model.PriorityLow, assignee: ptrUint(f.user.ID)})
	}

	got, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)

	assert.Len(t, got, 10)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}

	seen := make(map[uint]bool)
	for _, s := range got {
		assert.False(t, seen[s.Task.ID], "task %d suggested twice", s.Task.ID)
		seen[s.Task.ID] = true
	}
}

func TestGenerateSuggestions_ExcludesAlreadyPlanned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	planned := f.createTask(t, taskOpts{
		name:     "already planned",
		assignee: ptrUint(f.user.ID),
		due:      ptrTime(planDay.Add(time.Hour)),
	})
	f.planTask(t, planned.ID, planDay, nil)

	got, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerateSuggestions_ProjectSequenceByPriorityThenAge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	f.createTask(t, taskOpts{name: "old low", priority: model.PriorityLow, assignee: ptrUint(f.user.ID), created: base})
	f.createTask(t, taskOpts{name: "urgent", priority: model.PriorityUrgent, assignee: ptrUint(f.user.ID), created: base.Add(time.Hour)})
	f.createTask(t, taskOpts{name: "medium", priority: model.PriorityMedium, assignee: ptrUint(f.user.ID), created: base.Add(2 * time.Hour)})

	got, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "urgent", got[0].Task.Name)
	assert.Equal(t, "medium", got[1].Task.Name)
	assert.Equal(t, "old low", got[2].Task.Name)
	for _, s := range got {
		assert.Equal(t, model.SourceProjectSequence, s.Source)
		assert.Equal(t, 20, s.Score)
	}
}

func TestGenerateSuggestions_NoDueDateNeverDueToday(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createTask(t, taskOpts{name: "undated", assignee: ptrUint(f.user.ID)})

	got, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.SourceProjectSequence, got[0].Source)
}

func TestGenerateSuggestions_InactiveProjectExcluded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Model(&f.project).Update("status", "on_hold").Error)
	f.createTask(t, taskOpts{name: "dormant", priority: model.PriorityHigh, assignee: ptrUint(f.user.ID)})

	got, err := f.suggestions.GenerateSuggestions(ctx, f.user.ID, planDay)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAcceptSuggestions_CreatesEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.createTask(t, taskOpts{name: "a", assignee: ptrUint(f.user.ID)})
	b := f.createTask(t, taskOpts{name: "b", assignee: ptrUint(f.user.ID)})

	created, err := f.suggestions.AcceptSuggestions(ctx, f.user.ID, planDay,
		[]uint{a.ID, b.ID},
		[]string{model.SourceDueDate, model.SourceProjectSequence})
	require.NoError(t, err)
	require.Len(t, created, 2)

	for _, entry := range created {
		assert.True(t, entry.Suggested)
		assert.True(t, entry.Accepted)
		assert.Equal(t, model.SourceSystem, entry.SuggestedBy)
		assert.Equal(t, f.user.ID, entry.UserID)
	}
	assert.Equal(t, model.SourceDueDate, created[0].Source)
	assert.Equal(t, model.SourceProjectSequence, created[1].Source)
}

func TestAcceptSuggestions_DoubleSubmitIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	task := f.createTask(t, taskOpts{name: "a", assignee: ptrUint(f.user.ID)})

	first, err := f.suggestions.AcceptSuggestions(ctx, f.user.ID, planDay,
		[]uint{task.ID}, []string{model.SourceDueDate})
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := f.suggestions.AcceptSuggestions(ctx, f.user.ID, planDay,
		[]uint{task.ID}, []string{model.SourceDueDate})
	require.NoError(t, err)
	assert.Empty(t, second)

	var count int64
	require.NoError(t, f.db.Model(&model.PlannedTask{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAcceptSuggestions_RejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.suggestions.AcceptSuggestions(ctx, f.user.ID, planDay, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.suggestions.AcceptSuggestions(ctx, f.user.ID, planDay,
		[]uint{1, 2}, []string{model.SourceDueDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.suggestions.AcceptSuggestions(ctx, f.user.ID, planDay,
		[]uint{1}, []string{"guesswork"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
