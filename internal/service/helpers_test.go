package service

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agency-planner/internal/model"
	"agency-planner/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "planner_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Project{},
		&model.Task{},
		&model.PlannedTask{},
		&model.Notification{},
		&model.ActiveTimer{},
	))
	return db
}

func quietLogger() *logrus.Entry {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return logrus.NewEntry(log)
}

// fixture seeds one user with one client and one active project, and exposes
// the repositories and services under test.
type fixture struct {
	db      *gorm.DB
	user    model.User
	client  model.Client
	project model.Project

	taskRepo         *repository.TaskRepository
	planRepo         *repository.PlannedTaskRepository
	notificationRepo *repository.NotificationRepository
	timerRepo        *repository.TimerRepository

	suggestions *SuggestionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	f := &fixture{
		db:               db,
		taskRepo:         repository.NewTaskRepository(db),
		planRepo:         repository.NewPlannedTaskRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		timerRepo:        repository.NewTimerRepository(db),
	}
	f.suggestions = NewSuggestionService(f.taskRepo, f.planRepo, DefaultSuggestionConfig())

	f.user = model.User{Name: "Ada", Email: "ada@example.com", APIToken: "ada-token"}
	require.NoError(t, db.Create(&f.user).Error)

	f.client = model.Client{Name: "Acme"}
	require.NoError(t, db.Create(&f.client).Error)

	f.project = model.Project{ClientID: f.client.ID, Name: "Website", Status: model.ProjectStatusActive}
	require.NoError(t, db.Create(&f.project).Error)

	return f
}

func (f *fixture) reminderService(now time.Time, notifier Notifier) *ReminderService {
	return NewReminderService(
		f.taskRepo, f.timerRepo, f.notificationRepo, notifier,
		DefaultReminderConfig(), quietLogger(),
	).WithClock(func() time.Time { return now })
}

type taskOpts struct {
	name     string
	status   string
	priority string
	due      *time.Time
	assignee *uint
	created  time.Time
}

func (f *fixture) createTask(t *testing.T, opts taskOpts) model.Task {
	t.Helper()
	if opts.status == "" {
		opts.status = model.TaskStatusTodo
	}
	if opts.priority == "" {
		opts.priority = model.PriorityMedium
	}
	task := model.Task{
		Name:       opts.name,
		Status:     opts.status,
		Priority:   opts.priority,
		DueDate:    opts.due,
		AssigneeID: opts.assignee,
		ProjectID:  f.project.ID,
		ClientID:   f.client.ID,
	}
	if !opts.created.IsZero() {
		task.CreatedAt = opts.created
	}
	require.NoError(t, f.db.Create(&task).Error)
	return task
}

func (f *fixture) planTask(t *testing.T, taskID uint, day time.Time, completedAt *time.Time) model.PlannedTask {
	t.Helper()
	entry := model.PlannedTask{
		TaskID:      taskID,
		UserID:      f.user.ID,
		Date:        day,
		Source:      model.SourceManual,
		Accepted:    true,
		CompletedAt: completedAt,
	}
	require.NoError(t, f.db.Create(&entry).Error)
	return entry
}

func ptrUint(v uint) *uint           { return &v }
func ptrTime(v time.Time) *time.Time { return &v }
