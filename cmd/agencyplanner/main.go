package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"agency-planner/internal/config"
	"agency-planner/internal/notify"
	"agency-planner/internal/repository"
	"agency-planner/internal/rest"
	"agency-planner/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := setupLogger()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("db")
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	planRepo := repository.NewPlannedTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	timerRepo := repository.NewTimerRepository(db)

	var notifier service.Notifier
	if cfg.TelegramToken != "" {
		telegram, err := notify.NewTelegramNotifier(cfg.TelegramToken, userRepo)
		if err != nil {
			log.WithError(err).Fatal("telegram")
		}
		notifier = telegram
	}

	suggestionSvc := service.NewSuggestionService(taskRepo, planRepo, service.DefaultSuggestionConfig())
	planSvc := service.NewPlanService(taskRepo, planRepo)
	reminderSvc := service.NewReminderService(
		taskRepo, timerRepo, notificationRepo, notifier,
		service.DefaultReminderConfig(), logrus.NewEntry(log),
	)

	router := rest.NewRouter(rest.Deps{
		Log:           log,
		UserRepo:      userRepo,
		SuggestionSvc: suggestionSvc,
		PlanSvc:       planSvc,
		ReminderSvc:   reminderSvc,
		CronSecret:    cfg.CronSecret,
	})

	scheduler := service.NewSchedulerService(time.Local)
	if _, err := scheduler.ScheduleInterval(cfg.SweepInterval, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := reminderSvc.RunSweep(jobCtx); err != nil {
			log.WithError(err).Error("scheduled sweep failed")
		}
	}); err != nil {
		log.WithError(err).Fatal("schedule sweep")
	}
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("agency planner started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("http server")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
	log.Info("shutdown complete")
}

func setupLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("ENV") == "prod" {
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
