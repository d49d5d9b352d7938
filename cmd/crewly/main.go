package main

import (
	"github.com/crewly-dev/crewly/db"
	"github.com/crewly-dev/crewly/internal/auth"
	"github.com/crewly-dev/crewly/internal/config"
	"github.com/crewly-dev/crewly/internal/handlers"
	"github.com/crewly-dev/crewly/internal/notify"
	"github.com/crewly-dev/crewly/internal/router"
	"github.com/crewly-dev/crewly/internal/scheduler"
	"github.com/crewly-dev/crewly/internal/workflow"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
	defer func() {
		if err := logger.Sync(); err != nil {
			zap.L().Debug("failed to sync logger", zap.Error(err))
		}
	}()

	cfg := config.Load()

	if err := auth.InitJWTSecret(); err != nil {
		logger.Fatal("failed to initialize JWT secret", zap.Error(err))
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := db.MigrateDatabase(); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	notifier := notify.NewService(db.DB)
	sweeper := workflow.NewSweepService(db.DB, notifier)

	sched := scheduler.New(sweeper)
	if err := sched.Start(cfg.SweepInterval); err != nil {
		logger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	r := router.NewRouter(cfg.AllowedOrigins, router.Handlers{
		Auth:          handlers.NewAuthHandler(db.DB),
		Projects:      handlers.NewProjectHandler(workflow.NewProjectService(db.DB, notifier)),
		Members:       handlers.NewMemberHandler(workflow.NewMemberService(db.DB, notifier)),
		Invites:       handlers.NewInviteHandler(workflow.NewInviteService(db.DB, notifier)),
		Tasks:         handlers.NewTaskHandler(workflow.NewTaskService(db.DB)),
		Notifications: handlers.NewNotificationHandler(workflow.NewNotificationService(db.DB)),
		Sweep:         handlers.NewSweepHandler(sweeper, cfg.CronSecret),
	})

	logger.Info("starting server", zap.String("port", cfg.Port))

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
