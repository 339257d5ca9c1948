package router

import (
	"github.com/oksasatya/task-manager-pro/internal/application"
	"github.com/oksasatya/task-manager-pro/internal/container"
	"github.com/oksasatya/task-manager-pro/internal/infrastructure/mongodb"
	handlers "github.com/oksasatya/task-manager-pro/internal/interface/http"
	"github.com/oksasatya/task-manager-pro/internal/router/modules"
)

// InitModules builds the repositories, services, and handlers and
// registers every feature module with the router registry. It returns
// the notifier so the caller can hand it to the reminder scheduler.
// Call once during application startup.
func InitModules(r *Registry) *application.Notifier {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetMongo()

	users := mongodb.NewUserRepository(db)
	tasks := mongodb.NewTaskRepository(db)
	notifications := mongodb.NewNotificationRepository(db)
	settings := mongodb.NewSettingsRepository(db)

	notifier := application.NewNotifier(notifications, tasks, users, settings, container.GetHub(), logger)

	userSvc := &application.UserService{
		Users:         users,
		Tasks:         tasks,
		Notifications: notifications,
		Settings:      settings,
		Notifier:      notifier,
		JWT:           container.GetJWT(),
		GCS:           container.GetGCS(),
		GCSBucket:     cfg.GCSBucket,
		Redis:         container.GetRedis(),
		Logger:        logger,
		ES:            container.GetES(),
		ESUsersIndex:  cfg.ESUsersIndex,
	}
	if pub := container.GetRabbitPub(); pub != nil {
		userSvc.Mail = pub
	}
	taskSvc := &application.TaskService{Tasks: tasks, Notifier: notifier, Logger: logger}

	jwt := container.GetJWT()
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(userSvc, notifier, logger, cfg.CookieDomain, cfg.CookieSecure), jwt))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), jwt))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(taskSvc, logger), jwt))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(notifications, notifier, logger), jwt))
	r.Add(modules.NewSettingsModule(handlers.NewSettingsHandler(settings, logger), jwt))
	r.Add(modules.NewRealtimeModule(container.GetHub()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}

	return notifier
}
