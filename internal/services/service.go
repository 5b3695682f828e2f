package services

import (
	"gearguard/config"
	"gearguard/internal/database"
	"gearguard/internal/events"
	"gearguard/internal/repositories"
)

type Service struct {
	Transaction   *TransactionService
	Auth          *AuthService
	Scheduler     *SchedulerService
	JobLock       *JobLockService
	BoardCache    *BoardCacheService
	AlertDispatch *AlertDispatchService
}

func New(db database.DB, cfg config.Config, eventBus *events.EventBus) Service {
	transactionService := NewTransactionService(db)
	repos := repositories.New(db)
	jobLockService := NewJobLockService(db.Cache.Session)

	var publisher NotificationPublisher
	if eventBus != nil {
		publisher = eventBus
	}

	return Service{
		Transaction: transactionService,
		Auth:        NewAuthService(cfg),
		Scheduler:   NewSchedulerService(cfg.Location(), cfg.AlertScheduleTime),
		JobLock:     jobLockService,
		BoardCache:  NewBoardCacheService(db.Cache.General),
		AlertDispatch: NewAlertDispatchService(
			repos,
			transactionService,
			jobLockService,
			publisher,
			cfg.Location(),
		),
	}
}
