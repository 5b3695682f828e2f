package jobs

import (
	"context"
	"errors"

	"gearguard/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type AlertSweeper interface {
	Sweep(ctx context.Context) (services.DispatchResult, error)
}

type MaintenanceAlertJob struct {
	dispatcher AlertSweeper
	log        logger.Logger
	schedule   services.Schedule
}

func NewMaintenanceAlertJob(dispatcher AlertSweeper, schedule services.Schedule) *MaintenanceAlertJob {
	return &MaintenanceAlertJob{
		dispatcher: dispatcher,
		log:        logger.New("maintenanceAlertJob"),
		schedule:   schedule,
	}
}

func (j *MaintenanceAlertJob) Name() string {
	return "DailyMaintenanceAlerts"
}

func (j *MaintenanceAlertJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	result, err := j.dispatcher.Sweep(ctx)
	if errors.Is(err, services.ErrSweepInProgress) {
		log.Info("Alert sweep already running elsewhere, skipping")
		return nil
	}
	if err != nil {
		return log.Err("maintenance alert sweep failed", err)
	}

	log.Info(
		"Maintenance alerts dispatched",
		"date", result.Date,
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return nil
}

func (j *MaintenanceAlertJob) Schedule() services.Schedule {
	return j.schedule
}
