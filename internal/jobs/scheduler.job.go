package jobs

import (
	"gearguard/config"
	"gearguard/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	service services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	alertJob := NewMaintenanceAlertJob(service.AlertDispatch, services.Daily)
	if err := schedulerService.AddJob(alertJob); err != nil {
		return log.Err("failed to register maintenance alert job", err)
	}
	log.Info("Registered maintenance alert job", "at", config.AlertScheduleTime, "timezone", config.Timezone)

	return nil
}
