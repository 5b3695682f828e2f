package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

const (
	alertSweepLock    = "maintenance-alert-sweep"
	alertSweepLockTTL = 10 * time.Minute
)

var ErrSweepInProgress = errors.New("maintenance alert sweep already in progress")

type NotificationPublisher interface {
	PublishNotification(recipientID int, data map[string]any) error
}

type DispatchResult struct {
	Date     string `json:"date"`
	Requests int    `json:"requests"`
	Sent     int    `json:"sent"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

// AlertDispatchService notifies technicians of maintenance scheduled for
// the current day, at most once per recipient, request and day.
type AlertDispatchService struct {
	requests      repositories.MaintenanceRequestRepository
	profiles      repositories.UserProfileRepository
	notifications repositories.NotificationRepository
	transaction   Transactor
	locks         Locker
	publisher     NotificationPublisher
	location      *time.Location
	now           func() time.Time
	log           logger.Logger
}

func NewAlertDispatchService(
	repos repositories.Repository,
	transaction Transactor,
	locks Locker,
	publisher NotificationPublisher,
	location *time.Location,
) *AlertDispatchService {
	if location == nil {
		location = time.UTC
	}

	return &AlertDispatchService{
		requests:      repos.MaintenanceRequest,
		profiles:      repos.UserProfile,
		notifications: repos.Notification,
		transaction:   transaction,
		locks:         locks,
		publisher:     publisher,
		location:      location,
		now:           time.Now,
		log:           logger.New("alertDispatchService"),
	}
}

func AlertMessage(subject, equipmentName string, day time.Time) string {
	return fmt.Sprintf(
		"Reminder: Scheduled maintenance '%s' for equipment '%s' is due today (%s).",
		subject,
		equipmentName,
		day.Format(utils.DateLayout),
	)
}

// Sweep dispatches alerts for today in the configured time zone.
func (s *AlertDispatchService) Sweep(ctx context.Context) (DispatchResult, error) {
	return s.SweepDate(ctx, s.now())
}

// SweepDate dispatches alerts for requests scheduled on day's calendar date.
func (s *AlertDispatchService) SweepDate(ctx context.Context, day time.Time) (DispatchResult, error) {
	log := s.log.TraceFromContext(ctx).Function("SweepDate")

	start, end := utils.DayBounds(s.now(), s.location)
	day = utils.StartOfDay(day.In(s.location))
	result := DispatchResult{Date: day.Format(utils.DateLayout)}

	release, acquired, err := s.locks.Acquire(ctx, alertSweepLock, alertSweepLockTTL)
	if err != nil {
		return result, err
	}
	if !acquired {
		log.Warn("alert sweep already running", "date", result.Date)
		return result, ErrSweepInProgress
	}
	defer release()

	var due []*MaintenanceRequest
	if err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		due, err = s.requests.ListScheduledOn(ctx, tx, day)
		return err
	}); err != nil {
		return result, log.Err("failed to load scheduled requests", err, "date", result.Date)
	}
	result.Requests = len(due)

	for _, request := range due {
		recipients, err := s.recipients(ctx, request)
		if err != nil {
			log.Er("failed to resolve recipients", err, "requestID", request.ID)
			result.Failed++
			continue
		}

		equipmentName := ""
		if request.Equipment != nil {
			equipmentName = request.Equipment.Name
		}
		message := AlertMessage(request.Subject, equipmentName, day)

		for _, recipientID := range recipients {
			notification, err := s.dispatchOne(ctx, request.ID, recipientID, message, day, start, end)
			switch {
			case err != nil:
				log.Er("failed to dispatch alert", err, "requestID", request.ID, "recipientID", recipientID)
				result.Failed++
			case notification == nil:
				result.Skipped++
			default:
				result.Sent++
				s.publish(notification)
			}
		}
	}

	log.Info(
		"Maintenance alert sweep complete",
		"date", result.Date,
		"requests", result.Requests,
		"sent", result.Sent,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)

	return result, nil
}

// recipients is the assigned technician, or every technician on the team.
func (s *AlertDispatchService) recipients(ctx context.Context, request *MaintenanceRequest) ([]int, error) {
	if request.TechnicianID != nil {
		return []int{*request.TechnicianID}, nil
	}

	role := RoleTechnician
	teamID := request.TeamID

	var profiles []*UserProfile
	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		profiles, err = s.profiles.List(ctx, tx, repositories.ProfileFilter{Role: &role, TeamID: &teamID})
		return err
	})
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(profiles))
	for _, profile := range profiles {
		ids = append(ids, profile.AccountID)
	}
	return ids, nil
}

// dispatchOne returns the stored notification, or nil when one already exists.
func (s *AlertDispatchService) dispatchOne(
	ctx context.Context,
	requestID int,
	recipientID int,
	message string,
	day time.Time,
	start time.Time,
	end time.Time,
) (*Notification, error) {
	var created *Notification

	err := s.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		exists, err := s.notifications.ExistsCreatedBetween(ctx, tx, recipientID, requestID, start, end)
		if err != nil || exists {
			return err
		}

		relatedID := requestID
		notification := &Notification{
			RecipientID:      recipientID,
			Message:          message,
			RelatedRequestID: &relatedID,
			AlertDate:        NewDate(day),
		}

		inserted, err := s.notifications.InsertAlert(ctx, tx, notification)
		if err != nil {
			return err
		}
		if inserted {
			created = notification
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *AlertDispatchService) publish(notification *Notification) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.PublishNotification(notification.RecipientID, map[string]any{
		"id":              notification.ID,
		"message":         notification.Message,
		"is_read":         notification.IsRead,
		"created_at":      notification.CreatedAt,
		"related_request": notification.RelatedRequestID,
	}); err != nil {
		s.log.Function("publish").Er("failed to publish notification", err, "notificationID", notification.ID)
	}
}
