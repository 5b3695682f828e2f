package notificationController

import (
	"context"
	"errors"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type NotificationInput struct {
	Message        string `json:"message"         validate:"required"`
	RelatedRequest *int   `json:"related_request" validate:"omitempty,gt=0"`
}

type NotificationController struct {
	notificationRepo repositories.NotificationRepository
	requestRepo      repositories.MaintenanceRequestRepository
	transaction      services.Transactor
	validator        *validation.Validator
	log              logger.Logger
}

type NotificationControllerInterface interface {
	List(ctx context.Context, requesterID *int, filter repositories.NotificationFilter) ([]*Notification, error)
	Create(ctx context.Context, requesterID int, input NotificationInput) (*Notification, error)
	UnreadCount(ctx context.Context, requesterID int) (int64, error)
	MarkRead(ctx context.Context, id int, requesterID int) error
	MarkAllRead(ctx context.Context, requesterID int) (int64, error)
}

func New(
	repos repositories.Repository,
	transaction services.Transactor,
	validator *validation.Validator,
) NotificationControllerInterface {
	return &NotificationController{
		notificationRepo: repos.Notification,
		requestRepo:      repos.MaintenanceRequest,
		transaction:      transaction,
		validator:        validator,
		log:              logger.New("notificationController"),
	}
}

// List returns the requester's notifications, newest first. Anonymous
// requesters see nothing.
func (nc *NotificationController) List(
	ctx context.Context,
	requesterID *int,
	filter repositories.NotificationFilter,
) ([]*Notification, error) {
	if requesterID == nil {
		return []*Notification{}, nil
	}

	var notifications []*Notification
	err := nc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		notifications, err = nc.notificationRepo.ListForRecipient(ctx, tx, *requesterID, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []*Notification{}
	}
	return notifications, nil
}

// Create files a notification addressed to the requester.
func (nc *NotificationController) Create(
	ctx context.Context,
	requesterID int,
	input NotificationInput,
) (*Notification, error) {
	if err := nc.validator.Struct(input); err != nil {
		return nil, err
	}

	notification := &Notification{
		RecipientID:      requesterID,
		Message:          input.Message,
		RelatedRequestID: input.RelatedRequest,
	}

	err := nc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if input.RelatedRequest != nil {
			if _, err := nc.requestRepo.GetByID(ctx, tx, *input.RelatedRequest); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.FieldValidation(
						"related_request",
						"related_request: invalid pk \"%d\" - object does not exist",
						*input.RelatedRequest,
					)
				}
				return err
			}
		}
		return nc.notificationRepo.Create(ctx, tx, notification)
	})
	if err != nil {
		return nil, err
	}

	return notification, nil
}

func (nc *NotificationController) UnreadCount(ctx context.Context, requesterID int) (int64, error) {
	var count int64
	err := nc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		count, err = nc.notificationRepo.CountUnread(ctx, tx, requesterID)
		return err
	})
	return count, err
}

// MarkRead is idempotent. Only the recipient may mark a notification.
func (nc *NotificationController) MarkRead(ctx context.Context, id int, requesterID int) error {
	log := nc.log.TraceFromContext(ctx).Function("MarkRead")

	return nc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		notification, err := nc.notificationRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if notification.RecipientID != requesterID {
			log.Warn("Rejected mark read by non-recipient", "notificationID", id, "requesterID", requesterID)
			return apperrors.Permission("You do not have permission to perform this action.")
		}
		if notification.IsRead {
			return nil
		}
		return nc.notificationRepo.MarkRead(ctx, tx, id)
	})
}

func (nc *NotificationController) MarkAllRead(ctx context.Context, requesterID int) (int64, error) {
	var marked int64
	err := nc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		marked, err = nc.notificationRepo.MarkAllRead(ctx, tx, requesterID)
		return err
	})
	return marked, err
}
