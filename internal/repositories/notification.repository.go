package repositories

import (
	"context"
	"time"

	. "gearguard/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationFilter struct {
	IsRead *bool
}

type NotificationRepository interface {
	ListForRecipient(
		ctx context.Context,
		tx *gorm.DB,
		recipientID int,
		filter NotificationFilter,
	) ([]*Notification, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Notification, error)
	Create(ctx context.Context, tx *gorm.DB, notification *Notification) error
	// InsertAlert inserts unless the (recipient, request, alert_date) key is
	// already present and reports whether a row was written.
	InsertAlert(ctx context.Context, tx *gorm.DB, notification *Notification) (bool, error)
	ExistsCreatedBetween(
		ctx context.Context,
		tx *gorm.DB,
		recipientID int,
		requestID int,
		start time.Time,
		end time.Time,
	) (bool, error)
	MarkRead(ctx context.Context, tx *gorm.DB, id int) error
	MarkAllRead(ctx context.Context, tx *gorm.DB, recipientID int) (int64, error)
	CountUnread(ctx context.Context, tx *gorm.DB, recipientID int) (int64, error)
}

type notificationRepository struct {
	log logger.Logger
}

func NewNotificationRepository() NotificationRepository {
	return &notificationRepository{log: logger.New("notificationRepository")}
}

func (r *notificationRepository) ListForRecipient(
	ctx context.Context,
	tx *gorm.DB,
	recipientID int,
	filter NotificationFilter,
) ([]*Notification, error) {
	log := r.log.TraceFromContext(ctx).Function("ListForRecipient")

	query := tx.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}

	var notifications []*Notification
	if err := query.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, log.Err("failed to list notifications", err, "recipientID", recipientID)
	}

	return notifications, nil
}

func (r *notificationRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Notification, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var notification Notification
	if err := tx.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, fail(log, "failed to get notification", err, "notification", "notificationID", id)
	}

	return &notification, nil
}

func (r *notificationRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	notification *Notification,
) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).
		Omit("Recipient", "RelatedRequest").
		Create(notification).Error; err != nil {
		return fail(log, "failed to create notification", err, "notification", "recipientID", notification.RecipientID)
	}

	return nil
}

func (r *notificationRepository) InsertAlert(
	ctx context.Context,
	tx *gorm.DB,
	notification *Notification,
) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("InsertAlert")

	result := tx.WithContext(ctx).
		Omit("Recipient", "RelatedRequest").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(notification)
	if result.Error != nil {
		return false, fail(log, "failed to insert alert", result.Error, "notification",
			"recipientID", notification.RecipientID)
	}

	return result.RowsAffected > 0, nil
}

func (r *notificationRepository) ExistsCreatedBetween(
	ctx context.Context,
	tx *gorm.DB,
	recipientID int,
	requestID int,
	start time.Time,
	end time.Time,
) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("ExistsCreatedBetween")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ? AND related_request_id = ?", recipientID, requestID).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error; err != nil {
		return false, log.Err("failed to check existing notification", err,
			"recipientID", recipientID, "requestID", requestID)
	}

	return count > 0, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("MarkRead")

	result := tx.WithContext(ctx).Model(&Notification{}).Where("id = ?", id).Update("is_read", true)
	if result.Error != nil {
		return log.Err("failed to mark notification read", result.Error, "notificationID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("notification", id)
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(
	ctx context.Context,
	tx *gorm.DB,
	recipientID int,
) (int64, error) {
	log := r.log.TraceFromContext(ctx).Function("MarkAllRead")

	result := tx.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, log.Err("failed to mark notifications read", result.Error, "recipientID", recipientID)
	}

	return result.RowsAffected, nil
}

func (r *notificationRepository) CountUnread(
	ctx context.Context,
	tx *gorm.DB,
	recipientID int,
) (int64, error) {
	log := r.log.TraceFromContext(ctx).Function("CountUnread")

	var count int64
	if err := tx.WithContext(ctx).
		Model(&Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error; err != nil {
		return 0, log.Err("failed to count unread notifications", err, "recipientID", recipientID)
	}

	return count, nil
}
