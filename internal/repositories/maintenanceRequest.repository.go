package repositories

import (
	"context"
	"time"

	. "gearguard/internal/models"
	"gearguard/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type RequestFilter struct {
	Status       *RequestStatus
	RequestType  *RequestType
	TeamID       *int
	TechnicianID *int
	EquipmentID  *int
	Search       string
	Ordering     string
}

const defaultRequestOrdering = "maintenance_request.created_at DESC"

var requestOrdering = map[string]string{
	"created_at":     "maintenance_request.created_at",
	"due_date":       "maintenance_request.due_date",
	"scheduled_date": "maintenance_request.scheduled_date",
}

type MaintenanceRequestRepository interface {
	List(ctx context.Context, tx *gorm.DB, filter RequestFilter) ([]*MaintenanceRequest, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*MaintenanceRequest, error)
	ListScheduledOn(ctx context.Context, tx *gorm.DB, day time.Time) ([]*MaintenanceRequest, error)
	Create(ctx context.Context, tx *gorm.DB, request *MaintenanceRequest) error
	Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type maintenanceRequestRepository struct {
	log logger.Logger
}

func NewMaintenanceRequestRepository() MaintenanceRequestRepository {
	return &maintenanceRequestRepository{log: logger.New("maintenanceRequestRepository")}
}

func (r *maintenanceRequestRepository) withRelations(ctx context.Context, tx *gorm.DB) *gorm.DB {
	return tx.WithContext(ctx).
		Model(&MaintenanceRequest{}).
		Joins("Equipment").
		Preload("Team").
		Preload("Technician")
}

func (r *maintenanceRequestRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter RequestFilter,
) ([]*MaintenanceRequest, error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := r.withRelations(ctx, tx)

	if filter.Status != nil {
		query = query.Where("maintenance_request.status = ?", *filter.Status)
	}
	if filter.RequestType != nil {
		query = query.Where("maintenance_request.request_type = ?", *filter.RequestType)
	}
	if filter.TeamID != nil {
		query = query.Where("maintenance_request.team_id = ?", *filter.TeamID)
	}
	if filter.TechnicianID != nil {
		query = query.Where("maintenance_request.technician_id = ?", *filter.TechnicianID)
	}
	if filter.EquipmentID != nil {
		query = query.Where("maintenance_request.equipment_id = ?", *filter.EquipmentID)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(
			`maintenance_request.subject ILIKE ? OR "Equipment"."name" ILIKE ?`,
			pattern, pattern,
		)
	}

	var requests []*MaintenanceRequest
	if err := query.
		Order(orderClause(filter.Ordering, requestOrdering, defaultRequestOrdering)).
		Find(&requests).Error; err != nil {
		return nil, log.Err("failed to list maintenance requests", err)
	}

	return requests, nil
}

func (r *maintenanceRequestRepository) GetByID(
	ctx context.Context,
	tx *gorm.DB,
	id int,
) (*MaintenanceRequest, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var request MaintenanceRequest
	if err := r.withRelations(ctx, tx).
		First(&request, "maintenance_request.id = ?", id).Error; err != nil {
		return nil, fail(log, "failed to get maintenance request", err, "maintenance request", "requestID", id)
	}

	return &request, nil
}

// ListScheduledOn returns requests whose scheduled_date equals day's calendar date.
func (r *maintenanceRequestRepository) ListScheduledOn(
	ctx context.Context,
	tx *gorm.DB,
	day time.Time,
) ([]*MaintenanceRequest, error) {
	log := r.log.TraceFromContext(ctx).Function("ListScheduledOn")

	date := day.Format(utils.DateLayout)

	var requests []*MaintenanceRequest
	if err := r.withRelations(ctx, tx).
		Where("maintenance_request.scheduled_date = ?", date).
		Order("maintenance_request.id ASC").
		Find(&requests).Error; err != nil {
		return nil, log.Err("failed to list scheduled requests", err, "date", date)
	}

	return requests, nil
}

func (r *maintenanceRequestRepository) Create(
	ctx context.Context,
	tx *gorm.DB,
	request *MaintenanceRequest,
) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).
		Omit("Equipment", "Team", "Technician").
		Create(request).Error; err != nil {
		return fail(log, "failed to create maintenance request", err, "maintenance request", "subject", request.Subject)
	}

	return nil
}

func (r *maintenanceRequestRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	updates map[string]any,
) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if len(updates) == 0 {
		return nil
	}

	result := tx.WithContext(ctx).Model(&MaintenanceRequest{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fail(log, "failed to update maintenance request", result.Error, "maintenance request", "requestID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("maintenance request", id)
	}

	return nil
}

func (r *maintenanceRequestRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&MaintenanceRequest{}, id)
	if result.Error != nil {
		return failDelete(log, "failed to delete maintenance request", result.Error, "maintenance request", "requestID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("maintenance request", id)
	}

	return nil
}
