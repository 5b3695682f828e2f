package repositories

import (
	"context"

	. "gearguard/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type EquipmentFilter struct {
	TeamID     *int
	Department *Department
	IsActive   *bool
	Search     string
	Ordering   string
}

var equipmentOrdering = map[string]string{
	"name":          "equipment.name",
	"purchase_date": "equipment.purchase_date",
	"id":            "equipment.id",
}

type EquipmentRepository interface {
	List(ctx context.Context, tx *gorm.DB, filter EquipmentFilter) ([]*Equipment, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*Equipment, error)
	Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, equipment *Equipment) error
	Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
}

type equipmentRepository struct {
	log logger.Logger
}

func NewEquipmentRepository() EquipmentRepository {
	return &equipmentRepository{log: logger.New("equipmentRepository")}
}

func (r *equipmentRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter EquipmentFilter,
) ([]*Equipment, error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).Model(&Equipment{}).Preload("MaintenanceTeam")

	if filter.TeamID != nil {
		query = query.Where("equipment.maintenance_team_id = ?", *filter.TeamID)
	}
	if filter.Department != nil {
		query = query.Where("equipment.department = ?", *filter.Department)
	}
	if filter.IsActive != nil {
		query = query.Where("equipment.is_active = ?", *filter.IsActive)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(
			"equipment.name ILIKE ? OR equipment.serial_number ILIKE ? OR equipment.owner_name ILIKE ?",
			pattern, pattern, pattern,
		)
	}

	var equipment []*Equipment
	if err := query.
		Order(orderClause(filter.Ordering, equipmentOrdering, "equipment.id ASC")).
		Find(&equipment).Error; err != nil {
		return nil, log.Err("failed to list equipment", err)
	}

	return equipment, nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*Equipment, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var equipment Equipment
	if err := tx.WithContext(ctx).Preload("MaintenanceTeam").First(&equipment, id).Error; err != nil {
		return nil, fail(log, "failed to get equipment", err, "equipment", "equipmentID", id)
	}

	return &equipment, nil
}

func (r *equipmentRepository) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("Exists")

	var count int64
	if err := tx.WithContext(ctx).Model(&Equipment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, log.Err("failed to check equipment", err, "equipmentID", id)
	}

	return count > 0, nil
}

func (r *equipmentRepository) Create(ctx context.Context, tx *gorm.DB, equipment *Equipment) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit("MaintenanceTeam").Create(equipment).Error; err != nil {
		return fail(log, "failed to create equipment", err, "equipment", "serialNumber", equipment.SerialNumber)
	}

	return nil
}

func (r *equipmentRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	updates map[string]any,
) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if len(updates) == 0 {
		return nil
	}

	result := tx.WithContext(ctx).Model(&Equipment{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fail(log, "failed to update equipment", result.Error, "equipment", "equipmentID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("equipment", id)
	}

	return nil
}

func (r *equipmentRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&Equipment{}, id)
	if result.Error != nil {
		return failDelete(log, "failed to delete equipment", result.Error, "equipment", "equipmentID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("equipment", id)
	}

	return nil
}
