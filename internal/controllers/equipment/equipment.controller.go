package equipmentController

import (
	"context"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EquipmentInput struct {
	Name            *string                         `json:"name"             validate:"omitempty,min=1,max=100"`
	SerialNumber    *string                         `json:"serial_number"    validate:"omitempty,min=1,max=100"`
	Department      validation.Nullable[Department] `json:"department"`
	OwnerName       validation.Nullable[string]     `json:"owner_name"`
	Location        validation.Nullable[string]     `json:"location"`
	PurchaseDate    validation.Nullable[string]     `json:"purchase_date"`
	WarrantyEnd     validation.Nullable[string]     `json:"warranty_end"`
	MaintenanceTeam *int                            `json:"maintenance_team" validate:"omitempty,gt=0"`
	IsActive        *bool                           `json:"is_active"`
}

type EquipmentController struct {
	equipmentRepo repositories.EquipmentRepository
	teamRepo      repositories.TeamRepository
	transaction   services.Transactor
	validator     *validation.Validator
	log           logger.Logger
}

type EquipmentControllerInterface interface {
	List(ctx context.Context, filter repositories.EquipmentFilter) ([]EquipmentResponse, error)
	Get(ctx context.Context, id int) (*EquipmentResponse, error)
	ByTeam(ctx context.Context, teamID int) ([]EquipmentResponse, error)
	Create(ctx context.Context, input EquipmentInput) (*EquipmentResponse, error)
	Update(ctx context.Context, id int, input EquipmentInput, partial bool) (*EquipmentResponse, error)
	Delete(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	transaction services.Transactor,
	validator *validation.Validator,
) EquipmentControllerInterface {
	return &EquipmentController{
		equipmentRepo: repos.Equipment,
		teamRepo:      repos.Team,
		transaction:   transaction,
		validator:     validator,
		log:           logger.New("equipmentController"),
	}
}

func (ec *EquipmentController) List(
	ctx context.Context,
	filter repositories.EquipmentFilter,
) ([]EquipmentResponse, error) {
	var items []*Equipment
	err := ec.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		items, err = ec.equipmentRepo.List(ctx, tx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]EquipmentResponse, 0, len(items))
	for _, item := range items {
		out = append(out, item.ToResponse())
	}
	return out, nil
}

func (ec *EquipmentController) Get(ctx context.Context, id int) (*EquipmentResponse, error) {
	var item *Equipment
	err := ec.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		item, err = ec.equipmentRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := item.ToResponse()
	return &resp, nil
}

// ByTeam lists the active equipment a team maintains.
func (ec *EquipmentController) ByTeam(ctx context.Context, teamID int) ([]EquipmentResponse, error) {
	active := true
	return ec.List(ctx, repositories.EquipmentFilter{TeamID: &teamID, IsActive: &active})
}

// changes validates input and turns it into column updates.
func (ec *EquipmentController) changes(input EquipmentInput, partial bool) (map[string]any, error) {
	if err := ec.validator.Struct(input); err != nil {
		return nil, err
	}

	if !partial {
		switch {
		case input.Name == nil || *input.Name == "":
			return nil, apperrors.FieldValidation("name", "name: this field is required")
		case input.SerialNumber == nil || *input.SerialNumber == "":
			return nil, apperrors.FieldValidation("serial_number", "serial_number: this field is required")
		case input.MaintenanceTeam == nil:
			return nil, apperrors.FieldValidation("maintenance_team", "maintenance_team: this field is required")
		}
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.SerialNumber != nil {
		updates["serial_number"] = *input.SerialNumber
	}
	if input.Department.IsSet() {
		department := input.Department.Value()
		if department != nil && !department.Valid() {
			return nil, apperrors.FieldValidation("department", "department: %q is not a valid choice", string(*department))
		}
		updates["department"] = department
	}
	if input.OwnerName.IsSet() {
		updates["owner_name"] = input.OwnerName.Value()
	}
	if input.Location.IsSet() {
		updates["location"] = input.Location.Value()
	}
	if input.PurchaseDate.IsSet() {
		date, err := validation.DateField("purchase_date", input.PurchaseDate)
		if err != nil {
			return nil, err
		}
		updates["purchase_date"] = date
	}
	if input.WarrantyEnd.IsSet() {
		date, err := validation.DateField("warranty_end", input.WarrantyEnd)
		if err != nil {
			return nil, err
		}
		updates["warranty_end"] = date
	}
	if input.MaintenanceTeam != nil {
		updates["maintenance_team_id"] = *input.MaintenanceTeam
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	return updates, nil
}

func (ec *EquipmentController) checkTeam(ctx context.Context, tx *gorm.DB, teamID *int) error {
	if teamID == nil {
		return nil
	}
	exists, err := ec.teamRepo.Exists(ctx, tx, *teamID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.FieldValidation(
			"maintenance_team",
			"maintenance_team: invalid pk \"%d\" - object does not exist",
			*teamID,
		)
	}
	return nil
}

func (ec *EquipmentController) Create(ctx context.Context, input EquipmentInput) (*EquipmentResponse, error) {
	log := ec.log.TraceFromContext(ctx).Function("Create")

	updates, err := ec.changes(input, false)
	if err != nil {
		return nil, err
	}

	item := &Equipment{
		Name:              *input.Name,
		SerialNumber:      *input.SerialNumber,
		Department:        input.Department.Value(),
		OwnerName:         input.OwnerName.Value(),
		Location:          input.Location.Value(),
		MaintenanceTeamID: *input.MaintenanceTeam,
		IsActive:          true,
	}
	if date, ok := updates["purchase_date"]; ok {
		item.PurchaseDate = date.(*datatypes.Date)
	}
	if date, ok := updates["warranty_end"]; ok {
		item.WarrantyEnd = date.(*datatypes.Date)
	}
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}

	err = ec.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := ec.checkTeam(ctx, tx, input.MaintenanceTeam); err != nil {
			return err
		}
		return ec.equipmentRepo.Create(ctx, tx, item)
	})
	if err != nil {
		return nil, err
	}

	log.Info("Equipment created", "equipmentID", item.ID, "serial", item.SerialNumber)
	return ec.Get(ctx, item.ID)
}

func (ec *EquipmentController) Update(
	ctx context.Context,
	id int,
	input EquipmentInput,
	partial bool,
) (*EquipmentResponse, error) {
	updates, err := ec.changes(input, partial)
	if err != nil {
		return nil, err
	}

	err = ec.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		exists, err := ec.equipmentRepo.Exists(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NotFound("equipment %d not found", id)
		}
		if err := ec.checkTeam(ctx, tx, input.MaintenanceTeam); err != nil {
			return err
		}
		return ec.equipmentRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return nil, err
	}

	return ec.Get(ctx, id)
}

// Delete removes the equipment; its requests and their notifications cascade.
func (ec *EquipmentController) Delete(ctx context.Context, id int) error {
	log := ec.log.TraceFromContext(ctx).Function("Delete")

	err := ec.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return ec.equipmentRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	log.Info("Equipment deleted", "equipmentID", id)
	return nil
}
