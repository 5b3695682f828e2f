package maintenanceRequestController

import (
	"context"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var maxDurationHours = decimal.NewFromInt(1000)

type RequestInput struct {
	Subject       *string                              `json:"subject"        validate:"omitempty,min=1,max=255"`
	RequestType   *RequestType                         `json:"request_type"   validate:"omitempty,request_type"`
	Equipment     *int                                 `json:"equipment"      validate:"omitempty,gt=0"`
	Team          *int                                 `json:"team"           validate:"omitempty,gt=0"`
	Technician    validation.Nullable[int]             `json:"technician"`
	Status        *RequestStatus                       `json:"status"         validate:"omitempty,request_status"`
	ScheduledDate validation.Nullable[string]          `json:"scheduled_date"`
	DurationHours validation.Nullable[decimal.Decimal] `json:"duration_hours"`
	DueDate       validation.Nullable[string]          `json:"due_date"`
}

type BoardCache interface {
	Get(ctx context.Context) ([]StatusGroup, bool)
	Set(ctx context.Context, groups []StatusGroup)
	Invalidate(ctx context.Context)
}

type MaintenanceRequestController struct {
	requestRepo   repositories.MaintenanceRequestRepository
	equipmentRepo repositories.EquipmentRepository
	teamRepo      repositories.TeamRepository
	accountRepo   repositories.AccountRepository
	transaction   services.Transactor
	board         BoardCache
	validator     *validation.Validator
	log           logger.Logger
}

type MaintenanceRequestControllerInterface interface {
	List(ctx context.Context, filter repositories.RequestFilter) ([]MaintenanceRequestResponse, error)
	Get(ctx context.Context, id int) (*MaintenanceRequestResponse, error)
	Create(ctx context.Context, input RequestInput) (*MaintenanceRequestResponse, error)
	Update(ctx context.Context, id int, input RequestInput, partial bool) (*MaintenanceRequestResponse, error)
	UpdateStatus(ctx context.Context, id int, status RequestStatus) (*MaintenanceRequestResponse, error)
	AssignTechnician(ctx context.Context, id int, technicianID *int) (*MaintenanceRequestResponse, error)
	Delete(ctx context.Context, id int) error
	GroupByStatus(ctx context.Context) ([]StatusGroup, error)
}

// New accepts a nil board cache.
func New(
	repos repositories.Repository,
	transaction services.Transactor,
	board BoardCache,
	validator *validation.Validator,
) MaintenanceRequestControllerInterface {
	return &MaintenanceRequestController{
		requestRepo:   repos.MaintenanceRequest,
		equipmentRepo: repos.Equipment,
		teamRepo:      repos.Team,
		accountRepo:   repos.Account,
		transaction:   transaction,
		board:         board,
		validator:     validator,
		log:           logger.New("maintenanceRequestController"),
	}
}

func toResponses(requests []*MaintenanceRequest) []MaintenanceRequestResponse {
	out := make([]MaintenanceRequestResponse, 0, len(requests))
	for _, request := range requests {
		out = append(out, request.ToResponse())
	}
	return out
}

func (mc *MaintenanceRequestController) invalidateBoard(ctx context.Context) {
	if mc.board != nil {
		mc.board.Invalidate(ctx)
	}
}

func (mc *MaintenanceRequestController) List(
	ctx context.Context,
	filter repositories.RequestFilter,
) ([]MaintenanceRequestResponse, error) {
	var requests []*MaintenanceRequest
	err := mc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		requests, err = mc.requestRepo.List(ctx, tx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponses(requests), nil
}

func (mc *MaintenanceRequestController) Get(ctx context.Context, id int) (*MaintenanceRequestResponse, error) {
	var request *MaintenanceRequest
	err := mc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		request, err = mc.requestRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := request.ToResponse()
	return &resp, nil
}

func missingField(field string) error {
	return apperrors.FieldValidation(field, "%s: this field is required", field)
}

func invalidPK(field string, id int) error {
	return apperrors.FieldValidation(field, "%s: invalid pk \"%d\" - object does not exist", field, id)
}

// changes validates input and turns it into column updates.
func (mc *MaintenanceRequestController) changes(input RequestInput, partial bool) (map[string]any, error) {
	if err := mc.validator.Struct(input); err != nil {
		return nil, err
	}

	if !partial {
		switch {
		case input.Subject == nil || *input.Subject == "":
			return nil, missingField("subject")
		case input.RequestType == nil:
			return nil, missingField("request_type")
		case input.Equipment == nil:
			return nil, missingField("equipment")
		case input.Team == nil:
			return nil, missingField("team")
		}
	}

	updates := map[string]any{}
	if input.Subject != nil {
		updates["subject"] = *input.Subject
	}
	if input.RequestType != nil {
		updates["request_type"] = *input.RequestType
	}
	if input.Equipment != nil {
		updates["equipment_id"] = *input.Equipment
	}
	if input.Team != nil {
		updates["team_id"] = *input.Team
	}
	if input.Technician.IsSet() {
		updates["technician_id"] = input.Technician.Value()
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.ScheduledDate.IsSet() {
		date, err := validation.DateField("scheduled_date", input.ScheduledDate)
		if err != nil {
			return nil, err
		}
		updates["scheduled_date"] = date
	}
	if input.DueDate.IsSet() {
		date, err := validation.DateField("due_date", input.DueDate)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = date
	}
	if input.DurationHours.IsSet() {
		hours := input.DurationHours.Value()
		if hours != nil {
			if hours.IsNegative() || hours.GreaterThanOrEqual(maxDurationHours) || !hours.Equal(hours.Round(2)) {
				return nil, apperrors.FieldValidation(
					"duration_hours",
					"duration_hours: ensure the value is between 0 and 999.99 with at most 2 decimal places",
				)
			}
		}
		updates["duration_hours"] = hours
	}

	return updates, nil
}

// checkReferences confirms every referenced id in input exists.
func (mc *MaintenanceRequestController) checkReferences(
	ctx context.Context,
	tx *gorm.DB,
	equipmentID *int,
	teamID *int,
	technicianID *int,
) error {
	if equipmentID != nil {
		exists, err := mc.equipmentRepo.Exists(ctx, tx, *equipmentID)
		if err != nil {
			return err
		}
		if !exists {
			return invalidPK("equipment", *equipmentID)
		}
	}
	if teamID != nil {
		exists, err := mc.teamRepo.Exists(ctx, tx, *teamID)
		if err != nil {
			return err
		}
		if !exists {
			return invalidPK("team", *teamID)
		}
	}
	if technicianID != nil {
		exists, err := mc.accountRepo.Exists(ctx, tx, *technicianID)
		if err != nil {
			return err
		}
		if !exists {
			return invalidPK("technician", *technicianID)
		}
	}
	return nil
}

// Create always starts the request as New; a supplied status is ignored.
func (mc *MaintenanceRequestController) Create(
	ctx context.Context,
	input RequestInput,
) (*MaintenanceRequestResponse, error) {
	log := mc.log.TraceFromContext(ctx).Function("Create")

	input.Status = nil
	updates, err := mc.changes(input, false)
	if err != nil {
		return nil, err
	}

	request := &MaintenanceRequest{
		Subject:       *input.Subject,
		RequestType:   *input.RequestType,
		EquipmentID:   *input.Equipment,
		TeamID:        *input.Team,
		TechnicianID:  input.Technician.Value(),
		Status:        StatusNew,
		DurationHours: input.DurationHours.Value(),
	}
	if date, ok := updates["scheduled_date"]; ok {
		request.ScheduledDate = date.(*datatypes.Date)
	}
	if date, ok := updates["due_date"]; ok {
		request.DueDate = date.(*datatypes.Date)
	}

	err = mc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := mc.checkReferences(ctx, tx, input.Equipment, input.Team, input.Technician.Value()); err != nil {
			return err
		}
		return mc.requestRepo.Create(ctx, tx, request)
	})
	if err != nil {
		return nil, err
	}
	mc.invalidateBoard(ctx)

	log.Info("Maintenance request created", "requestID", request.ID, "teamID", request.TeamID)
	return mc.Get(ctx, request.ID)
}

func (mc *MaintenanceRequestController) Update(
	ctx context.Context,
	id int,
	input RequestInput,
	partial bool,
) (*MaintenanceRequestResponse, error) {
	updates, err := mc.changes(input, partial)
	if err != nil {
		return nil, err
	}

	if err := mc.apply(ctx, id, updates, input.Equipment, input.Team, input.Technician.Value()); err != nil {
		return nil, err
	}
	return mc.Get(ctx, id)
}

func (mc *MaintenanceRequestController) apply(
	ctx context.Context,
	id int,
	updates map[string]any,
	equipmentID *int,
	teamID *int,
	technicianID *int,
) error {
	err := mc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := mc.requestRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}
		if err := mc.checkReferences(ctx, tx, equipmentID, teamID, technicianID); err != nil {
			return err
		}
		return mc.requestRepo.Update(ctx, tx, id, updates)
	})
	if err != nil {
		return err
	}
	mc.invalidateBoard(ctx)
	return nil
}

// UpdateStatus writes the status only. Any valid status may follow any other.
func (mc *MaintenanceRequestController) UpdateStatus(
	ctx context.Context,
	id int,
	status RequestStatus,
) (*MaintenanceRequestResponse, error) {
	log := mc.log.TraceFromContext(ctx).Function("UpdateStatus")

	if !status.Valid() {
		return nil, apperrors.FieldValidation("status", "status: %q is not a valid choice", string(status))
	}

	if err := mc.apply(ctx, id, map[string]any{"status": status}, nil, nil, nil); err != nil {
		return nil, err
	}

	log.Info("Maintenance request status updated", "requestID", id, "status", status)
	return mc.Get(ctx, id)
}

// AssignTechnician sets or, with nil, clears the technician.
func (mc *MaintenanceRequestController) AssignTechnician(
	ctx context.Context,
	id int,
	technicianID *int,
) (*MaintenanceRequestResponse, error) {
	if err := mc.apply(ctx, id, map[string]any{"technician_id": technicianID}, nil, nil, technicianID); err != nil {
		return nil, err
	}
	return mc.Get(ctx, id)
}

// Delete removes the request; its notifications cascade.
func (mc *MaintenanceRequestController) Delete(ctx context.Context, id int) error {
	err := mc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return mc.requestRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}
	mc.invalidateBoard(ctx)
	return nil
}

func (mc *MaintenanceRequestController) GroupByStatus(ctx context.Context) ([]StatusGroup, error) {
	if mc.board != nil {
		if groups, ok := mc.board.Get(ctx); ok {
			return groups, nil
		}
	}

	var requests []*MaintenanceRequest
	err := mc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		requests, err = mc.requestRepo.List(ctx, tx, repositories.RequestFilter{})
		return err
	})
	if err != nil {
		return nil, err
	}

	groups := GroupByStatus(requests)
	if mc.board != nil {
		mc.board.Set(ctx, groups)
	}
	return groups, nil
}
