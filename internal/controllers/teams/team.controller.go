package teamController

import (
	"context"

	"gearguard/internal/apperrors"
	. "gearguard/internal/models"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/internal/validation"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type TeamInput struct {
	TeamName *string `json:"team_name" validate:"omitempty,min=1,max=100"`
}

type TeamController struct {
	teamRepo    repositories.TeamRepository
	transaction services.Transactor
	validator   *validation.Validator
	log         logger.Logger
}

type TeamControllerInterface interface {
	List(ctx context.Context, filter repositories.TeamFilter) ([]*MaintenanceTeam, error)
	Get(ctx context.Context, id int) (*MaintenanceTeam, error)
	Create(ctx context.Context, input TeamInput) (*MaintenanceTeam, error)
	Update(ctx context.Context, id int, input TeamInput, partial bool) (*MaintenanceTeam, error)
	Delete(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	transaction services.Transactor,
	validator *validation.Validator,
) TeamControllerInterface {
	return &TeamController{
		teamRepo:    repos.Team,
		transaction: transaction,
		validator:   validator,
		log:         logger.New("teamController"),
	}
}

func (tc *TeamController) List(
	ctx context.Context,
	filter repositories.TeamFilter,
) ([]*MaintenanceTeam, error) {
	var teams []*MaintenanceTeam
	err := tc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		teams, err = tc.teamRepo.List(ctx, tx, filter)
		return err
	})
	return teams, err
}

func (tc *TeamController) Get(ctx context.Context, id int) (*MaintenanceTeam, error) {
	var team *MaintenanceTeam
	err := tc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		team, err = tc.teamRepo.GetByID(ctx, tx, id)
		return err
	})
	return team, err
}

func (tc *TeamController) validate(input TeamInput, partial bool) error {
	if err := tc.validator.Struct(input); err != nil {
		return err
	}
	if !partial && (input.TeamName == nil || *input.TeamName == "") {
		return apperrors.FieldValidation("team_name", "team_name: this field is required")
	}
	return nil
}

func (tc *TeamController) Create(ctx context.Context, input TeamInput) (*MaintenanceTeam, error) {
	log := tc.log.TraceFromContext(ctx).Function("Create")

	if err := tc.validate(input, false); err != nil {
		return nil, err
	}

	team := &MaintenanceTeam{TeamName: *input.TeamName}
	if err := tc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		return tc.teamRepo.Create(ctx, tx, team)
	}); err != nil {
		return nil, err
	}

	log.Info("Team created", "teamID", team.ID)
	return team, nil
}

func (tc *TeamController) Update(
	ctx context.Context,
	id int,
	input TeamInput,
	partial bool,
) (*MaintenanceTeam, error) {
	if err := tc.validate(input, partial); err != nil {
		return nil, err
	}

	var team *MaintenanceTeam
	err := tc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		if team, err = tc.teamRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}
		if input.TeamName == nil {
			return nil
		}
		team.TeamName = *input.TeamName
		return tc.teamRepo.Update(ctx, tx, team)
	})
	if err != nil {
		return nil, err
	}

	return team, nil
}

// Delete refuses while equipment or requests still reference the team.
func (tc *TeamController) Delete(ctx context.Context, id int) error {
	log := tc.log.TraceFromContext(ctx).Function("Delete")

	err := tc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if _, err := tc.teamRepo.GetByID(ctx, tx, id); err != nil {
			return err
		}

		equipment, requests, err := tc.teamRepo.CountReferences(ctx, tx, id)
		if err != nil {
			return err
		}
		if equipment > 0 || requests > 0 {
			return apperrors.Conflict(
				"Cannot delete team: it is referenced by %d equipment and %d maintenance requests",
				equipment,
				requests,
			)
		}

		return tc.teamRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	log.Info("Team deleted", "teamID", id)
	return nil
}
