package userController

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

type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type CreateUserInput struct {
	Username  string                      `json:"username"   validate:"required,max=150"`
	Password  string                      `json:"password"   validate:"required,min=8,max=128"`
	FirstName string                      `json:"first_name" validate:"max=150"`
	LastName  string                      `json:"last_name"  validate:"max=150"`
	Email     string                      `json:"email"      validate:"omitempty,email,max=254"`
	Role      *Role                       `json:"role"       validate:"omitempty,role"`
	Team      validation.Nullable[int]    `json:"team"`
	AvatarURL validation.Nullable[string] `json:"avatar_url"`
}

type UpdateUserInput struct {
	FirstName *string                     `json:"first_name" validate:"omitempty,max=150"`
	LastName  *string                     `json:"last_name"  validate:"omitempty,max=150"`
	Email     *string                     `json:"email"      validate:"omitempty,email,max=254"`
	IsActive  *bool                       `json:"is_active"`
	Role      *Role                       `json:"role"       validate:"omitempty,role"`
	Team      validation.Nullable[int]    `json:"team"`
	AvatarURL validation.Nullable[string] `json:"avatar_url"`
}

type UserController struct {
	accountRepo repositories.AccountRepository
	profileRepo repositories.UserProfileRepository
	teamRepo    repositories.TeamRepository
	transaction services.Transactor
	hasher      PasswordHasher
	validator   *validation.Validator
	log         logger.Logger
}

type UserControllerInterface interface {
	List(ctx context.Context, filter repositories.ProfileFilter) ([]UserProfileResponse, error)
	Get(ctx context.Context, id int) (*UserProfileResponse, error)
	Technicians(ctx context.Context, teamID *int) ([]UserProfileResponse, error)
	ByTeam(ctx context.Context, teamID int) ([]UserProfileResponse, error)
	Create(ctx context.Context, input CreateUserInput) (*UserProfileResponse, error)
	Update(ctx context.Context, id int, input UpdateUserInput, partial bool) (*UserProfileResponse, error)
	Delete(ctx context.Context, id int) error
}

func New(
	repos repositories.Repository,
	transaction services.Transactor,
	hasher PasswordHasher,
	validator *validation.Validator,
) UserControllerInterface {
	return &UserController{
		accountRepo: repos.Account,
		profileRepo: repos.UserProfile,
		teamRepo:    repos.Team,
		transaction: transaction,
		hasher:      hasher,
		validator:   validator,
		log:         logger.New("userController"),
	}
}

func toResponses(profiles []*UserProfile) []UserProfileResponse {
	out := make([]UserProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, profile.ToResponse())
	}
	return out
}

func (uc *UserController) List(
	ctx context.Context,
	filter repositories.ProfileFilter,
) ([]UserProfileResponse, error) {
	var profiles []*UserProfile
	err := uc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		profiles, err = uc.profileRepo.List(ctx, tx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return toResponses(profiles), nil
}

func (uc *UserController) Get(ctx context.Context, id int) (*UserProfileResponse, error) {
	var profile *UserProfile
	err := uc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		var err error
		profile, err = uc.profileRepo.GetByID(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	resp := profile.ToResponse()
	return &resp, nil
}

// Technicians lists technician profiles, optionally limited to one team.
func (uc *UserController) Technicians(ctx context.Context, teamID *int) ([]UserProfileResponse, error) {
	role := RoleTechnician
	return uc.List(ctx, repositories.ProfileFilter{Role: &role, TeamID: teamID})
}

func (uc *UserController) ByTeam(ctx context.Context, teamID int) ([]UserProfileResponse, error) {
	return uc.List(ctx, repositories.ProfileFilter{TeamID: &teamID})
}

func (uc *UserController) checkTeam(ctx context.Context, tx *gorm.DB, teamID *int) error {
	if teamID == nil {
		return nil
	}
	exists, err := uc.teamRepo.Exists(ctx, tx, *teamID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.FieldValidation("team", "team: invalid pk \"%d\" - object does not exist", *teamID)
	}
	return nil
}

func (uc *UserController) Create(ctx context.Context, input CreateUserInput) (*UserProfileResponse, error) {
	log := uc.log.TraceFromContext(ctx).Function("Create")

	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}

	hash, err := uc.hasher.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	role := RoleUser
	if input.Role != nil {
		role = *input.Role
	}

	var profileID int
	err = uc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := uc.checkTeam(ctx, tx, input.Team.Value()); err != nil {
			return err
		}

		account := &Account{
			Username:     input.Username,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Email:        input.Email,
			PasswordHash: hash,
			IsActive:     true,
		}
		if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
			return err
		}

		profile := &UserProfile{
			AccountID: account.ID,
			Role:      role,
			TeamID:    input.Team.Value(),
			AvatarURL: input.AvatarURL.Value(),
		}
		if err := uc.profileRepo.Create(ctx, tx, profile); err != nil {
			return err
		}
		profileID = profile.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("User created", "profileID", profileID, "role", role)
	return uc.Get(ctx, profileID)
}

func (uc *UserController) Update(
	ctx context.Context,
	id int,
	input UpdateUserInput,
	partial bool,
) (*UserProfileResponse, error) {
	if err := uc.validator.Struct(input); err != nil {
		return nil, err
	}
	if !partial && input.Role == nil {
		return nil, apperrors.FieldValidation("role", "role: this field is required")
	}

	accountUpdates := map[string]any{}
	if input.FirstName != nil {
		accountUpdates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		accountUpdates["last_name"] = *input.LastName
	}
	if input.Email != nil {
		accountUpdates["email"] = *input.Email
	}
	if input.IsActive != nil {
		accountUpdates["is_active"] = *input.IsActive
	}

	profileUpdates := map[string]any{}
	if input.Role != nil {
		profileUpdates["role"] = *input.Role
	}
	if input.Team.IsSet() {
		profileUpdates["team_id"] = input.Team.Value()
	}
	if input.AvatarURL.IsSet() {
		profileUpdates["avatar_url"] = input.AvatarURL.Value()
	}

	err := uc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		profile, err := uc.profileRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if input.Team.IsSet() {
			if err := uc.checkTeam(ctx, tx, input.Team.Value()); err != nil {
				return err
			}
		}
		if err := uc.accountRepo.Update(ctx, tx, profile.AccountID, accountUpdates); err != nil {
			return err
		}
		return uc.profileRepo.Update(ctx, tx, id, profileUpdates)
	})
	if err != nil {
		return nil, err
	}

	return uc.Get(ctx, id)
}

// Delete removes the account; its profile and notifications cascade.
func (uc *UserController) Delete(ctx context.Context, id int) error {
	log := uc.log.TraceFromContext(ctx).Function("Delete")

	err := uc.transaction.Execute(ctx, func(ctx context.Context, tx *gorm.DB) error {
		profile, err := uc.profileRepo.GetByID(ctx, tx, id)
		if err != nil {
			return err
		}
		return uc.accountRepo.Delete(ctx, tx, profile.AccountID)
	})
	if err != nil {
		return err
	}

	log.Info("User deleted", "profileID", id)
	return nil
}
