package repositories

import (
	"context"

	. "gearguard/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type ProfileFilter struct {
	Role     *Role
	TeamID   *int
	Search   string
	Ordering string
}

var profileOrdering = map[string]string{
	"username": `"Account"."username"`,
	"role":     "users.role",
	"id":       "users.id",
}

type UserProfileRepository interface {
	List(ctx context.Context, tx *gorm.DB, filter ProfileFilter) ([]*UserProfile, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*UserProfile, error)
	GetByAccountID(ctx context.Context, tx *gorm.DB, accountID int) (*UserProfile, error)
	Create(ctx context.Context, tx *gorm.DB, profile *UserProfile) error
	Update(ctx context.Context, tx *gorm.DB, id int, updates map[string]any) error
}

type userProfileRepository struct {
	log logger.Logger
}

func NewUserProfileRepository() UserProfileRepository {
	return &userProfileRepository{log: logger.New("userProfileRepository")}
}

func (r *userProfileRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter ProfileFilter,
) ([]*UserProfile, error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).
		Model(&UserProfile{}).
		Joins("Account").
		Preload("Team")

	if filter.Role != nil {
		query = query.Where("users.role = ?", *filter.Role)
	}
	if filter.TeamID != nil {
		query = query.Where("users.team_id = ?", *filter.TeamID)
	}
	if filter.Search != "" {
		pattern := containsPattern(filter.Search)
		query = query.Where(
			`"Account"."username" ILIKE ? OR "Account"."first_name" ILIKE ? OR "Account"."last_name" ILIKE ?`,
			pattern, pattern, pattern,
		)
	}

	var profiles []*UserProfile
	if err := query.
		Order(orderClause(filter.Ordering, profileOrdering, "users.id ASC")).
		Find(&profiles).Error; err != nil {
		return nil, log.Err("failed to list user profiles", err)
	}

	return profiles, nil
}

func (r *userProfileRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*UserProfile, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var profile UserProfile
	if err := tx.WithContext(ctx).
		Joins("Account").
		Preload("Team").
		First(&profile, "users.id = ?", id).Error; err != nil {
		return nil, fail(log, "failed to get user profile", err, "user", "profileID", id)
	}

	return &profile, nil
}

func (r *userProfileRepository) GetByAccountID(
	ctx context.Context,
	tx *gorm.DB,
	accountID int,
) (*UserProfile, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByAccountID")

	var profile UserProfile
	if err := tx.WithContext(ctx).
		Joins("Account").
		Preload("Team").
		First(&profile, "users.account_id = ?", accountID).Error; err != nil {
		return nil, fail(log, "failed to get user profile by account", err, "user", "accountID", accountID)
	}

	return &profile, nil
}

func (r *userProfileRepository) Create(ctx context.Context, tx *gorm.DB, profile *UserProfile) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Omit("Account", "Team").Create(profile).Error; err != nil {
		return fail(log, "failed to create user profile", err, "user", "accountID", profile.AccountID)
	}

	return nil
}

func (r *userProfileRepository) Update(
	ctx context.Context,
	tx *gorm.DB,
	id int,
	updates map[string]any,
) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	if len(updates) == 0 {
		return nil
	}

	result := tx.WithContext(ctx).Model(&UserProfile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fail(log, "failed to update user profile", result.Error, "user", "profileID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("user", id)
	}

	return nil
}
