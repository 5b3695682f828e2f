package repositories

import (
	"context"

	. "gearguard/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type TeamFilter struct {
	Search   string
	Ordering string
}

var teamOrdering = map[string]string{
	"team_name": "maintenance_team.team_name",
	"id":        "maintenance_team.id",
}

type TeamRepository interface {
	List(ctx context.Context, tx *gorm.DB, filter TeamFilter) ([]*MaintenanceTeam, error)
	GetByID(ctx context.Context, tx *gorm.DB, id int) (*MaintenanceTeam, error)
	Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, team *MaintenanceTeam) error
	Update(ctx context.Context, tx *gorm.DB, team *MaintenanceTeam) error
	Delete(ctx context.Context, tx *gorm.DB, id int) error
	CountReferences(ctx context.Context, tx *gorm.DB, id int) (equipment int64, requests int64, err error)
}

type teamRepository struct {
	log logger.Logger
}

func NewTeamRepository() TeamRepository {
	return &teamRepository{log: logger.New("teamRepository")}
}

func (r *teamRepository) List(
	ctx context.Context,
	tx *gorm.DB,
	filter TeamFilter,
) ([]*MaintenanceTeam, error) {
	log := r.log.TraceFromContext(ctx).Function("List")

	query := tx.WithContext(ctx).Model(&MaintenanceTeam{})
	if filter.Search != "" {
		query = query.Where("maintenance_team.team_name ILIKE ?", containsPattern(filter.Search))
	}

	var teams []*MaintenanceTeam
	if err := query.
		Order(orderClause(filter.Ordering, teamOrdering, "maintenance_team.team_name ASC")).
		Find(&teams).Error; err != nil {
		return nil, log.Err("failed to list teams", err)
	}

	return teams, nil
}

func (r *teamRepository) GetByID(ctx context.Context, tx *gorm.DB, id int) (*MaintenanceTeam, error) {
	log := r.log.TraceFromContext(ctx).Function("GetByID")

	var team MaintenanceTeam
	if err := tx.WithContext(ctx).First(&team, id).Error; err != nil {
		return nil, fail(log, "failed to get team", err, "team", "teamID", id)
	}

	return &team, nil
}

func (r *teamRepository) Exists(ctx context.Context, tx *gorm.DB, id int) (bool, error) {
	log := r.log.TraceFromContext(ctx).Function("Exists")

	var count int64
	if err := tx.WithContext(ctx).Model(&MaintenanceTeam{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, log.Err("failed to check team", err, "teamID", id)
	}

	return count > 0, nil
}

func (r *teamRepository) Create(ctx context.Context, tx *gorm.DB, team *MaintenanceTeam) error {
	log := r.log.TraceFromContext(ctx).Function("Create")

	if err := tx.WithContext(ctx).Create(team).Error; err != nil {
		return fail(log, "failed to create team", err, "team", "teamName", team.TeamName)
	}

	return nil
}

func (r *teamRepository) Update(ctx context.Context, tx *gorm.DB, team *MaintenanceTeam) error {
	log := r.log.TraceFromContext(ctx).Function("Update")

	result := tx.WithContext(ctx).
		Model(&MaintenanceTeam{}).
		Where("id = ?", team.ID).
		Update("team_name", team.TeamName)
	if result.Error != nil {
		return fail(log, "failed to update team", result.Error, "team", "teamID", team.ID)
	}
	if result.RowsAffected == 0 {
		return notFound("team", team.ID)
	}

	return nil
}

func (r *teamRepository) Delete(ctx context.Context, tx *gorm.DB, id int) error {
	log := r.log.TraceFromContext(ctx).Function("Delete")

	result := tx.WithContext(ctx).Delete(&MaintenanceTeam{}, id)
	if result.Error != nil {
		return failDelete(log, "failed to delete team", result.Error, "team", "teamID", id)
	}
	if result.RowsAffected == 0 {
		return notFound("team", id)
	}

	return nil
}

func (r *teamRepository) CountReferences(
	ctx context.Context,
	tx *gorm.DB,
	id int,
) (int64, int64, error) {
	log := r.log.TraceFromContext(ctx).Function("CountReferences")

	var equipment, requests int64
	if err := tx.WithContext(ctx).
		Model(&Equipment{}).
		Where("maintenance_team_id = ?", id).
		Count(&equipment).Error; err != nil {
		return 0, 0, log.Err("failed to count team equipment", err, "teamID", id)
	}

	if err := tx.WithContext(ctx).
		Model(&MaintenanceRequest{}).
		Where("team_id = ?", id).
		Count(&requests).Error; err != nil {
		return 0, 0, log.Err("failed to count team requests", err, "teamID", id)
	}

	return equipment, requests, nil
}
