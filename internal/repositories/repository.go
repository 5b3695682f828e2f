package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gearguard/internal/apperrors"
	"gearguard/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

type Repository struct {
	Team               TeamRepository
	Account            AccountRepository
	UserProfile        UserProfileRepository
	Equipment          EquipmentRepository
	MaintenanceRequest MaintenanceRequestRepository
	Notification       NotificationRepository
}

func New(db database.DB) Repository {
	return Repository{
		Team:               NewTeamRepository(),
		Account:            NewAccountRepository(),
		UserProfile:        NewUserProfileRepository(),
		Equipment:          NewEquipmentRepository(),
		MaintenanceRequest: NewMaintenanceRequestRepository(),
		Notification:       NewNotificationRepository(),
	}
}

// translateError maps gorm errors raised by reads and writes onto the
// application taxonomy. A dangling foreign key on write is a validation error.
func translateError(err error, entity string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound("%s not found", entity)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict("%s already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Validation("%s references a record that does not exist", entity)
	}
	return err
}

// translateDeleteError treats a foreign key violation as a restricted delete.
func translateDeleteError(err error, entity string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.Conflict("%s is still referenced and cannot be deleted", entity)
	}
	return translateError(err, entity)
}

func fail(log logger.Logger, msg string, err error, entity string, args ...any) error {
	translated := translateError(err, entity)
	if apperrors.IsKnown(translated) {
		return translated
	}
	return log.Err(msg, err, args...)
}

func failDelete(log logger.Logger, msg string, err error, entity string, args ...any) error {
	translated := translateDeleteError(err, entity)
	if apperrors.IsKnown(translated) {
		return translated
	}
	return log.Err(msg, err, args...)
}

func notFound(entity string, id int) error {
	return apperrors.NotFound("%s %d not found", entity, id)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern for ILIKE.
func containsPattern(search string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(search)) + "%"
}

// orderClause resolves a `field` / `-field` ordering against the allowed
// columns. Unknown fields fall back to the default ordering.
func orderClause(ordering string, allowed map[string]string, fallback string) string {
	ordering = strings.TrimSpace(ordering)
	if ordering == "" {
		return fallback
	}

	direction := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		field = ordering[1:]
	}

	column, ok := allowed[field]
	if !ok {
		return fallback
	}

	return fmt.Sprintf("%s %s", column, direction)
}
