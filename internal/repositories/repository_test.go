package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"gearguard/internal/apperrors"
	"gearguard/internal/database"
	. "gearguard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), database.GormConfig())
	require.NoError(t, err)

	return gormDB, mock
}

func TestOrderClause(t *testing.T) {
	allowed := map[string]string{"due_date": "maintenance_request.due_date"}
	fallback := "maintenance_request.created_at DESC"

	tests := []struct {
		ordering string
		want     string
	}{
		{"", fallback},
		{"due_date", "maintenance_request.due_date ASC"},
		{"-due_date", "maintenance_request.due_date DESC"},
		{"  -due_date ", "maintenance_request.due_date DESC"},
		{"priority", fallback},
		{"-", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.ordering, func(t *testing.T) {
			assert.Equal(t, tt.want, orderClause(tt.ordering, allowed, fallback))
		})
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%pump%", containsPattern(" pump "))
	assert.Equal(t, `%100\%\_a\\b%`, containsPattern(`100%_a\b`))
}

func TestTranslateError(t *testing.T) {
	assert.ErrorIs(t, translateError(gorm.ErrRecordNotFound, "team"), apperrors.ErrNotFound)
	assert.ErrorIs(t, translateError(gorm.ErrDuplicatedKey, "equipment"), apperrors.ErrConflict)
	assert.ErrorIs(t, translateError(gorm.ErrForeignKeyViolated, "equipment"), apperrors.ErrValidation)
	assert.ErrorIs(t, translateDeleteError(gorm.ErrForeignKeyViolated, "team"), apperrors.ErrConflict)

	other := errors.New("connection reset")
	assert.Equal(t, other, translateError(other, "team"))
}

func TestTeamRepository_Create(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "maintenance_team"`)).
		WithArgs("Mechanical").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	team := &MaintenanceTeam{TeamName: "Mechanical"}
	err := NewTeamRepository().Create(context.Background(), gormDB, team)

	require.NoError(t, err)
	assert.Equal(t, 3, team.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_DeleteMissing(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "maintenance_team"`)).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewTeamRepository().Delete(context.Background(), gormDB, 42)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_DeleteReferenced(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "maintenance_team"`)).
		WithArgs(1).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := NewTeamRepository().Delete(context.Background(), gormDB, 1)

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamRepository_CountReferences(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "equipment"`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "maintenance_request"`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	equipment, requests, err := NewTeamRepository().CountReferences(context.Background(), gormDB, 1)

	require.NoError(t, err)
	assert.Equal(t, int64(2), equipment)
	assert.Equal(t, int64(0), requests)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEquipmentRepository_CreateDuplicateSerial(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "equipment"`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := NewEquipmentRepository().Create(context.Background(), gormDB, &Equipment{
		Name:              "Lathe",
		SerialNumber:      "SN-1",
		MaintenanceTeamID: 1,
		IsActive:          true,
	})

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRequestRepository_UpdateMissing(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "maintenance_request" SET "status"=$1`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewMaintenanceRequestRepository().Update(
		context.Background(),
		gormDB,
		9,
		map[string]any{"status": StatusRepaired},
	)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMaintenanceRequestRepository_UpdateEmptyIsNoop(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	err := NewMaintenanceRequestRepository().Update(context.Background(), gormDB, 9, map[string]any{})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_InsertAlert(t *testing.T) {
	alert := func() *Notification {
		requestID := 7
		return &Notification{
			RecipientID:      2,
			Message:          "Reminder",
			RelatedRequestID: &requestID,
			AlertDate:        NewDate(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)),
		}
	}

	t.Run("inserted", func(t *testing.T) {
		gormDB, mock := setupTestDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT DO NOTHING`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		inserted, err := NewNotificationRepository().InsertAlert(context.Background(), gormDB, alert())

		require.NoError(t, err)
		assert.True(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("conflict", func(t *testing.T) {
		gormDB, mock := setupTestDB(t)
		mock.ExpectQuery(regexp.QuoteMeta(`ON CONFLICT DO NOTHING`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		inserted, err := NewNotificationRepository().InsertAlert(context.Background(), gormDB, alert())

		require.NoError(t, err)
		assert.False(t, inserted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "notifications" SET "is_read"=$1`)).
		WithArgs(true, 2, false).
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := NewNotificationRepository().MarkAllRead(context.Background(), gormDB, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_CountUnread(t *testing.T) {
	gormDB, mock := setupTestDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "notifications"`)).
		WithArgs(2, false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	count, err := NewNotificationRepository().CountUnread(context.Background(), gormDB, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
