package database

import (
	"gearguard/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// Models lists every table in dependency order.
var Models = []any{
	&models.MaintenanceTeam{},
	&models.Account{},
	&models.UserProfile{},
	&models.Equipment{},
	&models.MaintenanceRequest{},
	&models.Notification{},
}

// MigrateModels runs GORM AutoMigrate for all models.
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	for _, model := range Models {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// Indexes GORM tags cannot express.
var Indexes = []string{
	"CREATE INDEX IF NOT EXISTS idx_maintenance_request_team_status ON maintenance_request(team_id, status)",
	"CREATE INDEX IF NOT EXISTS idx_notifications_recipient_created ON notifications(recipient_id, created_at DESC)",
	"CREATE INDEX IF NOT EXISTS idx_notifications_recipient_unread ON notifications(recipient_id) WHERE is_read = false",
}

// CreateIndexes creates additional indexes that GORM doesn't create automatically.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")
	log.Info("Creating additional database indexes")

	for _, indexSQL := range Indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	return nil
}
