package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strconv"

	"gearguard/cmd/migration/seed"
	"gearguard/config"
	"gearguard/internal/database"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/pflag"
)

const (
	MIGRATION_PATH = "cmd/migration/migrations"
	MIGRATION_DB   = "postgres"
)

func main() {
	log := logger.New("migrations")
	log = log.Function("main")

	config, err := config.New()
	if err != nil {
		log.Er("failed to initialize config", err)
		os.Exit(1)
	}

	migrationType := "up"
	if len(os.Args) > 1 {
		migrationType = os.Args[1]
	}
	var args []string
	if len(os.Args) > 2 {
		args = os.Args[2:]
	}

	db, err := connect(config)
	if err != nil {
		log.Er("failed to create database", err)
		os.Exit(1)
	}

	switch migrationType {
	case "up":
		err = migrateUp(&db, config, log)
	case "down":
		steps := 1
		if len(args) > 0 {
			steps, err = strconv.Atoi(args[0])
			if err != nil || steps < 1 {
				log.Error("invalid step count", "steps", args[0])
				closeDB(&db, log)
				os.Exit(2)
			}
		}
		err = migrateDown(steps, config, log)
	case "seed":
		err = migrateSeed(&db, config, args, log)
	case "generate":
		err = migrateGenerate(&db, config, args, log)
	default:
		log.Error("unknown command, expected up, down, seed or generate", "command", migrationType)
		closeDB(&db, log)
		os.Exit(2)
	}

	closeDB(&db, log)
	if err != nil {
		log.Er("failed to run migrations", err)
		os.Exit(1)
	}

	log.Info("Migrations complete", "command", migrationType)
}

func connect(config config.Config) (database.DB, error) {
	if config.DatabaseCacheAddress == "" {
		return database.NewSQLOnly(config)
	}
	return database.New(config)
}

func closeDB(db *database.DB, log logger.Logger) {
	if err := db.Close(); err != nil {
		log.Er("failed to close database", err)
	}
}

func migrateUp(db *database.DB, config config.Config, log logger.Logger) error {
	log = log.Function("migrateUp")
	log.Info("Running migrations up")

	if err := db.MigrateModels(); err != nil {
		return log.Err("failed to auto migrate", err)
	}

	if err := db.CreateIndexes(); err != nil {
		return log.Err("failed to create indexes", err)
	}

	if err := runMigrations(config, log, migrate.Up, 0); err != nil {
		return log.Err("failed to run migrations", err)
	}

	return nil
}

func migrateDown(steps int, config config.Config, log logger.Logger) error {
	log = log.Function("migrateDown")
	log.Info("Running migrations down", "steps", steps)

	if err := runMigrations(config, log, migrate.Down, steps); err != nil {
		return log.Err("failed to run migrations", err)
	}

	return nil
}

func newSeeder(db *database.DB, config config.Config) *seed.Seeder {
	seeder := seed.New(
		repositories.New(*db),
		services.NewTransactionService(*db),
		services.NewAuthService(config),
	)
	seeder.Clear = seed.TruncateAll(db.SQL)
	return seeder
}

func migrateSeed(db *database.DB, config config.Config, args []string, log logger.Logger) error {
	log = log.Function("migrateSeed")

	flags := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	clearData := flags.Bool("clear", false, "clear existing data before loading the sample data")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := migrateUp(db, config, log); err != nil {
		return err
	}

	log.Info("Seeding database")
	summary, err := newSeeder(db, config).LoadSample(context.Background(), *clearData)
	if err != nil {
		return log.Err("failed to seed database", err)
	}
	if summary.Skipped {
		return nil
	}

	return db.FlushAllCaches()
}

func migrateGenerate(db *database.DB, config config.Config, args []string, log logger.Logger) error {
	log = log.Function("migrateGenerate")

	defaults := seed.DefaultGenerateOptions()
	flags := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	teams := flags.Int("teams", defaults.Teams, "number of maintenance teams to create")
	users := flags.Int("users", defaults.Users, "number of users to create")
	equipment := flags.Int("equipment", defaults.Equipment, "number of equipment items to create")
	requests := flags.Int("requests", defaults.Requests, "number of maintenance requests to create")
	clearData := flags.Bool("clear", false, "clear existing data before generating new data")
	randomSeed := flags.Int64("seed", 0, "random seed for reproducible output, 0 picks one")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if err := migrateUp(db, config, log); err != nil {
		return err
	}

	faker := utils.NewDateFaker()
	if *randomSeed != 0 {
		faker.SetSeed(*randomSeed)
	}

	log.Info("Generating data")
	_, err := newSeeder(db, config).Generate(context.Background(), faker, seed.GenerateOptions{
		Teams:     *teams,
		Users:     *users,
		Equipment: *equipment,
		Requests:  *requests,
		Clear:     *clearData,
	})
	if err != nil {
		return log.Err("failed to generate data", err)
	}

	return db.FlushAllCaches()
}

// runMigrations applies the SQL files under MIGRATION_PATH. A limit of 0
// applies every pending migration.
func runMigrations(
	config config.Config,
	log logger.Logger,
	direction migrate.MigrationDirection,
	limit int,
) error {
	log = log.Function("runMigrations")

	if _, err := os.Stat(MIGRATION_PATH); os.IsNotExist(err) {
		log.Info("Migrations directory does not exist, skipping file-based migrations")
		return nil
	}

	files, err := filepath.Glob(filepath.Join(MIGRATION_PATH, "*.sql"))
	if err != nil {
		return log.Err("failed to check for migration files", err)
	}

	if len(files) == 0 {
		log.Info("No migration files found, skipping file-based migrations")
		return nil
	}

	migrations := &migrate.FileMigrationSource{
		Dir: MIGRATION_PATH,
	}

	db, err := sql.Open(MIGRATION_DB, database.DSN(config))
	if err != nil {
		return log.Err("failed to open database for migrations", err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.Er("failed to close database", err)
		}
	}()

	n, err := migrate.ExecMax(db, MIGRATION_DB, migrations, direction, limit)
	if err != nil {
		return log.Err("failed to run migrations", err)
	}

	if n == 0 {
		log.Info("No migrations to apply")
	} else {
		log.Info("Applied migrations", "migrationCount", n, "direction", direction)
	}

	return nil
}
