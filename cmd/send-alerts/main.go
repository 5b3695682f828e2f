package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"gearguard/config"
	"gearguard/internal/database"
	"gearguard/internal/events"
	"gearguard/internal/services"
	"gearguard/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/spf13/pflag"
)

// send-alerts runs one maintenance alert sweep and exits.
func main() {
	log := logger.New("send-alerts")

	dateFlag := pflag.String("date", "", "sweep for this YYYY-MM-DD instead of today")
	pflag.Parse()

	cfg, err := config.New()
	if err != nil {
		os.Exit(1)
	}

	day := time.Now().In(cfg.Location())
	if *dateFlag != "" {
		parsed, err := utils.ParseDateIn(*dateFlag, cfg.Location())
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid --date %q: expected YYYY-MM-DD\n", *dateFlag)
			os.Exit(2)
		}
		day = parsed
	}

	db, err := connect(cfg)
	if err != nil {
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Er("failed to close database", err)
		}
	}()

	eventBus := events.New(db.Cache.Events)
	defer eventBus.Close()

	service := services.New(db, cfg, eventBus)

	fmt.Printf("Checking for maintenance requests scheduled for: %s\n", day.Format(utils.DateLayout))
	result, err := service.AlertDispatch.SweepDate(context.Background(), day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "alert sweep failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(summary(result))
	if result.Failed > 0 {
		os.Exit(1)
	}
}

// connect skips valkey when no cache address is configured; the job lock
// then falls back to an in-process lock.
func connect(cfg config.Config) (database.DB, error) {
	if cfg.DatabaseCacheAddress == "" {
		return database.NewSQLOnly(cfg)
	}
	return database.New(cfg)
}

func summary(result services.DispatchResult) string {
	return fmt.Sprintf(
		"Successfully processed %d request(s). Sent %d new notification(s), %d already present, %d failed.",
		result.Requests,
		result.Sent,
		result.Skipped,
		result.Failed,
	)
}
