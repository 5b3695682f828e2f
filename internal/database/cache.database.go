package database

import (
	"context"
	"fmt"
	"time"

	"gearguard/config"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

// Valkey database indexes.
const (
	// GENERAL_CACHE_INDEX holds read caches such as the status board.
	GENERAL_CACHE_INDEX = iota
	// SESSION_CACHE_INDEX holds job locks.
	SESSION_CACHE_INDEX
	// EVENTS_CACHE_INDEX carries pub/sub traffic for the event bus.
	EVENTS_CACHE_INDEX
)

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.DatabaseCacheAddress
	port := config.DatabaseCachePort
	if address == "" || port == 0 {
		return log.Errorf("failed to initialize cache database", "address or port is empty")
	}

	newClient := func(index int) (CacheClient, error) {
		return valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{fmt.Sprintf("%s:%d", address, port)},
			SelectDB:    index,
		})
	}

	var cacheDB Cache
	var err error

	cacheDB.General, err = newClient(GENERAL_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Session, err = newClient(SESSION_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create session valkey client", err)
	}

	cacheDB.Events, err = newClient(EVENTS_CACHE_INDEX)
	if err != nil {
		return log.Err("failed to create events valkey client", err)
	}

	s.Cache = cacheDB

	if config.DatabaseCacheReset != -1 {
		go clearCacheDB(config.DatabaseCacheReset, cacheDB)
	}

	return nil
}

func cacheClientForIndex(index int, cacheDB Cache) (CacheClient, string) {
	switch index {
	case GENERAL_CACHE_INDEX:
		return cacheDB.General, "General"
	case SESSION_CACHE_INDEX:
		return cacheDB.Session, "Session"
	case EVENTS_CACHE_INDEX:
		return cacheDB.Events, "Events"
	}
	return nil, ""
}

func clearCacheDB(index int, cacheDB Cache) {
	log := logger.New("database").File("cache.database").Function("clearCacheDB")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, dbName := cacheClientForIndex(index, cacheDB)
	if client == nil {
		log.Warn("Invalid cache database index", "index", index)
		return
	}

	if err := client.Do(ctx, client.B().Flushdb().Build()).Error(); err != nil {
		log.Er("Failed to clear cache database", err, "index", index, "dbName", dbName)
		return
	}

	log.Info("Successfully cleared cache database", "index", index, "dbName", dbName)
}
