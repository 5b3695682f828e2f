package services

import (
	"context"
	"sync"
	"time"

	"gearguard/internal/database"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"
)

const jobLockPrefix = "job-lock:"

// Locker grants exclusive ownership of a named job for at most ttl.
type Locker interface {
	Acquire(ctx context.Context, name string, ttl time.Duration) (release func(), acquired bool, err error)
}

// JobLockService holds job locks in valkey so only one process runs a
// job at a time. Without a cache client it falls back to in-process locks.
type JobLockService struct {
	cache valkey.Client
	log   logger.Logger
	mu    sync.Mutex
	local map[string]bool
}

func NewJobLockService(cache valkey.Client) *JobLockService {
	return &JobLockService{
		cache: cache,
		log:   logger.New("jobLockService"),
		local: make(map[string]bool),
	}
}

func (s *JobLockService) Acquire(
	ctx context.Context,
	name string,
	ttl time.Duration,
) (func(), bool, error) {
	log := s.log.TraceFromContext(ctx).Function("Acquire")

	if s.cache == nil {
		return s.acquireLocal(name)
	}

	key := jobLockPrefix + name
	token := uuid.New().String()

	acquired, err := database.NewCacheBuilder(s.cache, key).
		WithContext(ctx).
		WithValue(token).
		WithTTL(ttl).
		SetNX()
	if err != nil {
		return nil, false, log.Err("failed to acquire job lock", err, "job", name)
	}
	if !acquired {
		return nil, false, nil
	}

	release := func() {
		released, err := database.NewCacheBuilder(s.cache, key).
			WithValue(token).
			DeleteIfValue()
		if err != nil {
			log.Er("failed to release job lock", err, "job", name)
			return
		}
		if !released {
			log.Warn("job lock expired before release", "job", name)
		}
	}

	return release, true, nil
}

func (s *JobLockService) acquireLocal(name string) (func(), bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.local[name] {
		return nil, false, nil
	}
	s.local[name] = true

	var once sync.Once
	release := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.local, name)
			s.mu.Unlock()
		})
	}
	return release, true, nil
}
