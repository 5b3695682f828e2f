package services

import (
	"context"
	"time"

	"gearguard/internal/database"
	. "gearguard/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/valkey-io/valkey-go"
)

const (
	boardCacheKey = "maintenance-requests:by-status"
	boardCacheTTL = 30 * time.Second
)

// BoardCacheService keeps the status board in the general cache. Lookups
// and writes are best effort; a nil client disables caching.
type BoardCacheService struct {
	cache valkey.Client
	log   logger.Logger
}

func NewBoardCacheService(cache valkey.Client) *BoardCacheService {
	return &BoardCacheService{cache: cache, log: logger.New("boardCacheService")}
}

func (s *BoardCacheService) Get(ctx context.Context) ([]StatusGroup, bool) {
	if s == nil || s.cache == nil {
		return nil, false
	}

	var groups []StatusGroup
	found, err := database.NewCacheBuilder(s.cache, boardCacheKey).WithContext(ctx).Get(&groups)
	if err != nil {
		s.log.TraceFromContext(ctx).Function("Get").Warn("board cache read failed", "error", err)
		return nil, false
	}
	return groups, found
}

func (s *BoardCacheService) Set(ctx context.Context, groups []StatusGroup) {
	if s == nil || s.cache == nil {
		return
	}

	if err := database.NewCacheBuilder(s.cache, boardCacheKey).
		WithContext(ctx).
		WithStruct(groups).
		WithTTL(boardCacheTTL).
		Set(); err != nil {
		s.log.TraceFromContext(ctx).Function("Set").Warn("board cache write failed", "error", err)
	}
}

func (s *BoardCacheService) Invalidate(ctx context.Context) {
	if s == nil || s.cache == nil {
		return
	}

	if err := database.NewCacheBuilder(s.cache, boardCacheKey).WithContext(ctx).Delete(); err != nil {
		s.log.TraceFromContext(ctx).Function("Invalidate").Warn("board cache invalidation failed", "error", err)
	}
}
