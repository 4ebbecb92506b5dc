package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gamebalance/internal/app/session"
	"gamebalance/internal/providers/redis"
	"gamebalance/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	GetStats(ctx context.Context, userID string) (*Stats, error)
	InvalidateCache(ctx context.Context, userID string)
	// HandleSessionEnded is an event bus handler for session.EventSessionEnded.
	HandleSessionEnded(event utils.Event)
}

type service struct {
	sessions session.Service
	redisP   *redis.RedisProvider
	clock    utils.Clock
	loc      *time.Location
	logger   *zap.SugaredLogger
}

// NewService builds the stats service. redisP may be nil, which disables caching.
func NewService(sessions session.Service, redisP *redis.RedisProvider, clock utils.Clock, loc *time.Location, logger *zap.Logger) Service {
	if loc == nil {
		loc = time.Local
	}
	return &service{
		sessions: sessions,
		redisP:   redisP,
		clock:    clock,
		loc:      loc,
		logger:   logger.Sugar(),
	}
}

func (s *service) GetStats(ctx context.Context, userID string) (*Stats, error) {
	if userID == "" {
		return nil, session.ErrUnauthenticated
	}

	now := s.clock.Now().In(s.loc)
	key := cacheKey(userID, now)

	if s.redisP != nil {
		if cached, err := s.redisP.Get(ctx, key).Result(); err == nil && cached != "" {
			var st Stats
			if json.Unmarshal([]byte(cached), &st) == nil {
				return &st, nil
			}
		}
	}

	sessions, err := s.sessions.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	st := Aggregate(sessions, now)

	// A session ended between List and this write can leave stale stats
	// cached until the TTL expires. Accepted for a single client per user.
	if s.redisP != nil {
		if data, err := json.Marshal(st); err == nil {
			if err := s.redisP.SetWithDefaultTTL(ctx, key, data, 0).Err(); err != nil {
				s.logger.Warnw("GetStats: failed to cache stats", "user_id", userID, "error", err)
			}
		}
	}

	return &st, nil
}

func (s *service) InvalidateCache(ctx context.Context, userID string) {
	if s.redisP == nil {
		return
	}
	key := cacheKey(userID, s.clock.Now().In(s.loc))
	if err := s.redisP.Del(ctx, key).Err(); err != nil {
		s.logger.Warnw("InvalidateCache: failed", "user_id", userID, "error", err)
	}
}

func (s *service) HandleSessionEnded(event utils.Event) {
	ended, ok := event.Data.(session.EndedEvent)
	if !ok {
		s.logger.Warnw("HandleSessionEnded: unexpected payload", "event", event.Event)
		return
	}
	s.InvalidateCache(context.Background(), ended.UserID)
}

func cacheKey(userID string, now time.Time) string {
	return fmt.Sprintf("stats:%s:%s", userID, now.Format(dayKeyLayout))
}

// IsUnauthenticated reports whether err came from a call without a user.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, session.ErrUnauthenticated)
}
