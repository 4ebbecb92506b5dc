package session

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gamebalance/internal/utils"

	"go.uber.org/zap"
)

const EventSessionEnded = "session_ended"

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidDuration = errors.New("duration must be a non-negative number of seconds")
)

type Service interface {
	Start(ctx context.Context, userID string, req StartSessionRequest) (*Session, error)
	// End closes the user's active session with the client-reported duration.
	// The returned session is nil when the pointer referenced a record that no longer exists.
	End(ctx context.Context, userID string, durationSeconds int64) (*Session, error)
	// List returns every session of the user, most recent start first.
	List(ctx context.Context, userID string) ([]*Session, error)
}

type service struct {
	repo     Repository
	clock    utils.Clock
	eventBus *utils.EventBus
	logger   *zap.SugaredLogger
}

func NewService(repo Repository, clock utils.Clock, eventBus *utils.EventBus, logger *zap.Logger) Service {
	return &service{
		repo:     repo,
		clock:    clock,
		eventBus: eventBus,
		logger:   logger.Sugar(),
	}
}

func (s *service) Start(ctx context.Context, userID string, req StartSessionRequest) (*Session, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	// A second start overwrites the pointer and leaves the previous session active.
	// Multi-device use is not supported; the overwrite is logged so it can be traced.
	if previous, err := s.repo.GetCurrent(ctx, userID); err == nil {
		s.logger.Warnw("Start: replacing active session pointer", "user_id", userID, "previous_session", previous)
	} else if !errors.Is(err, ErrNoActiveSession) {
		return nil, fmt.Errorf("failed to read current session: %w", err)
	}

	now := s.clock.Now()
	session := &Session{
		ID:        Key(userID, now),
		UserID:    userID,
		GameName:  req.GameName,
		GameIcon:  req.GameIcon,
		GameColor: req.GameColor,
		StartTime: now,
		IsActive:  true,
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	if err := s.repo.SetCurrent(ctx, userID, session.ID); err != nil {
		return nil, fmt.Errorf("failed to set current session: %w", err)
	}

	s.logger.Infow("Session started", "user_id", userID, "session_id", session.ID, "game", session.GameName)
	return session, nil
}

func (s *service) End(ctx context.Context, userID string, durationSeconds int64) (*Session, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if durationSeconds < 0 {
		return nil, ErrInvalidDuration
	}

	currentID, err := s.repo.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.Get(ctx, currentID)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	now := s.clock.Now()
	if session != nil {
		session.EndTime = &now
		session.DurationSeconds = durationSeconds
		session.IsActive = false
		if err := s.repo.Save(ctx, session); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	} else {
		s.logger.Warnw("End: current session record missing, clearing pointer", "user_id", userID, "session_id", currentID)
	}

	if err := s.repo.ClearCurrent(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to clear current session: %w", err)
	}

	if s.eventBus != nil {
		s.eventBus.Publish(EventSessionEnded, EndedEvent{UserID: userID, SessionID: currentID, EndedAt: now})
	}

	s.logger.Infow("Session ended", "user_id", userID, "session_id", currentID, "duration_sec", durationSeconds)
	return session, nil
}

func (s *service) List(ctx context.Context, userID string) ([]*Session, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}

	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].StartTime.Equal(sessions[j].StartTime) {
			return sessions[i].StartTime.After(sessions[j].StartTime)
		}
		return sessions[i].ID > sessions[j].ID
	})
	return sessions, nil
}
