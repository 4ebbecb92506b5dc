package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gamebalance/internal/kv"
)

var ErrSessionNotFound = errors.New("session not found")

type Repository interface {
	Save(ctx context.Context, session *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	ListByUser(ctx context.Context, userID string) ([]*Session, error)
	// GetCurrent returns the id of the user's active session, or ErrNoActiveSession.
	GetCurrent(ctx context.Context, userID string) (string, error)
	SetCurrent(ctx context.Context, userID, sessionID string) error
	ClearCurrent(ctx context.Context, userID string) error
}

type repository struct {
	store kv.Store
}

func NewRepository(store kv.Store) Repository {
	return &repository{store: store}
}

func (r *repository) Save(ctx context.Context, session *Session) error {
	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	return r.store.Set(ctx, session.ID, session)
}

func (r *repository) Get(ctx context.Context, id string) (*Session, error) {
	var session Session
	if err := r.store.Get(ctx, id, &session); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.ID == "" {
		session.ID = id
	}
	return &session, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Session, error) {
	entries, err := r.store.ScanPrefix(ctx, userPrefix(userID))
	if err != nil {
		return nil, err
	}

	sessions := make([]*Session, 0, len(entries))
	for _, e := range entries {
		var session Session
		if err := json.Unmarshal(e.Value, &session); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", e.Key, err)
		}
		if session.ID == "" {
			session.ID = e.Key
		}
		sessions = append(sessions, &session)
	}
	return sessions, nil
}

func (r *repository) GetCurrent(ctx context.Context, userID string) (string, error) {
	var id string
	if err := r.store.Get(ctx, currentKey(userID), &id); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return "", ErrNoActiveSession
		}
		return "", err
	}
	if id == "" {
		return "", ErrNoActiveSession
	}
	return id, nil
}

func (r *repository) SetCurrent(ctx context.Context, userID, sessionID string) error {
	return r.store.Set(ctx, currentKey(userID), sessionID)
}

func (r *repository) ClearCurrent(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, currentKey(userID))
}
