package session

import (
	"fmt"
	"time"
)

const (
	sessionKeyPrefix = "session:"
	currentKeyPrefix = "current_session:"
)

// Session is one timed play interval. Duration is in whole seconds as reported by the client.
type Session struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	GameName        string     `json:"gameName"`
	GameIcon        string     `json:"gameIcon"`
	GameColor       string     `json:"gameColor"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
	DurationSeconds int64      `json:"duration"`
	IsActive        bool       `json:"isActive"`
}

type StartSessionRequest struct {
	GameName  string `json:"gameName" binding:"required,max=64"`
	GameIcon  string `json:"gameIcon" binding:"max=16"`
	GameColor string `json:"gameColor" binding:"max=64"`
}

type EndSessionRequest struct {
	Duration *int64 `json:"duration" binding:"required,min=0"`
}

type StartSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SessionListResponse struct {
	Sessions []*Session `json:"sessions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// EndedEvent is published on the event bus after a session is closed.
type EndedEvent struct {
	UserID    string
	SessionID string
	EndedAt   time.Time
}

// Key returns the store key for a session started by userID at startedAt.
// Millisecond granularity: two starts in the same millisecond share a key.
func Key(userID string, startedAt time.Time) string {
	return fmt.Sprintf("%s%s:%d", sessionKeyPrefix, userID, startedAt.UnixMilli())
}

func userPrefix(userID string) string {
	return sessionKeyPrefix + userID + ":"
}

func currentKey(userID string) string {
	return currentKeyPrefix + userID
}
