// Package kv describes the key/value store the application persists records in.
// Values are JSON documents; keys are plain strings laid out as "<kind>:<id>[:<suffix>]".
package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kv: key not found")

// Entry is one key/value pair returned by a prefix scan. Value holds raw JSON.
type Entry struct {
	Key   string
	Value []byte
}

type Store interface {
	// Get decodes the JSON stored at key into dst. Returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string, dst interface{}) error
	// Set stores value as JSON at key without expiry.
	Set(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
	// ScanPrefix returns every entry whose key starts with prefix, sorted by key.
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)
}
