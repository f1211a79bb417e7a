package models

import (
	"context"
	"time"
)

// LoadRequest is one unit of catalog work handed to the worker pool.
type LoadRequest struct {
	Index     int
	ID        string
	Source    string
	FetchFunc func(ctx context.Context, id string) ([]byte, error)
	ParseFunc func(id string, data []byte) (ZoneInfo, error)
	StoreFunc func(index int, zone ZoneInfo)
}

type RateLimitSettings struct {
	MaxRequests int
	PerDuration time.Duration
}
