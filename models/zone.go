package models

import "time"

// ZoneInfo is the static metadata of a time zone as reported by the host database.
type ZoneInfo struct {
	ID           string
	DisplayName  string
	StandardName string
	BaseOffset   time.Duration
	Location     *time.Location
}

// EntryKind tells clients how to read a NowEntry's TimeZone field.
type EntryKind string

const (
	KindZone  EntryKind = "zone"
	KindUTC   EntryKind = "utc"
	KindLocal EntryKind = "local"
)

// NowEntry is a reference instant expressed in one zone's wall clock.
type NowEntry struct {
	Kind     EntryKind
	TimeZone string
	Now      time.Time
}
