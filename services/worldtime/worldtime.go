package worldtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AbdulWasayUl/go-world-clock/models"
)

// CommonZones are reported by /now when no zones are requested, in this order.
var CommonZones = []string{
	"Asia/Bangkok",
	"Asia/Singapore",
	"Australia/Melbourne",
	"Asia/Shanghai",
	"Africa/Johannesburg",
}

// Resolver looks zones up by identifier.
type Resolver interface {
	Resolve(ctx context.Context, id string) (models.ZoneInfo, error)
}

type Service struct {
	Directory Resolver
	Local     *time.Location
}

// NewService builds a service whose "local" entry uses local, or time.Local when nil.
func NewService(dir Resolver, local *time.Location) *Service {
	if local == nil {
		local = time.Local
	}
	return &Service{
		Directory: dir,
		Local:     local,
	}
}

// NowInZone expresses ref on zone's wall clock.
func NowInZone(ref time.Time, zone models.ZoneInfo) models.NowEntry {
	loc := zone.Location
	if loc == nil {
		loc = time.UTC
	}
	return models.NowEntry{
		Kind:     models.KindZone,
		TimeZone: zone.ID,
		Now:      ref.In(loc),
	}
}

// CommonZonesNow reports ref for local, utc and then every CommonZones entry.
func (s *Service) CommonZonesNow(ctx context.Context, ref time.Time) ([]models.NowEntry, error) {
	return s.zonesNow(ctx, ref, CommonZones)
}

// SpecificZonesNow reports ref for local, utc and then each id in order. Any
// unknown id fails the whole call.
func (s *Service) SpecificZonesNow(ctx context.Context, ref time.Time, ids []string) ([]models.NowEntry, error) {
	return s.zonesNow(ctx, ref, ids)
}

func (s *Service) zonesNow(ctx context.Context, ref time.Time, ids []string) ([]models.NowEntry, error) {
	entries := make([]models.NowEntry, 0, len(ids)+2)
	entries = append(entries,
		models.NowEntry{Kind: models.KindLocal, TimeZone: string(models.KindLocal), Now: ref.In(s.Local)},
		models.NowEntry{Kind: models.KindUTC, TimeZone: string(models.KindUTC), Now: ref.UTC()},
	)

	for _, id := range ids {
		zone, err := s.Directory.Resolve(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", id, err)
		}
		entries = append(entries, NowInZone(ref, zone))
	}
	return entries, nil
}

// SplitZones turns a raw tz query value into identifiers, trimming whitespace
// around each term and dropping empty ones.
func SplitZones(raw string) []string {
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		ids = append(ids, part)
	}
	return ids
}
