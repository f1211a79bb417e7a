package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/AbdulWasayUl/go-world-clock/internal/zoneinfo"
	"github.com/AbdulWasayUl/go-world-clock/models"
	"github.com/AbdulWasayUl/go-world-clock/services/worldtime"
	"github.com/stretchr/testify/require"
)

var refInstant = time.Date(2025, time.June, 1, 23, 30, 0, 0, time.UTC)

// stubResolver resolves through the time package like the real directory does.
type stubResolver struct {
	err error
}

func (s stubResolver) Resolve(_ context.Context, id string) (models.ZoneInfo, error) {
	if s.err != nil {
		return models.ZoneInfo{}, s.err
	}
	if id == "" || id == "Local" {
		return models.ZoneInfo{}, fmt.Errorf("%w: %q", zoneinfo.ErrZoneNotFound, id)
	}
	loc, err := time.LoadLocation(id)
	if err != nil {
		return models.ZoneInfo{}, fmt.Errorf("%w: %q", zoneinfo.ErrZoneNotFound, id)
	}
	return models.ZoneInfo{ID: id, Location: loc}, nil
}

func newTestService(err error) *worldtime.Service {
	return worldtime.NewService(stubResolver{err: err}, time.FixedZone("HOST", -4*3600))
}

type stubLister struct {
	zones []models.ZoneInfo
	err   error
}

func (s stubLister) List(context.Context) ([]models.ZoneInfo, error) {
	return s.zones, s.err
}

func sampleZones() []models.ZoneInfo {
	return []models.ZoneInfo{
		{ID: "America/New_York", DisplayName: "(UTC-05:00) New York", StandardName: "EST", BaseOffset: -5 * time.Hour},
		{ID: "Asia/Bangkok", DisplayName: "(UTC+07:00) Bangkok", StandardName: "+07", BaseOffset: 7 * time.Hour},
		{ID: "Asia/Kolkata", DisplayName: "(UTC+05:30) Kolkata", StandardName: "IST", BaseOffset: 5*time.Hour + 30*time.Minute},
		{ID: "Europe/Istanbul", DisplayName: "(UTC+03:00) Istanbul", StandardName: "+03", BaseOffset: 3 * time.Hour},
		{ID: "UTC", DisplayName: "(UTC) UTC", StandardName: "UTC"},
	}
}

func serve(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
