package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/AbdulWasayUl/go-world-clock/internal/clock"
	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
	"github.com/AbdulWasayUl/go-world-clock/internal/zoneinfo"
	"github.com/AbdulWasayUl/go-world-clock/models"
	"github.com/AbdulWasayUl/go-world-clock/services/worldtime"
)

// NowReporter is the minimal interface needed to answer /now.
type NowReporter interface {
	CommonZonesNow(ctx context.Context, ref time.Time) ([]models.NowEntry, error)
	SpecificZonesNow(ctx context.Context, ref time.Time, ids []string) ([]models.NowEntry, error)
}

// HandleNow reports the current time in the common zones, or in the zones named
// by the comma separated tz parameter. The clock is read once per request.
func HandleNow(svc NowReporter, clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRead(w, r) {
			return
		}

		ref := clk.Now()
		query := r.URL.Query()

		var (
			entries []models.NowEntry
			err     error
		)
		if values, ok := query["tz"]; ok {
			// repeated tz keys extend the list
			entries, err = svc.SpecificZonesNow(r.Context(), ref, worldtime.SplitZones(strings.Join(values, ",")))
		} else {
			entries, err = svc.CommonZonesNow(r.Context(), ref)
		}
		if err != nil {
			switch {
			case errors.Is(err, zoneinfo.ErrZoneNotFound):
				writeError(w, http.StatusBadRequest, codeZoneNotFound, err.Error())
			default:
				logger.Error("now: %v", err)
				writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			}
			return
		}

		writeJSON(w, r, http.StatusOK, worldtime.BuildNowResponses(entries))
	}
}
