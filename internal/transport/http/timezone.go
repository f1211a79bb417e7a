package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
	"github.com/AbdulWasayUl/go-world-clock/internal/zoneinfo"
	"github.com/AbdulWasayUl/go-world-clock/models"
	"github.com/AbdulWasayUl/go-world-clock/services/worldtime"
)

// ZoneLister is the minimal interface needed to answer /timezone.
type ZoneLister interface {
	List(ctx context.Context) ([]models.ZoneInfo, error)
}

// HandleTimezones lists the zone directory, filtered by q when present.
func HandleTimezones(dir ZoneLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowRead(w, r) {
			return
		}

		zones, err := dir.List(r.Context())
		if err != nil {
			logger.Error("timezone: %v", err)
			writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
			return
		}

		query := r.URL.Query()
		if values, ok := query["q"]; ok {
			zones = zoneinfo.Filter(zones, strings.Join(values, ","))
		}

		writeJSON(w, r, http.StatusOK, worldtime.BuildDirectoryEntries(zones))
	}
}
