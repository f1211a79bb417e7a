package zoneinfo

import (
	"strings"

	"github.com/AbdulWasayUl/go-world-clock/models"
	"golang.org/x/text/cases"
)

// Filter keeps the zones whose identifier or display name contains query under
// Unicode case folding. Input order is preserved and the result is never nil.
func Filter(zones []models.ZoneInfo, query string) []models.ZoneInfo {
	fold := cases.Fold()
	q := fold.String(query)

	out := make([]models.ZoneInfo, 0, 32)
	for _, zone := range zones {
		if strings.Contains(fold.String(zone.ID), q) ||
			strings.Contains(fold.String(zone.DisplayName), q) {
			out = append(out, zone)
		}
	}
	return out
}
