package worldtime

import (
	"time"

	"github.com/AbdulWasayUl/go-world-clock/models"
)

type NowResponse struct {
	TimeZone string    `json:"timeZone"`
	Kind     string    `json:"kind"`
	Now      time.Time `json:"now"`
}

// DirectoryEntry describes a zone independently of the current time. UTCOffset
// is truncated toward zero to whole hours; UTCOffsetMinutes is exact.
type DirectoryEntry struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	StandardName     string `json:"standardName"`
	UTCOffset        int    `json:"utcOffset"`
	UTCOffsetMinutes int    `json:"utcOffsetMinutes"`
}

type Endpoints struct {
	Now      string `json:"now"`
	Timezone string `json:"timezone"`
}

type Greeting struct {
	Message   string    `json:"message"`
	Endpoints Endpoints `json:"endpoints"`
}

func BuildNowResponses(entries []models.NowEntry) []NowResponse {
	out := make([]NowResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, NowResponse{
			TimeZone: e.TimeZone,
			Kind:     string(e.Kind),
			Now:      e.Now,
		})
	}
	return out
}

func BuildDirectoryEntries(zones []models.ZoneInfo) []DirectoryEntry {
	out := make([]DirectoryEntry, 0, len(zones))
	for _, z := range zones {
		out = append(out, DirectoryEntry{
			ID:               z.ID,
			Name:             z.DisplayName,
			StandardName:     z.StandardName,
			UTCOffset:        int(z.BaseOffset / time.Hour),
			UTCOffsetMinutes: int(z.BaseOffset / time.Minute),
		})
	}
	return out
}

func BuildGreeting() Greeting {
	return Greeting{
		Message: "Hello World",
		Endpoints: Endpoints{
			Now:      "/now",
			Timezone: "/timezone",
		},
	}
}
