package zoneinfo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AbdulWasayUl/go-world-clock/internal/clock"
	"github.com/AbdulWasayUl/go-world-clock/models"
)

var ErrZoneNotFound = errors.New("zone not found")

// Directory answers lookups by identifier and enumerates the catalog.
type Directory struct {
	source  Source
	clock   clock.Clock
	catalog *Catalog
}

func NewDirectory(src Source, clk clock.Clock, workers int) *Directory {
	return &Directory{
		source:  src,
		clock:   clk,
		catalog: NewCatalog(src, clk, workers),
	}
}

// Resolve looks a zone up by its canonical key. Keys the catalog would never
// list, such as posixrules or localtime, are refused for every source.
func (d *Directory) Resolve(ctx context.Context, id string) (models.ZoneInfo, error) {
	if !validID(id) || !isZoneName(id) {
		return models.ZoneInfo{}, fmt.Errorf("%w: %q", ErrZoneNotFound, id)
	}
	loc, err := load(ctx, d.source, id)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.ZoneInfo{}, ctxErr
		}
		return models.ZoneInfo{}, fmt.Errorf("%w: %q", ErrZoneNotFound, id)
	}
	return Describe(id, loc, d.clock.Now()), nil
}

// List returns every zone in the catalog, building it on first use.
func (d *Directory) List(ctx context.Context) ([]models.ZoneInfo, error) {
	return d.catalog.List(ctx)
}

func (d *Directory) Catalog() *Catalog {
	return d.catalog
}

// Describe derives static metadata for loc. The standard offset is the smaller of
// the offsets in force on 1 January and 1 July of ref's year; zones whose winter
// time is flagged as daylight saving (Europe/Dublin) still get their winter offset.
func Describe(id string, loc *time.Location, ref time.Time) models.ZoneInfo {
	abbr, offset := standardZone(loc, ref.Year())
	base := time.Duration(offset) * time.Second
	return models.ZoneInfo{
		ID:           id,
		DisplayName:  displayName(id, base),
		StandardName: abbr,
		BaseOffset:   base,
		Location:     loc,
	}
}

func standardZone(loc *time.Location, year int) (string, int) {
	jan := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).In(loc)
	jul := time.Date(year, time.July, 1, 0, 0, 0, 0, time.UTC).In(loc)
	janAbbr, janOffset := jan.Zone()
	julAbbr, julOffset := jul.Zone()
	if julOffset < janOffset {
		return julAbbr, julOffset
	}
	return janAbbr, janOffset
}

// displayName renders "(UTC+05:30) Kolkata" style labels.
func displayName(id string, offset time.Duration) string {
	return fmt.Sprintf("(%s) %s", FormatOffset(offset), exemplarCity(id))
}

// FormatOffset renders an offset as "UTC", "UTC+07:00" or "UTC-03:30".
func FormatOffset(offset time.Duration) string {
	if offset == 0 {
		return "UTC"
	}
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	minutes := int(offset / time.Minute)
	return fmt.Sprintf("UTC%c%02d:%02d", sign, minutes/60, minutes%60)
}

func exemplarCity(id string) string {
	if i := strings.LastIndexByte(id, '/'); i >= 0 {
		id = id[i+1:]
	}
	return strings.ReplaceAll(id, "_", " ")
}

// validID rejects keys the time package would treat specially, keys with empty
// or relative segments, and anything that could escape the zoneinfo root.
func validID(id string) bool {
	if id == "" || id == "Local" {
		return false
	}
	if strings.ContainsAny(id, "\\\x00") {
		return false
	}
	for _, part := range strings.Split(id, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
