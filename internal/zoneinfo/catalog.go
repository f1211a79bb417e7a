package zoneinfo

import (
	"context"
	"fmt"
	"sync"

	"github.com/AbdulWasayUl/go-world-clock/internal/channels"
	"github.com/AbdulWasayUl/go-world-clock/internal/clock"
	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
	"github.com/AbdulWasayUl/go-world-clock/internal/workpool"
	"github.com/AbdulWasayUl/go-world-clock/models"
)

// Catalog memoizes the described zone list of a Source.
type Catalog struct {
	source  Source
	clock   clock.Clock
	workers int

	buildMu sync.Mutex

	mu    sync.RWMutex
	zones []models.ZoneInfo
	built bool
}

func NewCatalog(src Source, clk clock.Clock, workers int) *Catalog {
	return &Catalog{
		source:  src,
		clock:   clk,
		workers: workers,
	}
}

// List returns a copy of the catalog, building it on first use.
func (c *Catalog) List(ctx context.Context) ([]models.ZoneInfo, error) {
	c.mu.RLock()
	if c.built {
		out := append([]models.ZoneInfo{}, c.zones...)
		c.mu.RUnlock()
		return out, nil
	}
	c.mu.RUnlock()

	if err := c.refresh(ctx, false); err != nil {
		return nil, err
	}
	return c.List(ctx)
}

// Refresh rebuilds the catalog from the source and swaps it in. On failure the
// previous catalog is kept.
func (c *Catalog) Refresh(ctx context.Context) error {
	return c.refresh(ctx, true)
}

func (c *Catalog) refresh(ctx context.Context, force bool) error {
	c.buildMu.Lock()
	defer c.buildMu.Unlock()

	if !force {
		c.mu.RLock()
		built := c.built
		c.mu.RUnlock()
		if built {
			return nil
		}
	}

	zones, err := c.build(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.zones = zones
	c.built = true
	c.mu.Unlock()

	logger.Info("[%s] Catalog refreshed with %d zones", c.source.Name(), len(zones))
	return nil
}

func (c *Catalog) build(ctx context.Context) ([]models.ZoneInfo, error) {
	ids, err := c.source.Zones(ctx)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}

	ref := c.clock.Now()
	slots := make([]models.ZoneInfo, len(ids))
	filled := make([]bool, len(ids))

	chans := channels.New()
	wp := workpool.New(chans, c.workers)
	wp.Start(ctx)

	for i, id := range ids {
		chans.Submit(models.LoadRequest{
			Index:     i,
			ID:        id,
			Source:    c.source.Name(),
			FetchFunc: c.source.Fetch,
			ParseFunc: func(id string, data []byte) (models.ZoneInfo, error) {
				loc, err := c.source.Parse(id, data)
				if err != nil {
					return models.ZoneInfo{}, err
				}
				return Describe(id, loc, ref), nil
			},
			// each index is written by exactly one worker
			StoreFunc: func(index int, zone models.ZoneInfo) {
				slots[index] = zone
				filled[index] = true
			},
		})
	}

	wp.Stop()
	chans.WG.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	zones := make([]models.ZoneInfo, 0, len(ids))
	for i, ok := range filled {
		if ok {
			zones = append(zones, slots[i])
		}
	}
	return zones, nil
}
