package workpool

import (
	"context"
	"time"

	"github.com/AbdulWasayUl/go-world-clock/internal/channels"
	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
	"github.com/AbdulWasayUl/go-world-clock/models"
)

const loadTimeout = 10 * time.Second

type WorkerPool struct {
	WorkerCount int
	Channels    *channels.Channels
}

func New(channels *channels.Channels, workerCount int) *WorkerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &WorkerPool{
		WorkerCount: workerCount,
		Channels:    channels,
	}
}

func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.WorkerCount; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	for req := range wp.Channels.LoadRequest {
		wp.process(ctx, id, req)
	}
	logger.Debug("Worker %d stopped.", id)
}

func (wp *WorkerPool) process(ctx context.Context, id int, req models.LoadRequest) {
	defer wp.Channels.WG.Done()

	// drain without work once the caller has given up
	if ctx.Err() != nil {
		return
	}

	opCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	// 1. Fetch zone data
	data, err := req.FetchFunc(opCtx, req.ID)
	if err != nil {
		logger.Error("[%s] Worker %d failed to fetch zone %s: %v", req.Source, id, req.ID, err)
		return
	}

	// 2. Parse into zone metadata
	zone, err := req.ParseFunc(req.ID, data)
	if err != nil {
		logger.Debug("[%s] Worker %d skipped %s: %v", req.Source, id, req.ID, err)
		return
	}

	// 3. Store into the result slot
	req.StoreFunc(req.Index, zone)
}

func (wp *WorkerPool) Stop() {
	close(wp.Channels.LoadRequest)
}
