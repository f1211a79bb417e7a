package workpool_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AbdulWasayUl/go-world-clock/internal/channels"
	"github.com/AbdulWasayUl/go-world-clock/internal/workpool"
	"github.com/AbdulWasayUl/go-world-clock/models"
)

func waitOrFail(t *testing.T, wg *sync.WaitGroup, msg string) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
	}
}

func TestWorkerPool_New(t *testing.T) {
	ch := &channels.Channels{
		LoadRequest: make(chan models.LoadRequest, 10),
		WG:          &sync.WaitGroup{},
	}

	wp := workpool.New(ch, 3)

	if wp == nil {
		t.Fatal("Expected WorkerPool to be created")
	}
	if wp.WorkerCount != 3 {
		t.Errorf("Expected WorkerCount %d, got %d", 3, wp.WorkerCount)
	}
	if wp.Channels != ch {
		t.Error("Expected Channels to match")
	}
	if got := workpool.New(ch, 0).WorkerCount; got != 1 {
		t.Errorf("Expected at least one worker, got %d", got)
	}
}

func TestWorkerPool_SingleJob(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 1)

	var stored models.ZoneInfo
	var storedIndex int
	steps := make(chan string, 3)

	req := models.LoadRequest{
		Index:  4,
		Source: "test",
		ID:     "Asia/Bangkok",
		FetchFunc: func(ctx context.Context, id string) ([]byte, error) {
			steps <- "fetch"
			return []byte("data"), nil
		},
		ParseFunc: func(id string, data []byte) (models.ZoneInfo, error) {
			steps <- "parse"
			return models.ZoneInfo{ID: id}, nil
		},
		StoreFunc: func(index int, zone models.ZoneInfo) {
			steps <- "store"
			storedIndex = index
			stored = zone
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wp.Start(ctx)
	ch.Submit(req)
	waitOrFail(t, ch.WG, "Timeout waiting for jobs to complete")
	wp.Stop()

	close(steps)
	var order []string
	for s := range steps {
		order = append(order, s)
	}
	if len(order) != 3 || order[0] != "fetch" || order[1] != "parse" || order[2] != "store" {
		t.Errorf("Expected fetch, parse, store; got %v", order)
	}
	if storedIndex != 4 || stored.ID != "Asia/Bangkok" {
		t.Errorf("Unexpected stored result %d %+v", storedIndex, stored)
	}
}

func TestWorkerPool_MultipleJobs(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 4)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	wp.Start(ctx)

	const numJobs = 250
	results := make([]string, numJobs)
	for i := 0; i < numJobs; i++ {
		ch.Submit(models.LoadRequest{
			Index: i,
			ID:    "zone",
			FetchFunc: func(ctx context.Context, id string) ([]byte, error) {
				return []byte(id), nil
			},
			ParseFunc: func(id string, data []byte) (models.ZoneInfo, error) {
				return models.ZoneInfo{ID: string(data)}, nil
			},
			StoreFunc: func(index int, zone models.ZoneInfo) {
				results[index] = zone.ID
			},
		})
	}

	waitOrFail(t, ch.WG, "Timeout waiting for jobs")
	wp.Stop()

	for i, r := range results {
		if r != "zone" {
			t.Fatalf("Expected slot %d to be filled, got %q", i, r)
		}
	}
}

func TestWorkerPool_FetchError(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 1)

	var parseCalled, storeCalled atomic.Bool

	req := models.LoadRequest{
		ID: "test",
		FetchFunc: func(ctx context.Context, id string) ([]byte, error) {
			return nil, errors.New("fetch failed")
		},
		ParseFunc: func(id string, data []byte) (models.ZoneInfo, error) {
			parseCalled.Store(true)
			return models.ZoneInfo{}, nil
		},
		StoreFunc: func(index int, zone models.ZoneInfo) {
			storeCalled.Store(true)
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wp.Start(ctx)
	ch.Submit(req)
	waitOrFail(t, ch.WG, "Timeout waiting for error handling")
	wp.Stop()

	if parseCalled.Load() || storeCalled.Load() {
		t.Error("Parse and Store should not be called after Fetch error")
	}
}

func TestWorkerPool_ParseError(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 1)

	var storeCalled atomic.Bool

	req := models.LoadRequest{
		ID: "test",
		FetchFunc: func(ctx context.Context, id string) ([]byte, error) {
			return []byte("not tzif"), nil
		},
		ParseFunc: func(id string, data []byte) (models.ZoneInfo, error) {
			return models.ZoneInfo{}, errors.New("parse failed")
		},
		StoreFunc: func(index int, zone models.ZoneInfo) {
			storeCalled.Store(true)
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wp.Start(ctx)
	ch.Submit(req)
	waitOrFail(t, ch.WG, "Timeout waiting for error handling")
	wp.Stop()

	if storeCalled.Load() {
		t.Error("Store should not be called after Parse error")
	}
}

func TestWorkerPool_CancelledContextSkipsWork(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 2)

	var fetched atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wp.Start(ctx)
	for i := 0; i < 10; i++ {
		ch.Submit(models.LoadRequest{
			ID: "test",
			FetchFunc: func(ctx context.Context, id string) ([]byte, error) {
				fetched.Add(1)
				return nil, nil
			},
		})
	}
	waitOrFail(t, ch.WG, "Cancelled jobs were not drained")
	wp.Stop()

	if fetched.Load() != 0 {
		t.Errorf("Expected no fetches after cancellation, got %d", fetched.Load())
	}
}

func TestWorkerPool_NoJobs(t *testing.T) {
	ch := channels.New()
	wp := workpool.New(ch, 2)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	wp.Start(ctx)
	wp.Stop()

	waitOrFail(t, ch.WG, "WG.Wait timed out with no jobs")
}
