package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/AbdulWasayUl/go-world-clock/internal/api"
	"github.com/AbdulWasayUl/go-world-clock/internal/clock"
	"github.com/AbdulWasayUl/go-world-clock/internal/config"
	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
	"github.com/AbdulWasayUl/go-world-clock/internal/scheduler"
	transporthttp "github.com/AbdulWasayUl/go-world-clock/internal/transport/http"
	"github.com/AbdulWasayUl/go-world-clock/internal/zoneinfo"
	"github.com/AbdulWasayUl/go-world-clock/models"
	"github.com/AbdulWasayUl/go-world-clock/services/worldtime"
)

func main() {
	logger.Init()
	cfg := config.Load()

	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		os.Exit(healthcheck(ctx, cfg))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	clk := clock.NewSystem()
	dir := zoneinfo.NewDirectory(zoneinfo.NewSystemSource(cfg.ZoneInfoDirs), clk, cfg.CatalogWorkers)

	sch, err := scheduler.New()
	if err != nil {
		return err
	}
	jobs := []scheduler.Refresher{dir.Catalog()}

	logger.Info("Building zone catalog at startup.")
	if failed := sch.RunImmediateJob(ctx, jobs); failed > 0 {
		logger.Error("Startup catalog build failed; /timezone will retry on demand")
	}
	if cfg.CatalogRefresh > 0 {
		if err := sch.StartJob(ctx, cfg.CatalogRefresh, jobs); err != nil {
			return err
		}
	}
	defer sch.Stop()

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newHandler(cfg, dir, clk),
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("Listening on %s", cfg.Addr())

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal. Shutting down gracefully...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error: %v", err)
	}
	logger.Info("Server stopped.")
	return nil
}

func newHandler(cfg *config.Config, dir *zoneinfo.Directory, clk clock.Clock) http.Handler {
	return transporthttp.NewRouter(transporthttp.Deps{
		Now:         worldtime.NewService(dir, time.Local),
		Zones:       dir,
		Clock:       clk,
		CORSOrigins: cfg.CORSOrigins,
	})
}

// healthcheck probes the local /health endpoint and returns a process exit code.
func healthcheck(ctx context.Context, cfg *config.Config) int {
	client := api.NewClient(models.RateLimitSettings{MaxRequests: 5, PerDuration: time.Second})
	defer client.Close()

	url := "http://" + net.JoinHostPort("127.0.0.1", cfg.Port) + "/health"
	if err := client.Check(ctx, url); err != nil {
		logger.Error("healthcheck %s: %v", url, err)
		return 1
	}
	return 0
}
