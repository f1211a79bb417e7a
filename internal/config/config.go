package config

import (
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AbdulWasayUl/go-world-clock/internal/logger"
	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultCatalogRefresh  = time.Hour
	defaultCatalogWorkers  = 8
	defaultShutdownTimeout = 10 * time.Second
)

// DefaultZoneInfoDirs mirrors the lookup order of the time package on Unix hosts.
var DefaultZoneInfoDirs = []string{
	"/usr/share/zoneinfo/",
	"/usr/share/lib/zoneinfo/",
	"/usr/lib/locale/TZ/",
}

// Config holds the application configuration
type Config struct {
	Host            string
	Port            string
	CORSOrigins     []string
	ZoneInfoDirs    []string
	CatalogRefresh  time.Duration
	CatalogWorkers  int
	ShutdownTimeout time.Duration
}

// Load reads the .env file when present and builds the configuration from the environment
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		// .env is optional in deployment
		logger.Info("No .env file loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() *Config {
	cfg := &Config{
		Host:            os.Getenv("HOST"),
		Port:            os.Getenv("PORT"),
		CORSOrigins:     ParseCSV(os.Getenv("CORS_ORIGINS")),
		ZoneInfoDirs:    zoneInfoDirs(),
		CatalogRefresh:  durationEnv("CATALOG_REFRESH", defaultCatalogRefresh),
		CatalogWorkers:  intEnv("CATALOG_WORKERS", defaultCatalogWorkers),
		ShutdownTimeout: durationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.CatalogWorkers <= 0 {
		logger.Error("CATALOG_WORKERS must be positive, using %d", defaultCatalogWorkers)
		cfg.CatalogWorkers = defaultCatalogWorkers
	}
	return cfg
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ParseCSV splits a comma separated value, dropping blank items.
func ParseCSV(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

// zoneInfoDirs honours ZONEINFO_DIRS, then the ZONEINFO variable the time package reads.
func zoneInfoDirs() []string {
	if dirs := ParseCSV(os.Getenv("ZONEINFO_DIRS")); len(dirs) > 0 {
		return dirs
	}
	dirs := make([]string, 0, len(DefaultZoneInfoDirs)+1)
	if zi := os.Getenv("ZONEINFO"); zi != "" {
		dirs = append(dirs, zi)
	}
	return append(dirs, DefaultZoneInfoDirs...)
}

func durationEnv(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		logger.Error("Invalid %s %q, using %s", key, raw, def)
		return def
	}
	return d
}

func intEnv(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		logger.Error("Invalid %s %q, using %d", key, raw, def)
		return def
	}
	return n
}
