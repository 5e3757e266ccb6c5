// Package config loads server and client settings from flags, falling back
// to CHESS_* environment variables and then to defaults.
package config

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

const (
	StoreMemory = "memory"
	StoreBadger = "badger"
)

var logLevels = map[string]log.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
}

type ServerConfig struct {
	Addr         string
	Store        string
	DataDir      string
	AllowOrigins string
	LogLevel     string
}

// LoadServer parses args (without the program name).
func LoadServer(args []string) (ServerConfig, error) {
	var cfg ServerConfig
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", getenv("CHESS_ADDR", ":8080"), "listen address")
	fs.StringVar(&cfg.Store, "store", getenv("CHESS_STORE", StoreMemory), "storage backend: memory or badger")
	fs.StringVar(&cfg.DataDir, "data-dir", getenv("CHESS_DATA_DIR", "./data"), "badger data directory")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", getenv("CHESS_ALLOW_ORIGINS", "*"), "comma-separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", getenv("CHESS_LOG_LEVEL", "info"), "trace, debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return ServerConfig{}, err
	}

	cfg.Store = strings.ToLower(cfg.Store)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func (c ServerConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is required")
	}
	switch c.Store {
	case StoreMemory:
	case StoreBadger:
		if c.DataDir == "" {
			return fmt.Errorf("badger store needs a data directory")
		}
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreMemory, StoreBadger)
	}
	if _, ok := logLevels[c.LogLevel]; !ok {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// Level is the fiber log level named by LogLevel.
func (c ServerConfig) Level() log.Level {
	if lvl, ok := logLevels[c.LogLevel]; ok {
		return lvl
	}
	return log.LevelInfo
}

type ClientConfig struct {
	ServerURL string
}

func LoadClient(args []string) (ClientConfig, error) {
	var cfg ClientConfig
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "server", getenv("CHESS_SERVER_URL", "http://localhost:8080"), "server base URL")
	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, err
	}
	// A bare port is accepted, as in "client 8080".
	if rest := fs.Args(); len(rest) > 0 {
		cfg.ServerURL = "http://localhost:" + rest[0]
	}

	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	if !strings.HasPrefix(cfg.ServerURL, "http://") && !strings.HasPrefix(cfg.ServerURL, "https://") {
		return ClientConfig{}, fmt.Errorf("server URL %q must start with http:// or https://", cfg.ServerURL)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
