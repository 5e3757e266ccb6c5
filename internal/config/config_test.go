package config

import (
	"testing"

	"github.com/benbeisheim/chess-server/internal/testutil"
	"github.com/gofiber/fiber/v2/log"
)

func TestLoadServerDefaults(t *testing.T) {
	for _, k := range []string{"CHESS_ADDR", "CHESS_STORE", "CHESS_DATA_DIR", "CHESS_ALLOW_ORIGINS", "CHESS_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	cfg, err := LoadServer(nil)
	testutil.RequireNoError(t, err, "load")
	testutil.AssertEqual(t, cfg, ServerConfig{
		Addr:         ":8080",
		Store:        StoreMemory,
		DataDir:      "./data",
		AllowOrigins: "*",
		LogLevel:     "info",
	})
	testutil.AssertEqual(t, cfg.Level(), log.LevelInfo)
}

func TestLoadServerEnvAndFlags(t *testing.T) {
	t.Setenv("CHESS_ADDR", ":9000")
	t.Setenv("CHESS_STORE", "BADGER")
	t.Setenv("CHESS_LOG_LEVEL", "debug")

	cfg, err := LoadServer([]string{"-addr", ":7000", "-data-dir", "/tmp/chess"})
	testutil.RequireNoError(t, err, "load")
	testutil.AssertEqual(t, cfg.Addr, ":7000")
	testutil.AssertEqual(t, cfg.Store, StoreBadger)
	testutil.AssertEqual(t, cfg.DataDir, "/tmp/chess")
	testutil.AssertEqual(t, cfg.Level(), log.LevelDebug)
}

func TestLoadServerRejects(t *testing.T) {
	t.Setenv("CHESS_STORE", "")
	t.Setenv("CHESS_LOG_LEVEL", "")
	tests := []struct {
		name string
		args []string
	}{
		{"unknown store", []string{"-store", "postgres"}},
		{"unknown log level", []string{"-log-level", "loud"}},
		{"badger without dir", []string{"-store", "badger", "-data-dir", ""}},
		{"unknown flag", []string{"-nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadServer(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("CHESS_SERVER_URL", "")

	cfg, err := LoadClient(nil)
	testutil.RequireNoError(t, err, "default")
	testutil.AssertEqual(t, cfg.ServerURL, "http://localhost:8080")

	cfg, err = LoadClient([]string{"9090"})
	testutil.RequireNoError(t, err, "port")
	testutil.AssertEqual(t, cfg.ServerURL, "http://localhost:9090")

	cfg, err = LoadClient([]string{"-server", "https://chess.example.com/"})
	testutil.RequireNoError(t, err, "url")
	testutil.AssertEqual(t, cfg.ServerURL, "https://chess.example.com")

	_, err = LoadClient([]string{"-server", "chess.example.com"})
	if err == nil {
		t.Error("expected an error for a URL without scheme")
	}
}
