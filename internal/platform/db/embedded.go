package db

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

// EmbeddedConfig describes the local database owned by a single process.
type EmbeddedConfig struct {
	DataDir  string
	Port     uint32
	Database string
	Username string
	Password string
}

// StartEmbedded boots an embedded PostgreSQL instance over a local data
// directory. The caller owns exclusive write access and must Stop the
// returned instance on shutdown.
func StartEmbedded(cfg EmbeddedConfig) (*embeddedpostgres.EmbeddedPostgres, string, error) {
	if cfg.DataDir == "" {
		cfg.DataDir = "./db_data"
	}
	if cfg.Port == 0 {
		cfg.Port = 5433
	}
	if cfg.Database == "" {
		cfg.Database = "rcs"
	}
	if cfg.Username == "" {
		cfg.Username = "rcs"
	}
	if cfg.Password == "" {
		cfg.Password = "rcs"
	}

	// A previous crash can leave a postmaster behind holding the data dir.
	cleanupStalePostmaster(cfg.DataDir)

	embedded := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		DataPath(cfg.DataDir).
		Port(cfg.Port).
		Database(cfg.Database).
		Username(cfg.Username).
		Password(cfg.Password))

	if err := embedded.Start(); err != nil {
		return nil, "", fmt.Errorf("platform/db: start embedded: %w", err)
	}

	dsn := fmt.Sprintf("postgres://%s:%s@localhost:%d/%s?sslmode=disable",
		cfg.Username, cfg.Password, cfg.Port, cfg.Database)
	return embedded, dsn, nil
}

func cleanupStalePostmaster(dataDir string) {
	pidFile := filepath.Join(dataDir, "postmaster.pid")

	data, err := os.ReadFile(pidFile)
	if err != nil {
		return
	}

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	if !scanner.Scan() {
		return
	}
	pid, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		_ = os.Remove(pidFile)
		return
	}
	// On Unix FindProcess always succeeds; signal 0 probes liveness.
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = os.Remove(pidFile)
		return
	}

	_ = process.Signal(syscall.SIGTERM)
	for i := 0; i < 10; i++ {
		time.Sleep(500 * time.Millisecond)
		if err := process.Signal(syscall.Signal(0)); err != nil {
			_ = os.Remove(pidFile)
			return
		}
	}
	_ = process.Kill()
	time.Sleep(500 * time.Millisecond)
	_ = os.Remove(pidFile)
}
