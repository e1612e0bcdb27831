package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"simpleblog/app/config"
	"simpleblog/app/logging"
	"simpleblog/app/repositories"

	"go.uber.org/zap"
)

// Version is reported by the version command.
const Version = "1.0.0"

// configPath is set by the --config flag.
var configPath string

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// openDatabase opens the configured store, creating the directory of a
// SQLite file first.
func openDatabase(ctx context.Context, cfg *config.Config) (*repositories.DB, error) {
	dialect := repositories.Dialect(cfg.DBDriver)
	if dialect == repositories.DialectSQLite {
		if err := ensureDir(sqliteFile(cfg.DBDSN)); err != nil {
			return nil, err
		}
	}
	return repositories.Open(ctx, dialect, cfg.DBDSN)
}

// sqliteFile returns the file path of a SQLite DSN, or "" for in-memory
// databases.
func sqliteFile(dsn string) string {
	path := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" || path == ":memory:" {
		return ""
	}
	return path
}

func ensureDir(file string) error {
	if file == "" {
		return nil
	}
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
