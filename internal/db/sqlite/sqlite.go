package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/db"
)

// SQLite implements the Handler interface for SQLite
type SQLite struct {
	db.SQL
	config config.SQLiteConfig
}

// New creates a new SQLite handler
func New(cfg config.SQLiteConfig) *SQLite {
	return &SQLite{config: cfg}
}

// Kind returns the database kind identifier
func (s *SQLite) Kind() string {
	return db.KindSQLite
}

// Connect opens the SQLite database file, creating its directory if needed
func (s *SQLite) Connect(ctx context.Context) error {
	// Expand the path (handle ~ and relative paths)
	dbPath := s.config.Path
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	} else if !filepath.IsAbs(dbPath) {
		absPath, err := filepath.Abs(dbPath)
		if err != nil {
			return fmt.Errorf("failed to resolve absolute path: %w", err)
		}
		dbPath = absPath
	}

	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	sdb, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database at path '%s': %w", dbPath, err)
	}

	if err := sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return fmt.Errorf("failed to ping SQLite database at path '%s': %w", dbPath, err)
	}

	s.DB = sdb
	return nil
}
