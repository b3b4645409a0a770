package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/db"
)

// Postgres implements the Handler interface for PostgreSQL via the pgx
// stdlib driver
type Postgres struct {
	db.SQL
	config config.ServerConfig
}

// New creates a new PostgreSQL handler
func New(cfg config.ServerConfig) *Postgres {
	return &Postgres{config: cfg}
}

// Kind returns the database kind identifier
func (p *Postgres) Kind() string {
	return db.KindPostgreSQL
}

// Connect establishes the connection pool to PostgreSQL
func (p *Postgres) Connect(ctx context.Context) error {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		p.config.User, p.config.Password, p.config.Host, p.config.Port, p.config.Database)

	sdb, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	if err := sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return fmt.Errorf("failed to ping PostgreSQL at %s:%d: %w", p.config.Host, p.config.Port, err)
	}

	p.DB = sdb
	return nil
}
