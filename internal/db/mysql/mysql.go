package mysql

import (
	"context"
	"database/sql"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/querygate/querygate/internal/config"
	"github.com/querygate/querygate/internal/db"
)

// MySQL implements the Handler interface for MySQL
type MySQL struct {
	db.SQL
	config config.ServerConfig
}

// New creates a new MySQL handler
func New(cfg config.ServerConfig) *MySQL {
	return &MySQL{config: cfg}
}

// Kind returns the database kind identifier
func (m *MySQL) Kind() string {
	return db.KindMySQL
}

// Connect establishes the connection pool to MySQL
func (m *MySQL) Connect(ctx context.Context) error {
	mc := gomysql.NewConfig()
	mc.User = m.config.User
	mc.Passwd = m.config.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	mc.DBName = m.config.Database
	mc.ParseTime = true

	sdb, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	if err := sdb.PingContext(ctx); err != nil {
		sdb.Close()
		return fmt.Errorf("failed to ping MySQL at %s: %w", mc.Addr, err)
	}

	m.DB = sdb
	return nil
}
