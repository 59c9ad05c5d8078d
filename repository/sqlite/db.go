package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/nijaru/yt-transcript/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcripts (
    id TEXT PRIMARY KEY,
    video_id TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL DEFAULT '',
    requested_language TEXT NOT NULL,
    language TEXT NOT NULL DEFAULT '',
    fallback BOOLEAN NOT NULL DEFAULT 0,
    selected BOOLEAN NOT NULL DEFAULT 0,
    text TEXT NOT NULL DEFAULT '',
    comments TEXT NOT NULL DEFAULT '[]',
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transcripts_video_id ON transcripts(video_id, created_at);
`

type DBConfig struct {
	MaxRetries         uint64
	RetryDelay         time.Duration
	MaxConnections     int
	MaxIdleConnections int
	ConnMaxLifetime    time.Duration
}

func DefaultDBConfig() DBConfig {
	return DBConfig{
		MaxRetries:         3,
		RetryDelay:         time.Second,
		MaxConnections:     10,
		MaxIdleConnections: 5,
		ConnMaxLifetime:    time.Hour,
	}
}

// DB is an open sqlite handle with the transcript statements prepared.
type DB struct {
	*sql.DB
	config     DBConfig
	statements *PreparedStatements
}

// Open creates the database file and its directory if needed, applies
// pragmas and schema, and prepares statements.
func Open(ctx context.Context, dbPath string, config DBConfig) (*DB, error) {
	const op = "sqlite.Open"

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, errors.Internal(op, err, "failed to create database directory")
	}

	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, errors.Internal(op, err, "failed to open database")
	}

	sqlDB.SetMaxOpenConns(config.MaxConnections)
	sqlDB.SetMaxIdleConns(config.MaxIdleConnections)
	sqlDB.SetConnMaxLifetime(config.ConnMaxLifetime)

	if err := configurePragmas(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	if err := execSchema(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	stmts := &PreparedStatements{}
	if err := stmts.Prepare(ctx, sqlDB); err != nil {
		stmts.Close()
		sqlDB.Close()
		return nil, err
	}

	return &DB{DB: sqlDB, config: config, statements: stmts}, nil
}

func (db *DB) Close() error {
	stmtErr := db.statements.Close()
	if err := db.DB.Close(); err != nil {
		return err
	}
	return stmtErr
}

func configurePragmas(ctx context.Context, db *sql.DB) error {
	const op = "sqlite.configurePragmas"

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA cache_size = -2000", // 2MB
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return errors.Internal(op, err, fmt.Sprintf("failed to set pragma: %s", pragma))
		}
	}

	return nil
}

func execSchema(ctx context.Context, db *sql.DB) error {
	const op = "sqlite.execSchema"

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Internal(op, err, "failed to begin transaction")
	}
	defer tx.Rollback()

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return errors.Internal(op, err, fmt.Sprintf("failed to execute schema statement: %s", stmt))
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Internal(op, err, "failed to commit schema transaction")
	}

	return nil
}
