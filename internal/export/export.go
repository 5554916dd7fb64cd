// Package export writes rendered grids into a SQLite or PostgreSQL database.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/timegrid/internal/backup"
	"github.com/julianstephens/timegrid/internal/constants"
	"github.com/julianstephens/timegrid/internal/grid"
	"github.com/julianstephens/timegrid/internal/logger"
	"github.com/julianstephens/timegrid/internal/migration"
	"github.com/julianstephens/timegrid/migrations"
)

// createdAtLayout is fixed width so that SQLite's text ordering of created_at
// is chronological. RFC3339Nano trims trailing zeros and does not sort.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Summary describes one stored export.
type Summary struct {
	ID        string
	Caption   string
	Corner    string
	Days      int
	Slots     int
	CreatedAt time.Time
}

// Exporter writes grids to one database. It is not safe for concurrent use.
type Exporter struct {
	db      *sql.DB
	driver  migration.Driver
	path    string // sqlite only
	backups *backup.Manager
	pending bool // an existing sqlite file has not been backed up yet
	now     func() time.Time
}

// Open connects to dsn and brings its schema up to date. A PostgreSQL URL or
// key=value DSN selects lib/pq; anything else is a SQLite file path, optionally
// prefixed with sqlite://.
func Open(ctx context.Context, dsn string) (*Exporter, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("no export database given")
	}
	if IsPostgres(dsn) {
		return openPostgres(ctx, dsn)
	}
	return openSQLite(ctx, strings.TrimPrefix(dsn, "sqlite://"))
}

func openSQLite(ctx context.Context, path string) (*Exporter, error) {
	path = expandHome(path)
	_, statErr := os.Stat(path)
	existed := statErr == nil

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps pragmas and transactions on one handle.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	e := &Exporter{
		db:      db,
		driver:  migration.DriverSQLite,
		path:    path,
		backups: backup.NewManager(path),
		pending: existed,
		now:     time.Now,
	}
	if err := e.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("Opened export database", "driver", e.driver, "path", path, "existed", existed)
	return e, nil
}

func openPostgres(ctx context.Context, connStr string) (*Exporter, error) {
	if err := ValidateConnString(connStr); err != nil {
		return nil, err
	}
	connStr = withSearchPath(connStr)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, sslHint(connStr, err)
	}
	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+constants.AppName); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	e := &Exporter{
		db:     db,
		driver: migration.DriverPostgres,
		now:    time.Now,
	}
	if err := e.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	logger.Debug("Opened export database", "driver", e.driver, "dsn", Redact(connStr))
	return e, nil
}

func (e *Exporter) migrate(ctx context.Context) error {
	sub, err := fs.Sub(migrations.FS, string(e.driver))
	if err != nil {
		return fmt.Errorf("failed to access %s migrations: %w", e.driver, err)
	}
	runner, err := migration.NewRunner(e.db, sub, e.driver)
	if err != nil {
		return err
	}
	if _, err := runner.Apply(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Driver returns the database driver in use.
func (e *Exporter) Driver() migration.Driver {
	return e.driver
}

// Backups returns the backup manager for a SQLite export, or nil for PostgreSQL.
func (e *Exporter) Backups() *backup.Manager {
	return e.backups
}

// Write stores g as a new export and returns its ID. Every dense coordinate is
// written, covered ones pointing back at their origin. The first write to a
// SQLite file that existed before Open backs the file up.
func (e *Exporter) Write(ctx context.Context, g *grid.Grid) (string, error) {
	if e.pending {
		path, err := e.backups.Create(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to back up export database: %w", err)
		}
		e.pending = false
		logger.Info("Backed up export database", "backup", path)
	}

	id := uuid.NewString()
	tx, err := e.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, e.rebind(`INSERT INTO exports (id, corner, caption, day_count, slot_count, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		id, g.Corner(), g.Caption(), g.DayCount(), g.SlotCount(), e.now().UTC().Format(createdAtLayout)); err != nil {
		return "", fmt.Errorf("failed to insert export: %w", err)
	}

	if err := e.insertLabels(ctx, tx, "export_slots", id, g.SlotLabels()); err != nil {
		return "", err
	}
	if err := e.insertLabels(ctx, tx, "export_days", id, g.DayLabels()); err != nil {
		return "", err
	}

	stmt, err := tx.PrepareContext(ctx, e.rebind(`INSERT INTO export_cells
		(export_id, day, slot, is_origin, origin_day, origin_slot, text, style, col_span, row_span)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`))
	if err != nil {
		return "", fmt.Errorf("failed to prepare cell insert: %w", err)
	}
	defer stmt.Close()

	for d := 0; d < g.DayCount(); d++ {
		for s, entry := range g.Row(d) {
			c := entry.Cell
			if _, err := stmt.ExecContext(ctx, id, d, s, entry.IsOrigin, entry.Origin.Day, entry.Origin.Slot,
				c.Text, c.Style, c.ColSpan, c.RowSpan); err != nil {
				return "", fmt.Errorf("failed to insert cell (%d, %d): %w", d, s, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit export: %w", err)
	}
	logger.Debug("Exported grid", "id", id, "driver", e.driver, "cells", g.DayCount()*g.SlotCount())
	return id, nil
}

func (e *Exporter) insertLabels(ctx context.Context, tx *sql.Tx, table, id string, labels []string) error {
	q := e.rebind(fmt.Sprintf("INSERT INTO %s (export_id, position, label) VALUES (?, ?, ?)", table))
	for i, label := range labels {
		if _, err := tx.ExecContext(ctx, q, id, i, label); err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

// List returns every stored export, newest first.
func (e *Exporter) List(ctx context.Context) ([]Summary, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT id, corner, caption, day_count, slot_count, created_at FROM exports ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	defer rows.Close()

	summaries := []Summary{}
	for rows.Next() {
		var s Summary
		var created string
		if err := rows.Scan(&s.ID, &s.Corner, &s.Caption, &s.Days, &s.Slots, &created); err != nil {
			return nil, fmt.Errorf("failed to scan export: %w", err)
		}
		s.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("export %s has an invalid timestamp %q: %w", s.ID, created, err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list exports: %w", err)
	}
	return summaries, nil
}

func (e *Exporter) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (e *Exporter) rebind(q string) string {
	if e.driver != migration.DriverPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
