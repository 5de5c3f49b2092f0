package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrEmptyColumnName is returned when a probe is attempted with an empty
// or quote-carrying column name.
var ErrEmptyColumnName = errors.New("invalid column name")

// taskTable is the logical task table every deployment exposes, whatever
// its column set looks like.
const taskTable = "tasks"

// SQLite is the SQLite-backed task store. It implements the three
// operation shapes the planner depends on: zero-row column probes,
// non-null value sampling, and bulk row insertion.
type SQLite struct {
	db *sql.DB
}

// Open creates a SQLite task store at dbPath. It initializes the database
// with WAL mode, applies pragmas, and runs the embedded migrations.
func Open(dbPath string) (*SQLite, error) {
	// Ensure parent directory exists
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

// OpenDB wraps an existing database handle without running migrations.
// Used by tests that shape their own schemas.
func OpenDB(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

// enablePragmas sets SQLite pragmas for performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// quoteIdent quotes a column identifier with brackets, which SQLite
// parses strictly as an identifier. Double quotes would not work here:
// SQLite falls back to reading an unknown double-quoted name as a string
// literal, so an existence probe would succeed for any name. Column
// names come from the detector's fixed candidate lists, but they still
// travel through SQL text, so anything carrying a quote or bracket is
// rejected outright.
func quoteIdent(col string) (string, error) {
	if col == "" || strings.ContainsAny(col, `"'[]`+"`") {
		return "", fmt.Errorf("%w: %q", ErrEmptyColumnName, col)
	}
	return "[" + col + "]", nil
}

// ProbeColumn reports whether col exists on the task table, using a
// zero-row select: a non-error response means the column exists.
func (s *SQLite) ProbeColumn(ctx context.Context, col string) (bool, error) {
	ident, err := quoteIdent(col)
	if err != nil {
		return false, err
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s LIMIT 0", ident, taskTable))
	if err != nil {
		// SQLite reports unknown columns as a query error; that is the
		// probe's negative result, not a failure.
		return false, nil
	}
	rows.Close()
	return true, nil
}

// SampleColumn returns one non-null value from col, if any row has one.
func (s *SQLite) SampleColumn(ctx context.Context, col string) (any, bool, error) {
	ident, err := quoteIdent(col)
	if err != nil {
		return nil, false, err
	}
	var v any
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s IS NOT NULL LIMIT 1", ident, taskTable, ident)
	err = s.db.QueryRowContext(ctx, query).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sample column %q: %w", col, err)
	}
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	return v, true, nil
}

// maxBindParams bounds host parameters per statement. SQLite caps them
// at 32766, so large row batches must span multiple statements no matter
// what chunk size the planner is configured with.
const maxBindParams = 32000

// InsertTasks bulk-inserts rows into the task table. Each row maps
// physical column names to values; the insert covers the union of all
// keys, with NULL for columns a given row does not set. Rows are written
// in as few multi-row statements as the bind-parameter limit allows.
func (s *SQLite) InsertTasks(ctx context.Context, rows []map[string]any) error {
	if len(rows) == 0 {
		return nil
	}

	colSet := make(map[string]struct{})
	for _, row := range rows {
		for col := range row {
			colSet[col] = struct{}{}
		}
	}
	cols := make([]string, 0, len(colSet))
	for col := range colSet {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	idents := make([]string, len(cols))
	for i, col := range cols {
		ident, err := quoteIdent(col)
		if err != nil {
			return err
		}
		idents[i] = ident
	}

	perStmt := maxBindParams / len(cols)
	if perStmt < 1 {
		perStmt = 1
	}
	for start := 0; start < len(rows); start += perStmt {
		end := start + perStmt
		if end > len(rows) {
			end = len(rows)
		}
		if err := s.insertBatch(ctx, cols, idents, rows[start:end]); err != nil {
			return err
		}
	}
	return nil
}

// insertBatch writes one multi-row INSERT statement.
func (s *SQLite) insertBatch(ctx context.Context, cols, idents []string, rows []map[string]any) error {
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",") + ")"
	placeholders := make([]string, len(rows))
	args := make([]any, 0, len(rows)*len(cols))
	for i, row := range rows {
		placeholders[i] = placeholder
		for _, col := range cols {
			args = append(args, row[col])
		}
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		taskTable, strings.Join(idents, ", "), strings.Join(placeholders, ", "))
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert %d task rows: %w", len(rows), err)
	}
	return nil
}

// CountTasks returns the number of task rows. Used by the health check.
func (s *SQLite) CountTasks(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", taskTable)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}
