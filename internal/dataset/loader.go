package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// ErrUnknownColumn is returned when a caller names a column the table does
// not have. Per the data model this is a caller error, not a recoverable
// condition.
var ErrUnknownColumn = errors.New("unknown column")

// LoadError reports a dataset file that could not be read or parsed. It
// always names the requested filename; no partial table is ever returned.
type LoadError struct {
	Filename string
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to load dataset file %q: %v", e.Filename, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader reads sample CSV files from a fixed data directory into Tables.
// Parsing and type inference are delegated to an in-memory DuckDB via
// read_csv_auto, so columns come back typed the same way any other query
// result would.
type Loader struct {
	dataDir string
	logger  *slog.Logger
}

// NewLoader creates a Loader rooted at dataDir.
func NewLoader(dataDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{dataDir: dataDir, logger: logger}
}

// Path returns the full path of a dataset file under the data directory.
func (l *Loader) Path(filename string) string {
	return filepath.Join(l.dataDir, filename)
}

// Load reads the named CSV file (header row required) into a Table.
// Any failure is wrapped in a LoadError naming the requested filename.
func (l *Loader) Load(ctx context.Context, filename string) (*Table, error) {
	path := l.Path(filename)
	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Filename: filename, Err: err}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &LoadError{Filename: filename, Err: err}
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, &LoadError{Filename: filename, Err: err}
	}
	defer func() { _ = db.Close() }()

	// read_csv_auto infers per-column types from the file contents.
	query := fmt.Sprintf(
		"CREATE TABLE dataset AS SELECT * FROM read_csv_auto('%s', header=true)",
		strings.ReplaceAll(absPath, "'", "''"),
	)
	if _, err := db.ExecContext(ctx, query); err != nil {
		return nil, &LoadError{Filename: filename, Err: err}
	}

	rows, err := db.QueryContext(ctx, "SELECT * FROM dataset")
	if err != nil {
		return nil, &LoadError{Filename: filename, Err: err}
	}
	defer func() { _ = rows.Close() }()

	table, err := ScanRows(rows)
	if err != nil {
		return nil, &LoadError{Filename: filename, Err: err}
	}

	l.logger.Debug("loaded dataset",
		"file", filename,
		"columns", len(table.Columns()),
		"rows", table.NumRows())

	return table, nil
}
