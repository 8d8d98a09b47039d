// sqlite_ops.go provides SQLite connection management, row scanning and
// transaction helpers. It is the only file that imports the SQLite driver.

package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jpl-au/qgate/internal/distribution"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite with WAL mode for concurrent access.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// Open opens the SQLite database file at path with WAL journaling, a
// 5 second busy timeout and synchronous=NORMAL. The caller should call Close
// on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	pragmas := []struct{ stmt, what string }{
		// Readers (MCP history queries) must not block a running check.
		{`PRAGMA journal_mode=WAL`, "setting WAL mode"},
		{`PRAGMA busy_timeout=5000`, "setting busy timeout"},
		// Safe under WAL; at worst the last check is lost on OS crash.
		{`PRAGMA synchronous=NORMAL`, "setting synchronous mode"},
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p.stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", p.what, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call multiple
// times; uses IF NOT EXISTS to avoid errors on existing databases.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection. Call before program exit to ensure
// all pending writes are flushed.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// DB exposes the underlying connection for extensions that need custom tables.
// Extensions should not modify core tables directly.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// scanner abstracts sql.Row and sql.Rows, enabling a single scan function
// to handle both single-row and multi-row queries.
type scanner interface {
	Scan(dest ...any) error
}

const batchColumns = `id, key, fingerprint, name, platform, posts, author, created_at, deleted_at`

// scanBatch extracts a Batch from a database row, handling nullable fields.
func scanBatch(sc scanner) (Batch, error) {
	var b Batch
	var name sql.NullString
	var del sql.NullInt64

	err := sc.Scan(&b.ID, &b.Key, &b.Fingerprint, &name, &b.Platform, &b.Posts, &b.Author, &b.CreatedAt, &del)
	if err != nil {
		return b, err
	}
	if name.Valid {
		b.Name = name.String
	}
	if del.Valid {
		b.DeletedAt = &del.Int64
	}
	return b, nil
}

// scanBatches iterates over query results, collecting batches into a slice.
func scanBatches(rows *sql.Rows) ([]Batch, error) {
	var out []Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

const reportColumns = `r.id, r.key, r.batch_key, r.passed, r.platform, r.posts, r.optimal, r.avg,
	r.optimal_ratio, r.sameness, r.distribution, r.issues, r.warnings, r.metric, r.author, r.created_at`

// scanReport extracts a Report, decoding the JSON columns.
func scanReport(sc scanner) (Report, error) {
	var r Report
	var passed int
	var dist, issues string
	var warnings sql.NullString

	err := sc.Scan(&r.ID, &r.Key, &r.BatchKey, &passed, &r.Platform, &r.Posts, &r.Optimal, &r.AverageLength,
		&r.OptimalRatio, &r.Sameness, &dist, &issues, &warnings, &r.Metric, &r.Author, &r.CreatedAt)
	if err != nil {
		return r, err
	}
	r.Passed = passed == 1

	r.Distribution = &distribution.Report{}
	if err := json.Unmarshal([]byte(dist), r.Distribution); err != nil {
		return r, fmt.Errorf("decode distribution: %w", err)
	}
	if err := json.Unmarshal([]byte(issues), &r.Issues); err != nil {
		return r, fmt.Errorf("decode issues: %w", err)
	}
	if warnings.Valid {
		if err := json.Unmarshal([]byte(warnings.String), &r.Warnings); err != nil {
			return r, fmt.Errorf("decode warnings: %w", err)
		}
	}
	return r, nil
}

// scanOne converts sql.ErrNoRows to ErrNotFound for consistent error handling.
func scanOne[T any](row *sql.Row, scan func(scanner) (T, error), what, ref string) (*T, error) {
	v, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s %s: %w", what, ref, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", what, err)
	}
	return &v, nil
}

// Tx runs fn inside a transaction. An error from fn rolls back; otherwise
// the transaction commits. Context cancellation aborts at the next statement.
//
//	var n int64
//	err := s.Tx(ctx, func(tx *sql.Tx) error {
//	    res, err := tx.ExecContext(ctx, `DELETE ...`)
//	    if err != nil {
//	        return err
//	    }
//	    n, _ = res.RowsAffected()
//	    return nil
//	})
func (s *SQLiteStore) Tx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }() // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// genID creates an 8-character batch or report key from crypto/rand.
func genID() (string, error) {
	b := make([]byte, 5) // 5 bytes = 8 base32 chars
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b)), nil
}
