// Package repo provides repository initialisation and discovery for qgate.
//
// A qgate repository is a .qgate directory holding one or more SQLite
// databases of checked batches and their reports (qgate.db, qgate-staging.db).
// Discovery walks up from the working directory like git does, stopping at
// the first .qgate directory that holds the requested database.
package repo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpl-au/qgate/internal/store"
)

const (
	// Dir is the directory name for the qgate repository.
	Dir = ".qgate"
	// DBFile is the default database filename.
	DBFile = "qgate.db"
)

// DBFileName returns the database filename for a given name.
// Empty name returns the default "qgate.db".
// A name like "staging" returns "qgate-staging.db".
// A name already ending in ".db" is returned as-is.
func DBFileName(name string) string {
	if name == "" {
		return DBFile
	}
	if strings.HasSuffix(name, ".db") {
		return name
	}
	return "qgate-" + name + ".db"
}

// ErrNotInitialised is returned when no qgate repository is found.
var ErrNotInitialised = errors.New("qgate not initialised (run 'qgate init')")

// Init creates the .qgate directory and an empty database in dir (current
// directory when empty). It does not write config; that is "qgate config".
// force replaces an existing database. local adds the database to
// .qgate/.gitignore so it is not committed.
func Init(force bool, db string, local bool, dir string) error {
	if dir == "" {
		dir = "."
	}
	qgateDir := filepath.Join(dir, Dir)
	dbPath := filepath.Join(qgateDir, DBFileName(db))

	// Check if already exists
	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			return fmt.Errorf("database %s already exists (use --force to reinitialise)", DBFileName(db))
		}
		// Remove existing DB for reinit
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("remove database: %w", err)
		}
		_ = os.Remove(dbPath + "-wal")
		_ = os.Remove(dbPath + "-shm")
	}

	// Create directory
	if err := os.MkdirAll(qgateDir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	// Create and initialise DB
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer s.Close()

	if err := s.Init(); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	// Only the first init writes .gitignore; later inits for named databases
	// must keep any local database entries.
	gitignore := filepath.Join(qgateDir, ".gitignore")
	if _, err := os.Stat(gitignore); os.IsNotExist(err) {
		s := `# qgate - ignore local config and WAL sidecar files
# Database files (*.db) hold check history and may be committed
config.yaml
*.db-wal
*.db-shm
`
		if err := os.WriteFile(gitignore, []byte(s), 0644); err != nil {
			return fmt.Errorf("write gitignore: %w", err)
		}
	}

	if local {
		if err := IgnoreDB(db, qgateDir); err != nil {
			return fmt.Errorf("ignore database: %w", err)
		}
	}

	return nil
}

// Discover walks up the directory tree looking for a .qgate database.
// The db parameter specifies which database to find (empty for default).
// Returns the full path to the database if found.
func Discover(db string) (string, error) {
	dbFile := DBFileName(db)
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		dbPath := filepath.Join(dir, Dir, dbFile)
		if _, err := os.Stat(dbPath); err == nil {
			return dbPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// Locate returns the path of the database in dir's .qgate directory
// without walking up the tree. Returns ErrNotInitialised if it is absent.
func Locate(dir, db string) (string, error) {
	dbPath := filepath.Join(dir, Dir, DBFileName(db))
	if _, err := os.Stat(dbPath); err != nil {
		return "", ErrNotInitialised
	}
	return dbPath, nil
}

// DiscoverDir finds the .qgate directory, walking up the tree.
// Returns the full path to the .qgate directory.
func DiscoverDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		qgateDir := filepath.Join(dir, Dir)
		if info, err := os.Stat(qgateDir); err == nil && info.IsDir() {
			return qgateDir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotInitialised
		}
		dir = parent
	}
}

// DBInfo holds database metadata.
type DBInfo struct {
	Name  string // Short name (empty for default, "staging" for qgate-staging.db)
	File  string // Filename (qgate.db, qgate-staging.db)
	Path  string // Full path
	Local bool   // True if gitignored
}

// ListDBs returns all databases in the .qgate directory with their status.
// If dir is empty, discovers .qgate directory from current working directory.
func ListDBs(dir string) ([]DBInfo, error) {
	if dir == "" {
		var err error
		dir, err = DiscoverDir()
		if err != nil {
			return nil, fmt.Errorf("discover .qgate directory: %w", err)
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read .qgate directory: %w", err)
	}

	var dbs []DBInfo
	for _, e := range entries {
		if !strings.HasSuffix(e.Name(), ".db") {
			continue
		}

		// Extract short name from filename
		name := ""
		if e.Name() == DBFile {
			name = ""
		} else if strings.HasPrefix(e.Name(), "qgate-") {
			name = strings.TrimSuffix(strings.TrimPrefix(e.Name(), "qgate-"), ".db")
		} else {
			continue
		}

		ignored, err := IsIgnored(name, dir)
		if err != nil {
			ignored = false // unreadable .gitignore: treat as shared
		}
		dbs = append(dbs, DBInfo{
			Name:  name,
			File:  e.Name(),
			Path:  filepath.Join(dir, e.Name()),
			Local: ignored,
		})
	}

	return dbs, nil
}
