// internal/app/store/jsonfile/jsonfile.go
//
// Package jsonfile is the file-backed variant of the store contracts. It
// keeps one JSON array of team records at teams.json and one JSON array of
// sprint records (with embedded bug snapshots) per team at
// sprints_<teamID>.json. Writers perform read-modify-write on whole files,
// so every mutation is serialized behind a mutex keyed by file path;
// without that, concurrent writers would silently lose updates.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sprinthub/sprinthub/internal/domain/models"
	"go.uber.org/zap"
)

// DB is a handle to the file-backed data directory. Obtain the store
// implementations from Teams, Sprints and SprintBugs.
type DB struct {
	dir string
	log *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open prepares the data directory and returns a handle to it.
func Open(dir string, logger *zap.Logger) (*DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("jsonfile: create data dir: %w", err)
	}
	return &DB{
		dir:   dir,
		log:   logger,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

func (db *DB) Teams() *TeamStore           { return &TeamStore{db: db} }
func (db *DB) Sprints() *SprintStore       { return &SprintStore{db: db} }
func (db *DB) SprintBugs() *SprintBugStore { return &SprintBugStore{db: db} }

// sprintRecord is the on-disk sprint representation: the sprint fields
// plus the embedded bug snapshot list (the file-backed variant keeps the
// association records inside the sprint document).
type sprintRecord struct {
	models.Sprint
	Bugs []models.SprintBug `json:"bugs"`
}

// recount re-derives the sprint's counters from the embedded bug list.
func (r *sprintRecord) recount() {
	r.NumberOfBugs = len(r.Bugs)
	resolved := 0
	for _, b := range r.Bugs {
		if b.ResolvedOrVerified {
			resolved++
		}
	}
	r.ResolvedOrVerified = resolved
}

func (db *DB) teamsPath() string { return filepath.Join(db.dir, "teams.json") }

func (db *DB) sprintsPath(teamID string) string {
	return filepath.Join(db.dir, "sprints_"+teamID+".json")
}

// pathLock returns the mutex serializing writes to one store file.
func (db *DB) pathLock(path string) *sync.Mutex {
	db.mu.Lock()
	defer db.mu.Unlock()
	l, ok := db.locks[path]
	if !ok {
		l = &sync.Mutex{}
		db.locks[path] = l
	}
	return l
}

// readFile decodes the JSON array at path into out. A missing file is an
// empty store, not an error.
func readFile(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("jsonfile: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("jsonfile: decode %s: %w", path, err)
	}
	return nil
}

// writeFile writes v as indented JSON via a temp file and rename, so a
// crash mid-write never leaves a truncated store behind.
func writeFile(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("jsonfile: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("jsonfile: rename %s: %w", tmp, err)
	}
	return nil
}
