// Package metastore caches derived per-asset data (dimensions, capture
// time, thumbnail name) in a small sqlite database so the web layer
// never probes originals on the request path.
package metastore

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
)

const initScript = `
	CREATE TABLE IF NOT EXISTS asset (
		path text PRIMARY KEY,
		dir text NOT NULL,
		name text NOT NULL,
		thumb_name text NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		taken_at DATETIME,
		mod_time DATETIME);`

type Record struct {
	Path      string    `db:"path"`
	Dir       string    `db:"dir"`
	Name      string    `db:"name"`
	ThumbName string    `db:"thumb_name"`
	Width     int       `db:"width"`
	Height    int       `db:"height"`
	TakenAt   time.Time `db:"taken_at"`
	ModTime   time.Time `db:"mod_time"`
}

type Store struct {
	mu sync.Mutex
	db *sqlx.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening metadata db %s: %w", dbPath, err)
	}
	if _, err := db.Exec(initScript); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing metadata db: %w", err)
	}
	return &Store{db: db}, nil
}

// GetByPath returns the cached record for an asset, or nil when the
// asset has not been probed yet.
func (s *Store) GetByPath(path string) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rec Record
	err := s.db.Get(&rec, "SELECT path, dir, name, thumb_name, width, height, taken_at, mod_time FROM asset WHERE path=$1;", path)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) GetByDir(dir string) ([]*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs := []*Record{}
	if err := s.db.Select(&recs, "SELECT path, dir, name, thumb_name, width, height, taken_at, mod_time FROM asset WHERE dir=$1 ORDER BY name;", dir); err != nil {
		return nil, err
	}
	return recs, nil
}

// Save upserts records; a re-probed asset replaces its previous row.
func (s *Store) Save(recs []*Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range recs {
		_, err := s.db.NamedExec(`INSERT OR REPLACE INTO asset
			(path, dir, name, thumb_name, width, height, taken_at, mod_time)
			VALUES (:path, :dir, :name, :thumb_name, :width, :height, :taken_at, :mod_time)`, rec)
		if err != nil {
			return fmt.Errorf("saving record for %s: %w", rec.Path, err)
		}
	}
	return nil
}

func (s *Store) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM asset WHERE path=$1;", path)
	return err
}

func (s *Store) Close() error {
	return s.db.Close()
}
