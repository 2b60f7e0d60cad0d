// CLAUDE:SUMMARY SQLite store for the movie club schema: open/close, pragmas, schema bootstrap, read-side queries.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned by lookups when no row matches.
var ErrNotFound = errors.New("not found")

// Store manages the movie club SQLite database. It is the sole writer;
// reporting tools only read the schema it maintains.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the SQLite database at path and ensures the
// normalized schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open movie db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close ferme la connexion SQLite.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DB exposes the underlying handle for read-only collaborators (reporting,
// API). Writers go through Begin.
func (s *Store) DB() *sql.DB {
	return s.db
}

// FindMovie looks up a movie by its exact (title, year) dedup key.
// Returns ErrNotFound when absent; never mutates state.
func (s *Store) FindMovie(ctx context.Context, title string, year int) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM movies WHERE title = ? AND year = ?`, title, year).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find movie %q (%d): %w", title, year, err)
	}
	return id, nil
}

// GetMovie returns one movie row by id.
func (s *Store) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	var m Movie
	var year sql.NullInt64
	var country sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, year, country, url FROM movies WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &year, &country, &m.URL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, err)
	}
	m.Year = int(year.Int64)
	m.Country = country.String
	return &m, nil
}

// DirectorsFor returns a movie's directors in billing order.
func (s *Store) DirectorsFor(ctx context.Context, movieID int64) ([]Director, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT d.id, d.fname, d.mname, d.lname
		 FROM moviedirector md JOIN directors d ON md.director_id = d.id
		 WHERE md.movie_id = ? ORDER BY md.director_ord`, movieID)
	if err != nil {
		return nil, fmt.Errorf("directors for movie %d: %w", movieID, err)
	}
	defer rows.Close()

	var directors []Director
	for rows.Next() {
		var d Director
		var mname sql.NullString
		if err := rows.Scan(&d.ID, &d.Fname, &mname, &d.Lname); err != nil {
			return nil, fmt.Errorf("scan director: %w", err)
		}
		d.Mname = mname.String
		directors = append(directors, d)
	}
	return directors, rows.Err()
}
