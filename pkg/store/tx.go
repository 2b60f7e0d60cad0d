// CLAUDE:SUMMARY Per-record write transaction: find-or-insert resolvers and inserts for movies, credits, hosts, sessions.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Tx is the write scope for a single ingested record. All of a record's
// rows go through one Tx; they become visible together on Commit or not at
// all after Rollback.
type Tx struct {
	tx *sql.Tx
}

// Begin opens a write transaction. The caller must Commit or Rollback on
// every exit path; Rollback after Commit is a no-op.
func (s *Store) Begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Commit makes the record's rows visible.
func (t *Tx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Rollback discards the record's rows. Safe to call after Commit.
func (t *Tx) Rollback() error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

// FindOrInsertDirector resolves a director identity to a stable id,
// inserting a new row on first encounter. Repeated calls with the same
// triple converge to one id.
func (t *Tx) FindOrInsertDirector(ctx context.Context, fname, mname, lname string) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx,
		`SELECT id FROM directors WHERE fname = ? AND mname = ? AND lname = ?`,
		fname, mname, lname).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("find director: %w", err)
	}

	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO directors (fname, mname, lname) VALUES (?, ?, ?)`,
		fname, mname, lname)
	if err != nil {
		return 0, fmt.Errorf("insert director: %w", err)
	}
	return res.LastInsertId()
}

// FindOrInsertHost resolves a host identity to a stable id, inserting on
// first encounter.
func (t *Tx) FindOrInsertHost(ctx context.Context, fname, lname string) (int64, error) {
	var id int64
	err := t.tx.QueryRowContext(ctx,
		`SELECT id FROM host WHERE fname = ? AND lname = ?`, fname, lname).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("find host: %w", err)
	}

	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO host (fname, lname) VALUES (?, ?)`, fname, lname)
	if err != nil {
		return 0, fmt.Errorf("insert host: %w", err)
	}
	return res.LastInsertId()
}

// InsertMovie inserts a new movie row and returns its id. The duplicate
// gate has already run; this does not re-check the (title, year) key.
func (t *Tx) InsertMovie(ctx context.Context, title string, year int, country string) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO movies (title, year, country) VALUES (?, ?, ?)`,
		title, year, country)
	if err != nil {
		return 0, fmt.Errorf("insert movie: %w", err)
	}
	return res.LastInsertId()
}

// InsertCredits writes one moviedirector row per director id, with
// director_ord following slice order starting at 1.
func (t *Tx) InsertCredits(ctx context.Context, movieID int64, directorIDs []int64) error {
	for i, directorID := range directorIDs {
		_, err := t.tx.ExecContext(ctx,
			`INSERT INTO moviedirector (movie_id, director_id, director_ord) VALUES (?, ?, ?)`,
			movieID, directorID, i+1)
		if err != nil {
			return fmt.Errorf("insert credit %d for movie %d: %w", i+1, movieID, err)
		}
	}
	return nil
}

// InsertSession writes one screening row. hostID nil means no host.
func (t *Tx) InsertSession(ctx context.Context, date string, movieID int64, hostID *int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		`INSERT INTO session (date, movie_id, host_id) VALUES (?, ?, ?)`,
		date, movieID, hostID)
	if err != nil {
		return 0, fmt.Errorf("insert session: %w", err)
	}
	return res.LastInsertId()
}
