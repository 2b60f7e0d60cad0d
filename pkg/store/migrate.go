// CLAUDE:SUMMARY One-shot migration from the legacy flat schema (director/date/host embedded in movies) to the normalized schema.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// MigrateLegacy upgrades a database using the legacy flat schema
// (movies carrying director_id, screen_date, host and attendance columns,
// directors keyed by a single name column) to the normalized schema.
//
// The file is backed up first; the migration itself runs in one
// transaction, so a failure leaves the original tables untouched.
func MigrateLegacy(ctx context.Context, path string, logger *slog.Logger) error {
	backup := fmt.Sprintf("%s.backup-%s", path, time.Now().Format("20060102_150405"))
	if err := copyFile(path, backup); err != nil {
		return fmt.Errorf("backup database: %w", err)
	}
	logger.Info("database backed up", "path", backup)

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return fmt.Errorf("open legacy db: %w", err)
	}
	defer db.Close()

	legacy, err := isLegacySchema(ctx, db)
	if err != nil {
		return err
	}
	if !legacy {
		return fmt.Errorf("database %s does not use the legacy schema", path)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := createNormalizedTables(ctx, tx); err != nil {
		return err
	}
	if err := migrateRows(ctx, tx, logger); err != nil {
		return err
	}
	if err := replaceOldTables(ctx, tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}
	logger.Info("migration complete")
	return nil
}

// isLegacySchema reports whether the directors table still carries the
// single free-text name column.
func isLegacySchema(ctx context.Context, db *sql.DB) (bool, error) {
	rows, err := db.QueryContext(ctx, `PRAGMA table_info(directors)`)
	if err != nil {
		return false, fmt.Errorf("inspect directors table: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return false, fmt.Errorf("scan table_info: %w", err)
		}
		if name == "name" {
			return true, nil
		}
	}
	return false, rows.Err()
}

func createNormalizedTables(ctx context.Context, tx *sql.Tx) error {
	ddl := []string{
		`CREATE TABLE directors_new (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			fname TEXT NOT NULL,
			mname TEXT,
			lname TEXT NOT NULL
		)`,
		`CREATE TABLE moviedirector (
			movie_id     INTEGER NOT NULL,
			director_id  INTEGER NOT NULL,
			director_ord INTEGER NOT NULL,
			PRIMARY KEY (movie_id, director_id),
			FOREIGN KEY (movie_id) REFERENCES movies(id),
			FOREIGN KEY (director_id) REFERENCES directors_new(id)
		)`,
		`CREATE TABLE host (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			fname TEXT NOT NULL,
			lname TEXT NOT NULL
		)`,
		`CREATE TABLE session (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			date       TEXT NOT NULL,
			movie_id   INTEGER NOT NULL,
			host_id    INTEGER,
			attendance INTEGER,
			FOREIGN KEY (movie_id) REFERENCES movies(id),
			FOREIGN KEY (host_id) REFERENCES host(id)
		)`,
		`CREATE TABLE movies_new (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			title   TEXT NOT NULL,
			year    INTEGER,
			country TEXT,
			url     TEXT
		)`,
	}
	for _, stmt := range ddl {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create normalized tables: %w", err)
		}
	}
	return nil
}

func migrateRows(ctx context.Context, tx *sql.Tx, logger *slog.Logger) error {
	// Directors: split the free-text name on the first space.
	directorIDs := make(map[int64]int64)
	rows, err := tx.QueryContext(ctx, `SELECT id, name FROM directors`)
	if err != nil {
		return fmt.Errorf("read legacy directors: %w", err)
	}
	type legacyDirector struct {
		id   int64
		name string
	}
	var oldDirectors []legacyDirector
	for rows.Next() {
		var d legacyDirector
		if err := rows.Scan(&d.id, &d.name); err != nil {
			rows.Close()
			return fmt.Errorf("scan legacy director: %w", err)
		}
		oldDirectors = append(oldDirectors, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, d := range oldDirectors {
		fname, lname := splitLegacyName(d.name)
		res, err := tx.ExecContext(ctx,
			`INSERT INTO directors_new (fname, mname, lname) VALUES (?, '', ?)`,
			fname, lname)
		if err != nil {
			return fmt.Errorf("migrate director %q: %w", d.name, err)
		}
		newID, _ := res.LastInsertId()
		directorIDs[d.id] = newID
	}
	logger.Info("directors migrated", "count", len(oldDirectors))

	// Movies, keeping an old->new id mapping for the junction and sessions.
	movieIDs := make(map[int64]int64)
	type legacyMovie struct {
		id         int64
		title      string
		year       sql.NullInt64
		country    sql.NullString
		url        sql.NullString
		directorID sql.NullInt64
		screenDate sql.NullString
		host       sql.NullString
		attendance sql.NullInt64
	}
	rows, err = tx.QueryContext(ctx,
		`SELECT id, title, year, country, url, director_id, screen_date, host, attendance FROM movies`)
	if err != nil {
		return fmt.Errorf("read legacy movies: %w", err)
	}
	var oldMovies []legacyMovie
	for rows.Next() {
		var m legacyMovie
		if err := rows.Scan(&m.id, &m.title, &m.year, &m.country, &m.url,
			&m.directorID, &m.screenDate, &m.host, &m.attendance); err != nil {
			rows.Close()
			return fmt.Errorf("scan legacy movie: %w", err)
		}
		oldMovies = append(oldMovies, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	hostIDs := make(map[string]int64)
	for _, m := range oldMovies {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO movies_new (title, year, country, url) VALUES (?, ?, ?, ?)`,
			m.title, m.year, m.country, m.url)
		if err != nil {
			return fmt.Errorf("migrate movie %q: %w", m.title, err)
		}
		newID, _ := res.LastInsertId()
		movieIDs[m.id] = newID

		if m.directorID.Valid {
			if newDirID, ok := directorIDs[m.directorID.Int64]; ok {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO moviedirector (movie_id, director_id, director_ord) VALUES (?, ?, 1)`,
					newID, newDirID)
				if err != nil {
					return fmt.Errorf("migrate credit for %q: %w", m.title, err)
				}
			}
		}

		if !m.screenDate.Valid || m.screenDate.String == "" {
			continue
		}

		var hostID *int64
		if m.host.Valid && strings.TrimSpace(m.host.String) != "" {
			key := m.host.String
			id, ok := hostIDs[key]
			if !ok {
				fname, lname := splitLegacyName(key)
				res, err := tx.ExecContext(ctx,
					`INSERT INTO host (fname, lname) VALUES (?, ?)`, fname, lname)
				if err != nil {
					return fmt.Errorf("migrate host %q: %w", key, err)
				}
				id, _ = res.LastInsertId()
				hostIDs[key] = id
			}
			hostID = &id
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO session (date, movie_id, host_id, attendance) VALUES (?, ?, ?, ?)`,
			m.screenDate.String, newID, hostID, m.attendance)
		if err != nil {
			return fmt.Errorf("migrate session for %q: %w", m.title, err)
		}
	}
	logger.Info("movies migrated", "count", len(oldMovies), "hosts", len(hostIDs))
	return nil
}

func replaceOldTables(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`DROP TABLE movies`,
		`DROP TABLE directors`,
		`ALTER TABLE movies_new RENAME TO movies`,
		`ALTER TABLE directors_new RENAME TO directors`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("replace old tables: %w", err)
		}
	}
	return nil
}

// splitLegacyName splits a free-text name on the first space; one-word
// names become the first name with an empty last name.
func splitLegacyName(name string) (fname, lname string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	if len(parts) == 2 {
		return parts[0], strings.TrimSpace(parts[1])
	}
	return parts[0], ""
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
