// CLAUDE:SUMMARY Read-only schedule and search queries over the movie club schema, plus human date formatting and CSV export.
package report

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Entry is one scheduled screening with its movie flattened in.
type Entry struct {
	Date       string `json:"date"`
	Title      string `json:"title"`
	Directors  string `json:"directors"`
	Year       int    `json:"year"`
	Country    string `json:"country"`
	Host       string `json:"host,omitempty"`
	Attendance *int64 `json:"attendance,omitempty"`
}

// Range bounds a schedule query; zero values mean unbounded.
type Range struct {
	From string // inclusive, YYYY-MM-DD
	To   string // inclusive, YYYY-MM-DD
}

// Schedule returns screenings ordered by date ascending, optionally
// limited to a date range. Directors are joined in billing order with
// "; " like the source CSV.
func Schedule(ctx context.Context, db *sql.DB, r Range) ([]Entry, error) {
	q := `SELECT s.id, s.date, m.id, m.title, m.year, m.country, h.fname, h.lname, s.attendance
		FROM session s
		JOIN movies m ON s.movie_id = m.id
		LEFT JOIN host h ON s.host_id = h.id`
	var args []any
	var where []string
	if r.From != "" {
		where = append(where, "s.date >= ?")
		args = append(args, r.From)
	}
	if r.To != "" {
		where = append(where, "s.date <= ?")
		args = append(args, r.To)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY s.date ASC, s.id ASC"

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	var movieIDs []int64
	for rows.Next() {
		var e Entry
		var sessionID, movieID int64
		var year sql.NullInt64
		var country, hostF, hostL sql.NullString
		var attendance sql.NullInt64
		if err := rows.Scan(&sessionID, &e.Date, &movieID, &e.Title, &year, &country,
			&hostF, &hostL, &attendance); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		e.Year = int(year.Int64)
		e.Country = country.String
		e.Host = joinName(hostF.String, hostL.String)
		if attendance.Valid {
			e.Attendance = &attendance.Int64
		}
		entries = append(entries, e)
		movieIDs = append(movieIDs, movieID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Second pass for director credits: GROUP_CONCAT inside the join
	// cannot guarantee billing order across SQLite builds.
	for i, movieID := range movieIDs {
		directors, err := directorsLine(ctx, db, movieID)
		if err != nil {
			return nil, err
		}
		entries[i].Directors = directors
	}
	return entries, nil
}

// directorsLine formats a movie's directors in billing order.
func directorsLine(ctx context.Context, db *sql.DB, movieID int64) (string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT d.fname, d.mname, d.lname
		 FROM moviedirector md JOIN directors d ON md.director_id = d.id
		 WHERE md.movie_id = ? ORDER BY md.director_ord`, movieID)
	if err != nil {
		return "", fmt.Errorf("query directors for %d: %w", movieID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var fname, lname string
		var mname sql.NullString
		if err := rows.Scan(&fname, &mname, &lname); err != nil {
			return "", fmt.Errorf("scan director: %w", err)
		}
		names = append(names, formatDirector(fname, mname.String, lname))
	}
	return strings.Join(names, "; "), rows.Err()
}

// SearchMovies finds movies whose title contains the query, with their
// screening history.
func SearchMovies(ctx context.Context, db *sql.DB, title string) ([]Entry, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.title, m.year, m.country, s.date, h.fname, h.lname, s.attendance
		 FROM movies m
		 LEFT JOIN session s ON s.movie_id = m.id
		 LEFT JOIN host h ON s.host_id = h.id
		 WHERE m.title LIKE ?
		 ORDER BY m.title, s.date`, "%"+title+"%")
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	var movieIDs []int64
	for rows.Next() {
		var e Entry
		var movieID int64
		var year sql.NullInt64
		var country, date, hostF, hostL sql.NullString
		var attendance sql.NullInt64
		if err := rows.Scan(&movieID, &e.Title, &year, &country, &date,
			&hostF, &hostL, &attendance); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		e.Year = int(year.Int64)
		e.Country = country.String
		e.Date = date.String
		e.Host = joinName(hostF.String, hostL.String)
		if attendance.Valid {
			e.Attendance = &attendance.Int64
		}
		entries = append(entries, e)
		movieIDs = append(movieIDs, movieID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i, movieID := range movieIDs {
		directors, err := directorsLine(ctx, db, movieID)
		if err != nil {
			return nil, err
		}
		entries[i].Directors = directors
	}
	return entries, nil
}

// Counts summarizes the store for operators and the stats endpoint.
type Counts struct {
	Movies    int `json:"movies"`
	Directors int `json:"directors"`
	Hosts     int `json:"hosts"`
	Sessions  int `json:"sessions"`
}

// DBCounts reads row counts for every entity table.
func DBCounts(ctx context.Context, db *sql.DB) (Counts, error) {
	var c Counts
	for _, q := range []struct {
		table string
		dest  *int
	}{
		{"movies", &c.Movies},
		{"directors", &c.Directors},
		{"host", &c.Hosts},
		{"session", &c.Sessions},
	} {
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+q.table).Scan(q.dest); err != nil {
			return Counts{}, fmt.Errorf("count %s: %w", q.table, err)
		}
	}
	return c, nil
}

// FormatScreenDate renders an ISO date for humans, e.g. "Fri, Jan 17, 2025".
func FormatScreenDate(iso string) (string, error) {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", iso, err)
	}
	return t.Format("Mon, Jan 02, 2006"), nil
}

// WriteCSV writes the schedule as CSV rows (no header, matching the
// historical export): title, directors, year, country, formatted date, host.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)
	for _, e := range entries {
		date, err := FormatScreenDate(e.Date)
		if err != nil {
			return err
		}
		row := []string{e.Title, e.Directors, strconv.Itoa(e.Year), e.Country, date, e.Host}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDirector(fname, mname, lname string) string {
	if mname != "" {
		return fname + " " + mname + " " + lname
	}
	return fname + " " + lname
}

func joinName(fname, lname string) string {
	if fname == "" {
		return ""
	}
	if lname == "" {
		return fname
	}
	return fname + " " + lname
}
