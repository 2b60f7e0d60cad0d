// CLAUDE:SUMMARY Per-record commit protocol: validate, normalize, dedup gate, parse-all directors, then persist in one transaction.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hazyhaar/movieclub/pkg/store"
)

// Disposition classifies the outcome of one record.
type Disposition int

const (
	// Inserted means the record's movie, credits, optional host and
	// session were all committed.
	Inserted Disposition = iota
	// Duplicate means a movie with the same (title, year) already
	// exists; nothing was written.
	Duplicate
	// Skipped means the record was rejected; any partial writes were
	// rolled back.
	Skipped
)

// SkipReason names why a record was skipped.
type SkipReason string

const (
	ReasonMissingField        SkipReason = "missing_field"
	ReasonInvalidDate         SkipReason = "invalid_date"
	ReasonUnparseableDirector SkipReason = "unparseable_director"
	ReasonPersistError        SkipReason = "persist_error"
)

// Result is the outcome of committing one record.
type Result struct {
	Disposition Disposition
	Reason      SkipReason // set when Disposition == Skipped
	Err         error      // underlying cause for skips
	MovieID     int64      // set when Inserted
	Title       string
	Year        int
}

// Committer turns one validated record into committed rows, or rolls the
// whole record back. It holds no cross-record state beyond the shared
// store handle and the country alias table.
type Committer struct {
	store     *store.Store
	countries *CountryNormalizer
}

// NewCommitter builds a committer over an open store.
func NewCommitter(s *store.Store, countries *CountryNormalizer) *Committer {
	return &Committer{store: s, countries: countries}
}

// Commit processes one record end to end:
// validate, normalize, duplicate check, parse all directors, then a single
// transaction covering director resolution, movie, credits, host and
// session. Record-level failures never escape; they come back as a
// Skipped result with a reason.
func (c *Committer) Commit(ctx context.Context, rec Record) Result {
	// Validation and normalization touch no persistent state.
	if err := rec.Validate(); err != nil {
		return skipFor(err)
	}

	title := strings.TrimSpace(rec.Title)
	date := strings.TrimSpace(rec.Date)
	country := c.countries.Normalize(rec.Country)

	year, err := strconv.Atoi(strings.TrimSpace(rec.Year))
	if err != nil {
		return Result{Disposition: Skipped, Reason: ReasonPersistError,
			Err: fmt.Errorf("coerce year: %w", err), Title: title}
	}

	// Duplicate gate: an existing (title, year) is expected, not an error.
	if id, err := c.store.FindMovie(ctx, title, year); err == nil {
		return Result{Disposition: Duplicate, MovieID: id, Title: title, Year: year}
	} else if !errors.Is(err, store.ErrNotFound) {
		return Result{Disposition: Skipped, Reason: ReasonPersistError, Err: err, Title: title, Year: year}
	}

	// Parse every director before any write. A record is all-or-nothing
	// across its director list, so an unparseable name aborts here with
	// zero rows attributable to this record.
	directors, err := ParseDirectors(rec.Director)
	if err != nil {
		return Result{Disposition: Skipped, Reason: ReasonUnparseableDirector, Err: err, Title: title, Year: year}
	}

	host := ParseHostName(rec.Host)

	movieID, err := c.persist(ctx, title, year, country, date, directors, host)
	if err != nil {
		return Result{Disposition: Skipped, Reason: ReasonPersistError, Err: err, Title: title, Year: year}
	}
	return Result{Disposition: Inserted, MovieID: movieID, Title: title, Year: year}
}

// persist writes all of a record's rows inside one transaction. The
// deferred rollback covers every early return; it becomes a no-op once
// the commit succeeds.
func (c *Committer) persist(ctx context.Context, title string, year int, country, date string, directors []Name, host *HostName) (int64, error) {
	tx, err := c.store.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	directorIDs := make([]int64, 0, len(directors))
	for _, d := range directors {
		id, err := tx.FindOrInsertDirector(ctx, d.First, d.Middle, d.Last)
		if err != nil {
			return 0, err
		}
		directorIDs = append(directorIDs, id)
	}

	movieID, err := tx.InsertMovie(ctx, title, year, country)
	if err != nil {
		return 0, err
	}
	if err := tx.InsertCredits(ctx, movieID, directorIDs); err != nil {
		return 0, err
	}

	var hostID *int64
	if host != nil {
		id, err := tx.FindOrInsertHost(ctx, host.First, host.Last)
		if err != nil {
			return 0, err
		}
		hostID = &id
	}

	if _, err := tx.InsertSession(ctx, date, movieID, hostID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return movieID, nil
}

// skipFor maps a validation error to its skip reason.
func skipFor(err error) Result {
	r := Result{Disposition: Skipped, Err: err}
	var missing *MissingFieldError
	var badDate *InvalidDateError
	switch {
	case errors.As(err, &missing):
		r.Reason = ReasonMissingField
	case errors.As(err, &badDate):
		r.Reason = ReasonInvalidDate
	default:
		r.Reason = ReasonPersistError
	}
	return r
}
