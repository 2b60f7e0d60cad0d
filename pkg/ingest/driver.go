// CLAUDE:SUMMARY Ingestion driver: streams CSV rows (with optional transcoding), runs the committer per record, accumulates counters.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Expected CSV header names, lowercased.
const (
	colTitle    = "title"
	colDirector = "director"
	colCountry  = "country of origin"
	colYear     = "year"
	colDate     = "screen date"
	colHost     = "host"
)

// Stats accumulates per-run counters. It is owned by the driver and
// returned to the caller; nothing module-level.
type Stats struct {
	Processed  int
	Duplicates int
	Skipped    int
}

// Options tunes how the input file is read.
type Options struct {
	// Encoding is an IANA charset name for non-UTF-8 inputs
	// (e.g. "windows-1252"). Empty means UTF-8.
	Encoding string
	// Delimiter overrides the field separator; first rune is used.
	// Empty means comma.
	Delimiter string
}

// Driver streams records from a CSV file through the committer, one at a
// time in source order.
type Driver struct {
	committer *Committer
	logger    *slog.Logger
	opts      Options
}

// NewDriver builds a driver around a committer.
func NewDriver(c *Committer, logger *slog.Logger, opts Options) *Driver {
	return &Driver{committer: c, logger: logger, opts: opts}
}

// Run ingests every row of the file at csvPath and returns the final
// counters. A missing or unreadable file is a run-level failure: it
// aborts before any record is processed and the returned Stats are zero.
// Record-level failures only bump the skip counter.
func (d *Driver) Run(ctx context.Context, csvPath string) (Stats, error) {
	var stats Stats

	f, err := os.Open(csvPath)
	if err != nil {
		return stats, fmt.Errorf("open %s: %w", csvPath, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if enc := d.opts.Encoding; enc != "" && !isUTF8(enc) {
		e, err := htmlindex.Get(enc)
		if err != nil {
			return stats, fmt.Errorf("unsupported encoding %q: %w", enc, err)
		}
		reader = transform.NewReader(f, e.NewDecoder())
	}

	r := csv.NewReader(reader)
	if d.opts.Delimiter != "" {
		r.Comma = []rune(d.opts.Delimiter)[0]
	}
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		// Header-only or empty files produce an all-zero summary.
		d.logSummary(stats)
		return stats, nil
	}
	if err != nil {
		return stats, fmt.Errorf("read header: %w", err)
	}

	colIdx := make(map[string]int, len(header))
	for i, h := range header {
		colIdx[strings.TrimSpace(strings.ToLower(h))] = i
	}

	for rowNum := 2; ; rowNum++ { // header is line 1
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("read row %d: %w", rowNum, err)
		}

		rec := Record{
			Title:    field(row, colIdx, colTitle),
			Director: field(row, colIdx, colDirector),
			Country:  field(row, colIdx, colCountry),
			Year:     field(row, colIdx, colYear),
			Date:     field(row, colIdx, colDate),
			Host:     field(row, colIdx, colHost),
		}

		res := d.committer.Commit(ctx, rec)
		switch res.Disposition {
		case Inserted:
			stats.Processed++
			d.logger.Info("inserted", "row", rowNum, "title", res.Title, "year", res.Year)
		case Duplicate:
			stats.Duplicates++
			d.logger.Info("movie already exists, skipping", "row", rowNum, "title", res.Title, "year", res.Year)
		case Skipped:
			stats.Skipped++
			d.logger.Warn("row skipped", "row", rowNum, "reason", string(res.Reason), "error", res.Err)
		}
	}

	d.logSummary(stats)
	return stats, nil
}

func (d *Driver) logSummary(stats Stats) {
	d.logger.Info("ingestion complete",
		"processed", stats.Processed,
		"duplicates", stats.Duplicates,
		"skipped", stats.Skipped,
	)
}

// field extracts a named column from a row, empty when the column is
// absent or the row is short.
func field(row []string, colIdx map[string]int, name string) string {
	idx, ok := colIdx[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isUTF8(enc string) bool {
	e := strings.ToLower(strings.ReplaceAll(enc, "-", ""))
	return e == "utf8" || e == ""
}
