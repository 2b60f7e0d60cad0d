package ingest

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"

	"github.com/hazyhaar/movieclub/pkg/store"
)

func testDriver(t *testing.T, opts Options) (*Driver, *store.Store) {
	t.Helper()
	c, s := testCommitter(t)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewDriver(c, logger, opts), s
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

const header = "title,director,country of origin,year,screen date,host\n"

func TestRun_MixedRows(t *testing.T) {
	d, s := testDriver(t, Options{})
	path := writeCSV(t, header+
		`La Haine,Mathieu Kassovitz,France,1995,1996-03-01,Jane Doe`+"\n"+
		`Ran,Akira Kurosawa,Japan,1985,1996-04-05,`+"\n"+
		`La Haine,Mathieu Kassovitz,France,1995,1997-06-10,Jane Doe`+"\n"+ // duplicate
		`Some Film,John Smith; X,USA,2001,2002-05-04,`+"\n"+ // unparseable director
		`,Akira Kurosawa,Japan,1985,1996-04-05,`+"\n") // missing title

	stats, err := d.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Processed != 2 || stats.Duplicates != 1 || stats.Skipped != 2 {
		t.Errorf("stats = %+v, want {2 1 2}", stats)
	}

	if got := rowCount(t, s, "movies"); got != 2 {
		t.Errorf("movies = %d, want 2", got)
	}
	if got := rowCount(t, s, "session"); got != 2 {
		t.Errorf("session = %d, want 2", got)
	}
}

func TestRun_EmptyInput(t *testing.T) {
	d, _ := testDriver(t, Options{})

	// Header only.
	stats, err := d.Run(context.Background(), writeCSV(t, header))
	if err != nil {
		t.Fatalf("Run header-only: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zeros", stats)
	}

	// Fully empty file.
	stats, err = d.Run(context.Background(), writeCSV(t, ""))
	if err != nil {
		t.Fatalf("Run empty: %v", err)
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zeros", stats)
	}
}

func TestRun_MissingFileAborts(t *testing.T) {
	d, s := testDriver(t, Options{})

	stats, err := d.Run(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if stats != (Stats{}) {
		t.Errorf("stats = %+v, want zeros on fatal abort", stats)
	}
	if got := rowCount(t, s, "movies"); got != 0 {
		t.Errorf("movies = %d, want 0", got)
	}
}

func TestRun_ColumnOrderIndependent(t *testing.T) {
	d, s := testDriver(t, Options{})
	path := writeCSV(t,
		"host,screen date,year,country of origin,director,title\n"+
			"Jane Doe,1996-03-01,1995,France,Mathieu Kassovitz,La Haine\n")

	stats, err := d.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Processed != 1 {
		t.Errorf("processed = %d, want 1", stats.Processed)
	}
	if _, err := s.FindMovie(context.Background(), "La Haine", 1995); err != nil {
		t.Errorf("FindMovie after reordered header: %v", err)
	}
}

func TestRun_MissingHostColumn(t *testing.T) {
	d, s := testDriver(t, Options{})
	path := writeCSV(t,
		"title,director,country of origin,year,screen date\n"+
			"La Haine,Mathieu Kassovitz,France,1995,1996-03-01\n")

	stats, err := d.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Processed != 1 {
		t.Errorf("processed = %d, want 1", stats.Processed)
	}
	if got := rowCount(t, s, "host"); got != 0 {
		t.Errorf("host = %d, want 0", got)
	}
}

func TestRun_CustomDelimiterAndEncoding(t *testing.T) {
	// "Les Quatre Cents Coups" with Latin-1 bytes for "François".
	row := "Les Quatre Cents Coups;François Truffaut;France;1959;1996-09-06;\n"
	encoded, err := charmap.Windows1252.NewEncoder().String(
		"title;director;country of origin;year;screen date;host\n" + row)
	if err != nil {
		t.Fatalf("encode fixture: %v", err)
	}

	d, s := testDriver(t, Options{Encoding: "windows-1252", Delimiter: ";"})
	stats, err := d.Run(context.Background(), writeCSV(t, encoded))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Processed != 1 {
		t.Fatalf("processed = %d, want 1 (skipped=%d)", stats.Processed, stats.Skipped)
	}

	var fname string
	err = s.DB().QueryRow(`SELECT fname FROM directors WHERE lname = 'Truffaut'`).Scan(&fname)
	if err != nil {
		t.Fatalf("query director: %v", err)
	}
	if fname != "François" {
		t.Errorf("fname = %q, want François after transcoding", fname)
	}
}

func TestRun_SecondRunAllDuplicates(t *testing.T) {
	d, s := testDriver(t, Options{})
	path := writeCSV(t, header+
		"La Haine,Mathieu Kassovitz,France,1995,1996-03-01,Jane Doe\n"+
		"Ran,Akira Kurosawa,Japan,1985,1996-04-05,\n")

	ctx := context.Background()
	if _, err := d.Run(ctx, path); err != nil {
		t.Fatalf("first run: %v", err)
	}
	moviesAfterFirst := rowCount(t, s, "movies")
	sessionsAfterFirst := rowCount(t, s, "session")

	stats, err := d.Run(ctx, path)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if stats.Processed != 0 || stats.Duplicates != 2 || stats.Skipped != 0 {
		t.Errorf("second run stats = %+v, want {0 2 0}", stats)
	}
	if got := rowCount(t, s, "movies"); got != moviesAfterFirst {
		t.Errorf("movies changed on re-run: %d -> %d", moviesAfterFirst, got)
	}
	if got := rowCount(t, s, "session"); got != sessionsAfterFirst {
		t.Errorf("sessions changed on re-run: %d -> %d", sessionsAfterFirst, got)
	}
}
