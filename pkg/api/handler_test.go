package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hazyhaar/movieclub/pkg/ingest"
	"github.com/hazyhaar/movieclub/pkg/store"
)

func testRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "movie_club.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	c := ingest.NewCommitter(s, ingest.NewCountryNormalizer())
	ctx := context.Background()
	for _, rec := range []ingest.Record{
		{Title: "La Haine", Director: "Mathieu Kassovitz", Country: "France", Year: "1995", Date: "1996-03-01", Host: "Jane Doe"},
		{Title: "Fargo", Director: "Joel Coen; Ethan Coen", Country: "US", Year: "1996", Date: "1996-05-03"},
	} {
		if res := c.Commit(ctx, rec); res.Disposition != ingest.Inserted {
			t.Fatalf("seed %s: %v (%v)", rec.Title, res.Disposition, res.Err)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewRouter(s, logger), s
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleSchedule(t *testing.T) {
	router, _ := testRouter(t)

	rec := get(t, router, "/v1/schedule")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp scheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(resp.Entries))
	}
	if resp.Entries[0].Title != "La Haine" || resp.Entries[1].Title != "Fargo" {
		t.Errorf("order: %s, %s", resp.Entries[0].Title, resp.Entries[1].Title)
	}
	if resp.Entries[1].Directors != "Joel Coen; Ethan Coen" {
		t.Errorf("directors = %q", resp.Entries[1].Directors)
	}
}

func TestHandleSchedule_Range(t *testing.T) {
	router, _ := testRouter(t)

	rec := get(t, router, "/v1/schedule?from=1996-04-01&to=1996-12-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp scheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].Title != "Fargo" {
		t.Errorf("entries = %+v", resp.Entries)
	}
}

func TestHandleSearch(t *testing.T) {
	router, _ := testRouter(t)

	rec := get(t, router, "/v1/movies/search?title=haine")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp scheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].Title != "La Haine" {
		t.Errorf("entries = %+v", resp.Entries)
	}

	// Missing title parameter is a 400.
	if rec := get(t, router, "/v1/movies/search"); rec.Code != http.StatusBadRequest {
		t.Errorf("missing title: status = %d, want 400", rec.Code)
	}
}

func TestHandleMovie(t *testing.T) {
	router, s := testRouter(t)

	id, err := s.FindMovie(context.Background(), "Fargo", 1996)
	if err != nil {
		t.Fatalf("FindMovie: %v", err)
	}

	rec := get(t, router, fmt.Sprintf("/v1/movies/%d", id))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp movieResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Movie.Title != "Fargo" || resp.Movie.Country != "USA" {
		t.Errorf("movie = %+v", resp.Movie)
	}
	if len(resp.Directors) != 2 || resp.Directors[0].Fname != "Joel" {
		t.Errorf("directors = %+v", resp.Directors)
	}
}

func TestHandleMovie_NotFound(t *testing.T) {
	router, _ := testRouter(t)

	if rec := get(t, router, "/v1/movies/9999"); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if rec := get(t, router, "/v1/movies/abc"); rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleStats(t *testing.T) {
	router, _ := testRouter(t)

	rec := get(t, router, "/v1/stats")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var counts struct {
		Movies    int `json:"movies"`
		Directors int `json:"directors"`
		Hosts     int `json:"hosts"`
		Sessions  int `json:"sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &counts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if counts.Movies != 2 || counts.Directors != 3 || counts.Hosts != 1 || counts.Sessions != 2 {
		t.Errorf("counts = %+v", counts)
	}
}

func TestHandleHealth(t *testing.T) {
	router, _ := testRouter(t)

	rec := get(t, router, "/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); !json.Valid([]byte(got)) {
		t.Errorf("health body not JSON: %s", got)
	}
}
