package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/hazyhaar/movieclub/pkg/kit"
	"github.com/hazyhaar/movieclub/pkg/report"
	"github.com/hazyhaar/movieclub/pkg/store"
)

// Shared request/response types used by both HTTP and MCP transports.

type scheduleReq struct {
	From string
	To   string
}

type scheduleResponse struct {
	Entries []report.Entry `json:"entries"`
}

type searchReq struct {
	Title string
}

type movieReq struct {
	ID int64
}

type movieResponse struct {
	Movie     *store.Movie     `json:"movie"`
	Directors []store.Director `json:"directors"`
}

// The read-only kit.Endpoints backed by the store. The API never writes;
// ingestion is the schema's sole writer.

func scheduleEndpoint(s *store.Store) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*scheduleReq)
		entries, err := report.Schedule(ctx, s.DB(), report.Range{From: req.From, To: req.To})
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []report.Entry{}
		}
		return scheduleResponse{Entries: entries}, nil
	}
}

func searchEndpoint(s *store.Store) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*searchReq)
		if req.Title == "" {
			return nil, fmt.Errorf("title query is empty")
		}
		entries, err := report.SearchMovies(ctx, s.DB(), req.Title)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []report.Entry{}
		}
		return scheduleResponse{Entries: entries}, nil
	}
}

func movieEndpoint(s *store.Store) kit.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req := request.(*movieReq)
		m, err := s.GetMovie(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		directors, err := s.DirectorsFor(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		if directors == nil {
			directors = []store.Director{}
		}
		return movieResponse{Movie: m, Directors: directors}, nil
	}
}

func statsEndpoint(s *store.Store) kit.Endpoint {
	return func(ctx context.Context, _ any) (any, error) {
		counts, err := report.DBCounts(ctx, s.DB())
		if err != nil {
			return nil, err
		}
		return counts, nil
	}
}

// isNotFound lets the HTTP layer map store misses to 404.
func isNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
