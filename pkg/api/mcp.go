package api

import (
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/movieclub/pkg/kit"
	"github.com/hazyhaar/movieclub/pkg/store"
)

// RegisterMCPTools registers the read-only movie club MCP tools.
func RegisterMCPTools(srv *server.MCPServer, s *store.Store) {
	registerGetSchedule(srv, s)
	registerSearchMovies(srv, s)
	registerLookupMovie(srv, s)
	registerDBStats(srv, s)
}

func registerGetSchedule(srv *server.MCPServer, s *store.Store) {
	tool := mcp.NewTool("get_schedule",
		mcp.WithDescription("List movie club screenings ordered by date, with title, directors, country, year and host."),
		mcp.WithString("from", mcp.Description("Inclusive start date (YYYY-MM-DD)")),
		mcp.WithString("to", mcp.Description("Inclusive end date (YYYY-MM-DD)")),
	)

	kit.RegisterMCPTool(srv, tool, scheduleEndpoint(s), func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		from, _ := args["from"].(string)
		to, _ := args["to"].(string)
		return &scheduleReq{From: from, To: to}, nil
	})
}

func registerSearchMovies(srv *server.MCPServer, s *store.Store) {
	tool := mcp.NewTool("search_movies",
		mcp.WithDescription("Search movies by title (substring match) and list when each was screened."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Title or title fragment to search for")),
	)

	kit.RegisterMCPTool(srv, tool, searchEndpoint(s), func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		title, _ := args["title"].(string)
		return &searchReq{Title: title}, nil
	})
}

func registerLookupMovie(srv *server.MCPServer, s *store.Store) {
	tool := mcp.NewTool("lookup_movie",
		mcp.WithDescription("Fetch one movie by id with its directors in billing order."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Movie id")),
	)

	kit.RegisterMCPTool(srv, tool, movieEndpoint(s), func(req mcp.CallToolRequest) (any, error) {
		args := req.GetArguments()
		raw, _ := args["id"].(string)
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return &movieReq{ID: id}, nil
	})
}

func registerDBStats(srv *server.MCPServer, s *store.Store) {
	tool := mcp.NewTool("db_stats",
		mcp.WithDescription("Row counts for movies, directors, hosts and sessions."),
	)

	kit.RegisterMCPTool(srv, tool, statsEndpoint(s), func(mcp.CallToolRequest) (any, error) {
		return nil, nil
	})
}
