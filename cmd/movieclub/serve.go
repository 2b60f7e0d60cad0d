// CLAUDE:SUMMARY CLI subcommand serving the read-only query surface over HTTP, or over MCP stdio for agent clients.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/hazyhaar/movieclub/pkg/api"
	"github.com/hazyhaar/movieclub/pkg/store"
)

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "movieclub.yaml", "path to config file")
	mcpStdio := fs.Bool("mcp", false, "serve MCP over stdio instead of HTTP")
	fs.Parse(args)

	logger := newLogger("info")
	cfg := loadConfig(*cfgPath, logger)
	logger = newLogger(cfg.LogLevel)

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	if *mcpStdio {
		srv := server.NewMCPServer("movieclub", "1.0.0")
		api.RegisterMCPTools(srv, s)
		logger.Info("serving MCP over stdio", "db", cfg.DBPath)
		if err := server.ServeStdio(srv); err != nil {
			logger.Error("mcp server error", "error", err)
			os.Exit(1)
		}
		return
	}

	router := api.NewRouter(s, logger)
	httpSrv := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("movieclub listening", "addr", cfg.Addr, "db", cfg.DBPath)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	httpSrv.Shutdown(context.Background())
}
