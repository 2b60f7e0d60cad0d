// CLAUDE:SUMMARY CLI subcommand migrating a legacy flat-schema database to the normalized schema, backup first.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/hazyhaar/movieclub/pkg/store"
)

func cmdMigrate(args []string) {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	cfgPath := fs.String("config", "movieclub.yaml", "path to config file")
	fs.Parse(args)

	logger := newLogger("info")
	cfg := loadConfig(*cfgPath, logger)
	logger = newLogger(cfg.LogLevel)

	dbPath := cfg.DBPath
	if fs.NArg() == 1 {
		dbPath = fs.Arg(0)
	}

	if err := store.MigrateLegacy(context.Background(), dbPath, logger); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}
}
