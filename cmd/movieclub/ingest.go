// CLAUDE:SUMMARY CLI subcommand that ingests a schedule CSV into the database, one transaction per row.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hazyhaar/movieclub/pkg/ingest"
	"github.com/hazyhaar/movieclub/pkg/store"
)

func cmdIngest(args []string) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	cfgPath := fs.String("config", "movieclub.yaml", "path to config file")
	logLevel := fs.String("log-level", "", "override log level (debug, info, warn, error)")
	fs.Parse(args)

	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: movieclub ingest [flags] <csv_file>")
		os.Exit(1)
	}
	csvPath := fs.Arg(0)

	logger := newLogger(*logLevel)
	cfg := loadConfig(*cfgPath, logger)
	if *logLevel == "" {
		logger = newLogger(cfg.LogLevel)
	}

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	countries := ingest.NewCountryNormalizer()
	if cfg.CountriesFile != "" {
		if err := countries.LoadAliases(cfg.CountriesFile); err != nil {
			logger.Error("load country aliases", "error", err)
			os.Exit(1)
		}
	}

	driver := ingest.NewDriver(
		ingest.NewCommitter(s, countries),
		logger,
		ingest.Options{Encoding: cfg.CSV.Encoding, Delimiter: cfg.CSV.Delimiter},
	)

	logger.Info("starting ingestion", "file", csvPath, "db", cfg.DBPath)
	stats, err := driver.Run(context.Background(), csvPath)
	if err != nil {
		logger.Error("ingestion aborted", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%d rows processed, %d duplicates skipped, %d rows skipped due to errors\n",
		stats.Processed, stats.Duplicates, stats.Skipped)
}
