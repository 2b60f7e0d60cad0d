package main

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type csvConfig struct {
	Encoding  string `yaml:"encoding"`
	Delimiter string `yaml:"delimiter"`
}

type config struct {
	DBPath        string    `yaml:"db_path"`
	Addr          string    `yaml:"addr"`
	CountriesFile string    `yaml:"countries_file"`
	CSV           csvConfig `yaml:"csv"`
	LogLevel      string    `yaml:"log_level"`
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "ingest":
		cmdIngest(os.Args[2:])
	case "sched":
		cmdSched(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	case "migrate":
		cmdMigrate(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: movieclub <command>

Commands:
  ingest    Ingest a schedule CSV into the database
  sched     Print the screening schedule
  serve     Start the read-only HTTP/MCP query server
  migrate   Migrate a legacy database to the normalized schema
`)
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

func loadConfig(path string, logger *slog.Logger) config {
	cfg := config{
		DBPath: "data/movie_club.db",
		Addr:   ":8420",
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("no config file, using defaults", "path", path)
			return cfg
		}
		logger.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("parse config", "error", err)
		os.Exit(1)
	}
	return cfg
}
