// CLAUDE:SUMMARY CLI subcommand that prints the screening schedule as a table or exports it to CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hazyhaar/movieclub/pkg/report"
	"github.com/hazyhaar/movieclub/pkg/store"
)

func cmdSched(args []string) {
	fs := flag.NewFlagSet("sched", flag.ExitOnError)
	cfgPath := fs.String("config", "movieclub.yaml", "path to config file")
	from := fs.String("from", "", "inclusive start date (YYYY-MM-DD)")
	to := fs.String("to", "", "inclusive end date (YYYY-MM-DD)")
	csvOut := fs.String("csv", "", "write the schedule as CSV to this file instead of printing a table")
	fs.Parse(args)

	logger := newLogger("warn")
	cfg := loadConfig(*cfgPath, logger)

	s, err := store.Open(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	entries, err := report.Schedule(context.Background(), s.DB(), report.Range{From: *from, To: *to})
	if err != nil {
		fmt.Fprintf(os.Stderr, "query schedule: %v\n", err)
		os.Exit(1)
	}

	if *csvOut != "" {
		f, err := os.Create(*csvOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create %s: %v\n", *csvOut, err)
			os.Exit(1)
		}
		if err := report.WriteCSV(f, entries); err != nil {
			f.Close()
			fmt.Fprintf(os.Stderr, "write schedule: %v\n", err)
			os.Exit(1)
		}
		if err := f.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close %s: %v\n", *csvOut, err)
			os.Exit(1)
		}
		fmt.Printf("%d screenings written to %s\n", len(entries), *csvOut)
		return
	}

	if len(entries) == 0 {
		fmt.Println("No screenings scheduled.")
		return
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Date", "Title", "Director(s)", "Year", "Country", "Host"})
	for _, e := range entries {
		date, err := report.FormatScreenDate(e.Date)
		if err != nil {
			date = e.Date
		}
		tw.AppendRow(table.Row{date, e.Title, e.Directors, strconv.Itoa(e.Year), e.Country, e.Host})
	}
	tw.Render()
}
