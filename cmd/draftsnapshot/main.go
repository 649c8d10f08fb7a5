// Command draftsnapshot runs one refresh and prints the result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/okian/draftassist/internal/adapters/repository"
	service "github.com/okian/draftassist/internal/app"
	"github.com/okian/draftassist/internal/config"
	"github.com/okian/draftassist/internal/domain/board"
	"github.com/okian/draftassist/pkg/logger"
)

// Views printable with -view.
const (
	viewReport    = "report"
	viewBoard     = "board"
	viewAvailable = "available"
	viewSummary   = "summary"
)

func main() {
	var (
		league  = flag.String("league", "", "League ranking table to use (default: configured league)")
		view    = flag.String("view", viewReport, "What to print: report, board, available or summary")
		verbose = flag.Bool("verbose", false, "Log refresh progress to stderr")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.Discard()
	if *verbose {
		log = logger.New(os.Stderr)
	}
	if err := run(ctx, os.Stdout, log, *league, *view); err != nil {
		fmt.Fprintln(os.Stderr, "draftsnapshot:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, out io.Writer, log logger.Logger, league, view string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn(ctx, "could not read .env", logger.Error(err))
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if league != "" {
		cfg.League = league
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	// A one-shot run never polls.
	cfg.RefreshIntervalSec = 0

	svc := service.FromConfig(cfg, log)
	defer svc.Stop()

	snap, err := svc.Refresh(ctx)
	if err != nil {
		return err
	}
	v, err := selectView(snap, view)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func selectView(snap *repository.Snapshot, view string) (any, error) {
	switch view {
	case viewReport:
		if snap.ReportErr != nil {
			return nil, snap.ReportErr
		}
		return snap.Report, nil
	case viewBoard:
		return board.Build(snap.State), nil
	case viewAvailable:
		return snap.Available, nil
	case viewSummary:
		return struct {
			Update service.Update `json:"update"`
			Info   board.Info     `json:"info"`
		}{service.UpdateFrom(snap), board.Summarize(snap.State)}, nil
	default:
		return nil, fmt.Errorf("unknown view %q", view)
	}
}
