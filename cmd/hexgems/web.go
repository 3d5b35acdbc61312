package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hexgems/internal/storage"
	"github.com/vovakirdan/hexgems/internal/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve scores and simulator runs as JSON",
	Long: `Start a read-only HTTP API over the scores database.

Endpoints:
  GET /healthz
  GET /api/games
  GET /api/games/{id}/scores?limit=10
  GET /api/games/{id}/stats
  GET /api/sim-runs?variant=&limit=20

Responses are compressed with zstd or gzip when the client accepts it.

Examples:
  hexgems web
  hexgems web --addr 127.0.0.1:9000 --log-file web.log`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	logger := newLogger("hexgems-web")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return web.Serve(ctx, flagWebAddr, web.NewHandler(store, logger), logger)
}
