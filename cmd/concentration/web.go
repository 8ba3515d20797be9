package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-concentration/internal/platform/web"
	"github.com/vovakirdan/tui-concentration/internal/storage"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP server with websocket play",
	Long: `Start an HTTP server for browser clients.

Endpoints:
  GET /health       - Liveness check
  GET /api/config   - Board settings
  GET /ws           - Websocket: one board per connection

Websocket messages from the client:
  {"type":"flip","row":0,"col":1}
  {"type":"pause"}
  {"type":"restart"}

The server answers with {"type":"state","state":{...}} after every change.

Examples:
  concentration web
  concentration web --http 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database, history disabled", "error", err)
		store = nil
	}

	cfg := web.DefaultConfig()
	cfg.Address = flagHTTPAddr
	cfg.Game = gameCfg
	cfg.Game.Timing.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Store = store
	cfg.Logger = logger.WithPrefix("concentration-web")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting concentration web server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	runErr := web.New(cfg).ListenAndServe(ctx)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", runErr)
		os.Exit(1)
	}
}
