package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neonsums/internal/advisor"
	"github.com/vovakirdan/neonsums/internal/httpapi"
	"github.com/vovakirdan/neonsums/internal/sessions"
)

var (
	flagHTTPAddr    string
	flagSessionIdle int
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the JSON HTTP API",
	Long: `Start an HTTP server exposing game sessions as JSON resources.

Endpoints:
  GET    /health
  POST   /sessions                  {"mode":"fun","size":4,"seed":1}
                                    {"board":[[2,2,0,0],...],"score":40}
  GET    /sessions
  GET    /sessions/{id}
  DELETE /sessions/{id}
  POST   /sessions/{id}/move        {"direction":"LEFT"}
  POST   /sessions/{id}/undo
  POST   /sessions/{id}/remove      {"tileId":"tile-3"}
  POST   /sessions/{id}/swap        {"a":"tile-1","b":"tile-2"}
  POST   /sessions/{id}/continue
  GET    /sessions/{id}/hint
  GET    /sessions/{id}/commentary
  GET    /scores
  GET    /scores/{variant}?limit=10

Sessions idle longer than --idle-timeout are dropped.

Examples:
  neonsums api
  neonsums api --http :9090
  neonsums api --idle-timeout 60`,
	RunE: runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP listen address (default from config, :8080)")
	apiCmd.Flags().IntVar(&flagSessionIdle, "idle-timeout", 0, "Minutes before an idle session is dropped (default from config)")
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func runAPI(_ *cobra.Command, _ []string) error {
	addr := appCfg.Server.HTTPAddr
	if flagHTTPAddr != "" {
		addr = flagHTTPAddr
	}
	idle := appCfg.Server.IdleTimeout
	if flagSessionIdle > 0 {
		idle = minutes(flagSessionIdle)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	srv := httpapi.New(httpapi.Options{
		Sessions:    sessions.NewManager(),
		Store:       store,
		Advisor:     advisor.FromConfig(appCfg.Advisor, logger),
		Game:        appCfg.Game,
		IdleTimeout: idle,
		Logger:      logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting HTTP API", "addr", addr)
	return srv.ListenAndServe(ctx, addr)
}
