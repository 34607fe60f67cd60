// Command bridge-server is the client-side MCP adapter (spec §4.8): it
// loads configuration, connects to the CAD-side bridge over the configured
// transport, and serves the MCP tool/resource surface over stdio or HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/spkane/freecad-mcp-bridge/internal/bridgeclient"
	"github.com/spkane/freecad-mcp-bridge/internal/config"
	"github.com/spkane/freecad-mcp-bridge/internal/mcpadapter"
	"github.com/spkane/freecad-mcp-bridge/internal/wire"
)

const fiveSeconds = 5 * time.Second

var configPath string

// Exit codes per spec §6: 0 clean shutdown, 1 config error, 2 connect
// failure, 3 unexpected internal error.
const (
	exitOK           = 0
	exitConfigError  = 1
	exitConnectError = 2
	exitInternal     = 3
)

var rootCmd = &cobra.Command{
	Use:           "bridge-server",
	Short:         "MCP adapter for the CAD bridge",
	Long:          "bridge-server exposes CAD document, modeling, and view operations as MCP tools by forwarding them through a bridge client to a running CAD host.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (overridden by environment variables)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitFor(err))
	}
}

func exitFor(err error) int {
	var cfgErr *wire.ConfigError
	if errors.As(err, &cfgErr) {
		return exitConfigError
	}

	var connErr *wire.ConnectionError
	if errors.As(err, &connErr) {
		return exitConnectError
	}

	return exitInternal
}

func run(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if envPath := os.Getenv("CONFIG_FILE"); envPath != "" && configPath == "" {
		configPath = envPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprint("freecad-mcp-bridge")).
		Println(fmt.Sprintf("mode=%s host=%s xmlrpc=%d socket=%d", cfg.Mode, cfg.Host, cfg.XMLRPCPort, cfg.SocketPort))

	client, err := bridgeclient.New(log, cfg, nil)
	if err != nil {
		return err
	}

	adapter := mcpadapter.New(log, cfg, client)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := adapter.Connect(ctx); err != nil {
		return &wire.ConnectionError{Err: err}
	}

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), fiveSeconds)
		defer shutdownCancel()

		if err := adapter.Shutdown(shutdownCtx); err != nil {
			log.Warn("error during shutdown", "error", err)
		}
	}()

	if cfg.HTTPAddr != "" {
		return serveHTTP(ctx, log, cfg.HTTPAddr, adapter)
	}

	pterm.Success.Println("serving MCP tools over stdio")

	return adapter.ServeStdio(ctx)
}

func serveHTTP(ctx context.Context, log *slog.Logger, addr string, adapter *mcpadapter.Adapter) error {
	srv := &http.Server{Addr: addr, Handler: adapter.HTTPHandler()}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), fiveSeconds)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	pterm.Success.Println("serving MCP tools over HTTP at " + addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
