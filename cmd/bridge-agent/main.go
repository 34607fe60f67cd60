// Command bridge-agent is a Go stand-in for the CAD host's bridge server
// (spec §4.1-§4.4): it hosts a scriptable runtime behind a single-threaded
// dispatcher and exposes it over the XML-RPC and JSON-line transports. A
// real deployment runs the equivalent server inside the CAD application's
// own interpreter; this binary lets the rest of the bridge be exercised
// end to end without one.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/spkane/freecad-mcp-bridge/internal/cadserver"
	"github.com/spkane/freecad-mcp-bridge/internal/cadserver/jsonlinesrv"
	"github.com/spkane/freecad-mcp-bridge/internal/cadserver/xmlrpcsrv"
	"github.com/spkane/freecad-mcp-bridge/internal/config"
	"github.com/spkane/freecad-mcp-bridge/internal/runtime"
)

var (
	configPath string
	headless   bool
)

const fiveSecondTimeout = 5 * time.Second

var rootCmd = &cobra.Command{
	Use:           "bridge-agent",
	Short:         "Reference CAD-side bridge server",
	Long:          "bridge-agent hosts a scriptable runtime behind the XML-RPC and JSON-line transports the bridge-server MCP adapter talks to.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file (overridden by environment variables)")
	rootCmd.Flags().BoolVar(&headless, "headless", false, "start with UIAvailable() reporting false, as in a headless CAD launch")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
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

	rt := runtime.NewMockRuntime(!headless)
	cad := cadserver.New(log, rt, cfg.MaxCaptureBytes)
	defer cad.Close()

	xmlSrv := xmlrpcsrv.New(log, cad)
	jsonSrv := jsonlinesrv.New(log, cad)

	var startGroup errgroup.Group

	startGroup.Go(func() error {
		return xmlSrv.Start(cfg.Host, cfg.XMLRPCPort, !cfg.AllowNonLoopback)
	})
	startGroup.Go(func() error {
		return jsonSrv.Start(cfg.Host, cfg.SocketPort, !cfg.AllowNonLoopback)
	})

	if err := startGroup.Wait(); err != nil {
		return err
	}

	pterm.DefaultBox.
		WithTitle(pterm.NewStyle(pterm.FgGreen, pterm.Bold).Sprint("bridge-agent")).
		Println(fmt.Sprintf("xmlrpc=%s:%d socket=%s:%d gui_up=%v", cfg.Host, cfg.XMLRPCPort, cfg.Host, cfg.SocketPort, !headless))

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	<-ctx.Done()

	pterm.Info.Println("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), fiveSecondTimeout)
	defer shutdownCancel()

	var stopGroup errgroup.Group

	stopGroup.Go(func() error {
		return xmlSrv.Stop(shutdownCtx)
	})
	stopGroup.Go(func() error {
		return jsonSrv.Stop()
	})

	return stopGroup.Wait()
}
