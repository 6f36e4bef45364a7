package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/focus-border/internal/dispatch"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/overlay"
	"github.com/mj1618/focus-border/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing focus state and the border overlay",
	Long: `Start a Model Context Protocol (MCP) server on stdio. The server observes focus
changes in the background and exposes the tools focus_status, overlay_create
and overlay_remove. Logs go to stderr; stdout carries the MCP protocol only.

Examples:
  focus-border serve
  focus-border serve --follow --map com.apple.Terminal=green
  focus-border serve --cache-ttl 0`,
	Annotations: needsPermissions,
	RunE:        runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addBorderFlags(serveCmd)
	serveCmd.Flags().Bool("follow", false, "Redraw the border on every focus change")
	serveCmd.Flags().Int("cache-ttl", 500, "Frontmost app cache TTL in milliseconds (0 to disable)")
}

func runServe(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	colors, err := colorMapFromFlags(cmd)
	if err != nil {
		return err
	}
	width, opacity := borderParamsFromFlags(cmd)
	follow, _ := cmd.Flags().GetBool("follow")
	cacheTTLMs, _ := cmd.Flags().GetInt("cache-ttl")

	var controller *overlay.Controller
	if provider.OverlayRenderer != nil {
		controller, err = newOverlayController(provider)
		if err != nil {
			return err
		}
		defer func() {
			if err := controller.Close(); err != nil {
				logger.Warn("removing border", zap.Error(err))
			}
		}()
	} else if follow {
		return fmt.Errorf("--follow: border overlay not available on this platform")
	}

	state := dispatch.NewState()
	opts := dispatch.Options{Quiet: true, State: state, Logger: logger}
	if follow {
		opts.Colors = colors
		opts.Overlay = controller
		opts.Width = width
		opts.Opacity = opacity
	}
	d := dispatch.New(opts)
	frontmost := server.NewFrontmostCache(provider.WindowManager, time.Duration(cacheTTLMs)*time.Millisecond)

	srv := server.New(server.Config{
		State:     state,
		Overlay:   controller,
		Colors:    colors,
		Width:     width,
		Opacity:   opacity,
		Frontmost: frontmost,
		Logger:    logger,
	})

	// The MCP server runs on a goroutine; the focus loop keeps this one,
	// which is the main thread on macOS.
	disconnected := make(chan struct{})
	var serveErr error
	go func() {
		defer close(disconnected)
		serveErr = srv.ServeStdio()
	}()

	stop := stopRequests(stopOptions{until: disconnected, signals: true})
	// A focus change makes any cached frontmost app stale.
	handle := func(ev model.FocusEvent) {
		frontmost.Invalidate()
		d.Handle(ev)
	}
	if err := runObservation(provider.FocusSource, handle, cfg.BridgeConfig.Coalesce, stop); err != nil {
		return err
	}

	select {
	case <-disconnected:
		if serveErr != nil {
			return fmt.Errorf("mcp server: %w", serveErr)
		}
	default:
	}
	return nil
}
