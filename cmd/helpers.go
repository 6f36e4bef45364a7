package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/mj1618/focus-border/internal/bridge"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/overlay"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newProvider returns the platform provider, requiring a focus source.
func newProvider() (*platform.Provider, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	if provider.FocusSource == nil {
		return nil, fmt.Errorf("focus observation not available on this platform")
	}
	return provider, nil
}

// addBorderFlags registers the overlay appearance flags on cmd.
func addBorderFlags(cmd *cobra.Command) {
	cmd.Flags().String("color", "", "Default border color: r,g,b (0..1), #rrggbb or a name (default from FOCUSBORDER_DEFAULT_COLOR)")
	cmd.Flags().StringArray("map", nil, "Per-app color as bundle-id=color (repeatable)")
	cmd.Flags().Float64("width", 0, "Border width in points (default from FOCUSBORDER_BORDER_WIDTH)")
	cmd.Flags().Float64("opacity", 0, "Border opacity 0..1 (default from FOCUSBORDER_OPACITY)")
}

// colorMapFromFlags builds the color table from configuration and flags.
func colorMapFromFlags(cmd *cobra.Command) (*model.ColorMap, error) {
	colors, err := cfg.ColorMap()
	if err != nil {
		return nil, err
	}
	if raw, _ := cmd.Flags().GetString("color"); raw != "" {
		c, err := model.ParseColor(raw)
		if err != nil {
			return nil, fmt.Errorf("--color: %w", err)
		}
		colors.Default = c
	}
	mappings, _ := cmd.Flags().GetStringArray("map")
	for _, m := range mappings {
		if err := colors.Set(m); err != nil {
			return nil, fmt.Errorf("--map: %w", err)
		}
	}
	logger.Debug("color map", zap.Stringer("default", colors.Default), zap.Strings("apps", colors.IDs()))
	return colors, nil
}

// borderParamsFromFlags returns width and opacity, preferring explicit flags.
func borderParamsFromFlags(cmd *cobra.Command) (width, opacity float64) {
	width, opacity = cfg.BorderConfig.Width, cfg.BorderConfig.Opacity
	if cmd.Flags().Changed("width") {
		width, _ = cmd.Flags().GetFloat64("width")
	}
	if cmd.Flags().Changed("opacity") {
		opacity, _ = cmd.Flags().GetFloat64("opacity")
	}
	return width, opacity
}

// stopOptions lists the conditions that end a running loop.
type stopOptions struct {
	duration time.Duration // 0 = no limit
	stdin    io.Reader     // a line on stdin stops; nil = ignore stdin
	until    <-chan struct{}
	signals  bool
}

// stopRequests returns a channel that receives the reason for the first stop
// condition that fires.
func stopRequests(o stopOptions) <-chan string {
	stop := make(chan string, 1)
	send := func(reason string) {
		select {
		case stop <- reason:
		default:
		}
	}

	if o.signals {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go forwardFirstSignal(sigs, send)
	}
	if o.duration > 0 {
		time.AfterFunc(o.duration, func() { send("duration elapsed") })
	}
	if o.stdin != nil {
		go func() {
			_, err := bufio.NewReader(o.stdin).ReadString('\n')
			if errors.Is(err, io.EOF) {
				// Closed stdin is not a request to stop.
				return
			}
			send("enter pressed")
		}()
	}
	if o.until != nil {
		go func() {
			<-o.until
			send("client disconnected")
		}()
	}
	return stop
}

// releaseSignals restores default signal handling.
var releaseSignals = signal.Stop

// forwardFirstSignal reports the first signal and then releases sigs, so a
// second interrupt during a stalled teardown terminates the process.
func forwardFirstSignal(sigs chan os.Signal, send func(string)) {
	sig := <-sigs
	releaseSignals(sigs)
	send(sig.String())
}

// runObservation subscribes cb to the provider's focus source and pumps its
// run loop until a stop request arrives.
//
// Main-thread-bound sources run in the foreground on the calling goroutine,
// which must be the main goroutine. Other sources run on a background worker
// while the calling goroutine waits for the stop request.
func runObservation(src platform.FocusSource, cb bridge.Callback, coalesce bool, stop <-chan string) error {
	obs, err := bridge.StartObserving(src, cb, bridge.Options{Coalesce: coalesce, Logger: logger})
	if err != nil {
		return fmt.Errorf("start observing: %w", err)
	}
	driver := bridge.NewDriver(src, logger)

	if mt, ok := src.(platform.MainThreadBound); ok && mt.RequiresMainThread() {
		done := make(chan error, 1)
		go func() {
			reason := <-stop
			logger.Debug("stopping", zap.String("reason", reason))
			_, err := teardown(obs, driver)
			done <- err
		}()
		if err := driver.RunForeground(); err != nil {
			_ = obs.Stop()
			return err
		}
		return <-done
	}

	w, err := driver.RunBackground()
	if err != nil {
		_ = obs.Stop()
		return err
	}
	reason := <-stop
	logger.Debug("stopping", zap.String("reason", reason))
	interrupted, err := teardown(obs, driver)
	if !interrupted {
		w.Detach()
		return err
	}
	if err != nil {
		return err
	}
	return w.Wait()
}

// teardown stops the observer before interrupting the loop: on macOS,
// unsubscribing and in-flight overlay updates need the main run loop. It
// reports whether the loop was asked to return.
func teardown(obs *bridge.Observer, driver *bridge.Driver) (bool, error) {
	var result *multierror.Error
	if err := obs.Stop(); err != nil && !errors.Is(err, bridge.ErrAlreadyStopped) {
		result = multierror.Append(result, err)
	}

	interrupted := true
	switch err := driver.Interrupt(); {
	case errors.Is(err, bridge.ErrNoInterrupt):
		logger.Warn("event loop cannot be interrupted and keeps running until exit")
		interrupted = false
	case err != nil:
		result = multierror.Append(result, fmt.Errorf("interrupt: %w", err))
	}
	return interrupted, result.ErrorOrNil()
}

// pumpUntil runs src's loop in the foreground until stop fires, without a
// subscription. Used to keep the main run loop alive while an overlay is shown.
func pumpUntil(src platform.FocusSource, stop <-chan string) error {
	driver := bridge.NewDriver(src, logger)
	go func() {
		reason := <-stop
		logger.Debug("stopping", zap.String("reason", reason))
		if err := driver.Interrupt(); err != nil {
			logger.Warn("interrupt", zap.Error(err))
		}
	}()
	return driver.RunForeground()
}

// newOverlayController claims the overlay for the provider's renderer.
func newOverlayController(provider *platform.Provider) (*overlay.Controller, error) {
	if provider.OverlayRenderer == nil {
		return nil, fmt.Errorf("border overlay not available on this platform: %w", platform.ErrUnsupported)
	}
	return overlay.NewController(provider.OverlayRenderer, logger)
}
