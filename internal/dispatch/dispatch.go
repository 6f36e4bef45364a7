// Package dispatch turns delivered focus events into console output and
// border overlay updates.
package dispatch

import (
	"sync"

	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/overlay"
	"go.uber.org/zap"
)

// Options configures a Dispatcher.
type Options struct {
	// Colors maps bundle identifiers to border colors. Required with Overlay.
	Colors *model.ColorMap
	// Overlay, when set, receives a Create for every event passed through.
	Overlay *overlay.Controller
	Width   float64
	Opacity float64
	// AppsOnly drops events that stay within the previously reported application.
	AppsOnly bool
	// Quiet suppresses console output.
	Quiet  bool
	State  *State
	Logger *zap.Logger
}

// Dispatcher consumes events on the bridge's dispatch goroutine.
type Dispatcher struct {
	opts  Options
	state *State
	log   *zap.Logger

	mu      sync.Mutex
	last    model.FocusEvent
	hasLast bool
}

// New returns a Dispatcher. A nil opts.State gets a fresh State.
func New(opts Options) *Dispatcher {
	st := opts.State
	if st == nil {
		st = NewState()
	}
	return &Dispatcher{opts: opts, state: st, log: logging.OrNop(opts.Logger)}
}

// State returns the focus state the dispatcher records into.
func (d *Dispatcher) State() *State {
	return d.state
}

// Handle is a bridge.Callback.
func (d *Dispatcher) Handle(ev model.FocusEvent) {
	if d.skip(ev) {
		d.state.recordSkipped()
		return
	}
	d.state.recordEvent(ev)

	if !d.opts.Quiet {
		if err := output.Print(ev); err != nil {
			d.log.Warn("printing focus event", zap.Error(err))
		}
	}
	if d.opts.Overlay == nil {
		return
	}

	res := d.applyOverlay(ev)
	d.state.recordOverlay(res)
	if !d.opts.Quiet {
		if err := output.Print(res); err != nil {
			d.log.Warn("printing overlay result", zap.Error(err))
		}
	}
}

// skip implements the apps-only filter: title changes inside the application
// reported last are dropped.
func (d *Dispatcher) skip(ev model.FocusEvent) bool {
	if !d.opts.AppsOnly {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.hasLast && d.last.SameApp(ev) {
		return true
	}
	d.last, d.hasLast = ev, true
	return false
}

func (d *Dispatcher) applyOverlay(ev model.FocusEvent) output.OverlayResult {
	color := d.opts.Colors.Lookup(ev.BundleID)
	p := overlay.Params{Color: color, Width: d.opts.Width, Opacity: d.opts.Opacity}
	res := output.OverlayResult{
		Action:  "create",
		Seq:     ev.Seq,
		App:     ev.AppName,
		Color:   &color,
		Width:   p.Width,
		Opacity: p.Opacity,
	}

	if _, err := d.opts.Overlay.Create(p); err != nil {
		d.log.Warn("overlay update failed",
			zap.Uint64("seq", ev.Seq),
			zap.String("app", ev.BundleID),
			zap.Error(err))
		res.Error = err.Error()
		return res
	}
	res.OK = true
	return res
}
