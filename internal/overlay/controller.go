// Package overlay owns the single process-wide border overlay.
//
// The native renderer keeps at most one border window. Controller serializes
// create and remove requests against it and tracks which Overlay handle, if
// any, currently owns that border.
package overlay

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
	"go.uber.org/zap"
)

var (
	// ErrOverlayCreate matches every *CreateError.
	ErrOverlayCreate = errors.New("overlay create failed")

	// ErrControllerExists is returned when a second Controller is requested.
	ErrControllerExists = errors.New("an overlay controller already exists in this process")

	// ErrClosed is returned by operations on a closed Controller.
	ErrClosed = errors.New("overlay controller closed")

	// ErrInvalidParams is returned for out-of-range overlay parameters.
	ErrInvalidParams = errors.New("invalid overlay parameters")

	// ErrRemove is returned when the renderer reports a failed removal.
	ErrRemove = errors.New("overlay remove failed")
)

// CreateError carries the non-zero status reported by the renderer.
type CreateError struct {
	Status int
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("overlay create failed: native status %d", e.Status)
}

func (e *CreateError) Is(target error) bool {
	return target == ErrOverlayCreate
}

// Params describes a border.
type Params struct {
	Color   model.Color `yaml:"color"   json:"color"`
	Width   float64     `yaml:"width"   json:"width"`
	Opacity float64     `yaml:"opacity" json:"opacity"`
}

// Validate checks unit-interval color and opacity and a non-negative width.
func (p Params) Validate() error {
	if !p.Color.Valid() {
		return fmt.Errorf("%w: color %s outside 0..1", ErrInvalidParams, p.Color)
	}
	if p.Opacity < 0 || p.Opacity > 1 || math.IsNaN(p.Opacity) {
		return fmt.Errorf("%w: opacity %v outside 0..1", ErrInvalidParams, p.Opacity)
	}
	if p.Width < 0 || math.IsNaN(p.Width) || math.IsInf(p.Width, 0) {
		return fmt.Errorf("%w: width %v must be finite and non-negative", ErrInvalidParams, p.Width)
	}
	return nil
}

// Overlay is a handle to a border created by a Controller.
type Overlay struct {
	c        *Controller
	params   Params
	released bool // guarded by c.mu
}

// Params returns the parameters the overlay was created with.
func (o *Overlay) Params() Params {
	return o.params
}

// Released reports whether the border is gone, either removed or replaced.
func (o *Overlay) Released() bool {
	o.c.mu.Lock()
	defer o.c.mu.Unlock()
	return o.released
}

// Release removes the border if this overlay is still the current one.
func (o *Overlay) Release() error {
	o.c.mu.Lock()
	defer o.c.mu.Unlock()
	if o.released || o.c.current != o {
		return nil
	}
	return o.c.removeLocked()
}

// claimed guards the one-controller-per-process rule.
var claimed struct {
	sync.Mutex
	held bool
}

// Controller serializes all overlay operations for the process.
type Controller struct {
	r   platform.OverlayRenderer
	log *zap.Logger

	mu      sync.Mutex
	current *Overlay
	closed  bool
}

// NewController claims the process overlay slot for r.
func NewController(r platform.OverlayRenderer, logger *zap.Logger) (*Controller, error) {
	if r == nil {
		return nil, fmt.Errorf("overlay renderer: %w", platform.ErrUnsupported)
	}
	claimed.Lock()
	defer claimed.Unlock()
	if claimed.held {
		return nil, ErrControllerExists
	}
	claimed.held = true
	return &Controller{r: r, log: logging.OrNop(logger)}, nil
}

// Create shows a border with p, replacing the current one in a single
// renderer call. On failure the current overlay is left in place.
func (c *Controller) Create(p Params) (*Overlay, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil, ErrClosed
	}

	status := c.r.CreateBorder(p.Color.R, p.Color.G, p.Color.B, p.Width, p.Opacity)
	if status != 0 {
		c.log.Warn("border create failed", zap.Int("status", status))
		return nil, &CreateError{Status: status}
	}

	if c.current != nil {
		c.current.released = true
	}
	o := &Overlay{c: c, params: p}
	c.current = o
	c.log.Debug("border created",
		zap.Stringer("color", p.Color),
		zap.Float64("width", p.Width),
		zap.Float64("opacity", p.Opacity))
	return o, nil
}

// Remove destroys the current border. Without one it does nothing.
func (c *Controller) Remove() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.removeLocked()
}

// Current returns the live overlay, or nil.
func (c *Controller) Current() *Overlay {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Close removes any border and gives up the process slot.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	err := c.removeLocked()
	c.closed = true

	claimed.Lock()
	claimed.held = false
	claimed.Unlock()
	return err
}

func (c *Controller) removeLocked() error {
	if c.current == nil {
		return nil
	}
	if status := c.r.RemoveBorder(); status != 0 {
		return fmt.Errorf("%w: native status %d", ErrRemove, status)
	}
	c.current.released = true
	c.current = nil
	c.log.Debug("border removed")
	return nil
}
