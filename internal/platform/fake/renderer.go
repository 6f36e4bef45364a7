package fake

import (
	"fmt"
	"sync"
)

// Call records one request that reached the renderer boundary.
type Call struct {
	Op      string // "create" or "remove"
	R, G, B float64
	Width   float64
	Opacity float64
}

func (c Call) String() string {
	if c.Op == "remove" {
		return "remove"
	}
	return fmt.Sprintf("create(%.1f,%.1f,%.1f,%.1f,%.1f)", c.R, c.G, c.B, c.Width, c.Opacity)
}

// Renderer is an OverlayRenderer that models a single native border: a
// successful create replaces the live border, remove destroys it.
type Renderer struct {
	mu        sync.Mutex
	calls     []Call
	live      int
	maxLive   int
	created   int
	destroyed int

	// CreateStatus, when non-zero, is returned by the next CreateBorder calls.
	CreateStatus int
	// RemoveStatus, when non-zero, is returned by RemoveBorder.
	RemoveStatus int
}

// NewRenderer returns a renderer with no live border.
func NewRenderer() *Renderer {
	return &Renderer{}
}

func (r *Renderer) CreateBorder(red, green, blue, width, opacity float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: "create", R: red, G: green, B: blue, Width: width, Opacity: opacity})
	if r.CreateStatus != 0 {
		return r.CreateStatus
	}
	if r.live > 0 {
		// Native replacement tears the old border down in the same turn.
		r.live--
		r.destroyed++
	}
	r.live++
	r.created++
	if r.live > r.maxLive {
		r.maxLive = r.live
	}
	return 0
}

func (r *Renderer) RemoveBorder() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Op: "remove"})
	if r.RemoveStatus != 0 {
		return r.RemoveStatus
	}
	if r.live > 0 {
		r.live--
		r.destroyed++
	}
	return 0
}

// SetCreateStatus changes the status returned by CreateBorder.
func (r *Renderer) SetCreateStatus(status int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CreateStatus = status
}

// Calls returns a copy of every call in order.
func (r *Renderer) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Live returns the number of live native borders.
func (r *Renderer) Live() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.live
}

// MaxLive returns the highest number of simultaneously live borders seen.
func (r *Renderer) MaxLive() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxLive
}

// Totals returns how many borders were created and destroyed.
func (r *Renderer) Totals() (created, destroyed int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created, r.destroyed
}

// WindowManager reports a fixed frontmost application.
type WindowManager struct {
	App     string
	PID     int
	Trusted bool
	Err     error
}

func (w *WindowManager) GetFrontmostApp() (string, int, error) {
	if w.Err != nil {
		return "", 0, w.Err
	}
	return w.App, w.PID, nil
}

func (w *WindowManager) IsTrusted() bool {
	return w.Trusted
}
