package bridge

import (
	"sync"
	"sync/atomic"
)

// State is the process-wide bridge lifecycle.
type State int32

const (
	StateUninitialized State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// global holds the singleton native resources. state is written only with mu
// held and read lock-free.
var global struct {
	mu      sync.Mutex
	active  *Observer
	drivers map[*Driver]struct{}
	state   atomic.Int32
}

func setState(s State) {
	global.state.Store(int32(s))
}

// CurrentState returns the bridge lifecycle state without blocking.
func CurrentState() State {
	return State(global.state.Load())
}

// IsObserving reports whether a subscription is currently active.
func IsObserving() bool {
	return CurrentState() == StateRunning
}

func registerDriver(d *Driver) {
	global.mu.Lock()
	defer global.mu.Unlock()
	if global.drivers == nil {
		global.drivers = make(map[*Driver]struct{})
	}
	global.drivers[d] = struct{}{}
}

func unregisterDriver(d *Driver) {
	global.mu.Lock()
	defer global.mu.Unlock()
	delete(global.drivers, d)
}
