package bridge

import (
	"errors"
	"runtime"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/platform"
	"go.uber.org/zap"
)

// Driver pumps a FocusSource's native run loop so that its callbacks fire.
//
// Two patterns are supported. RunForeground occupies the calling goroutine,
// locked to its OS thread, for the lifetime of observation; main-thread-bound
// sources (macOS) must use it from the main goroutine. RunBackground starts the
// loop on a dedicated OS thread and returns a Worker that must be stopped or
// detached explicitly.
//
// A source without platform.Interrupter cannot be stopped: its loop ends only
// when the process exits, and Interrupt returns ErrNoInterrupt.
type Driver struct {
	src platform.FocusSource
	log *zap.Logger

	mu      sync.Mutex
	running bool
}

// NewDriver returns a driver for src.
func NewDriver(src platform.FocusSource, logger *zap.Logger) *Driver {
	return &Driver{src: src, log: logging.OrNop(logger)}
}

// RunForeground runs the native loop on the calling goroutine's OS thread and
// blocks until the loop returns.
func (d *Driver) RunForeground() error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := d.begin(); err != nil {
		return err
	}
	defer d.end()

	d.log.Debug("run loop started", zap.String("pattern", "foreground"))
	err := d.src.Run()
	d.log.Debug("run loop returned", zap.Error(err))
	return err
}

// RunBackground starts the native loop on a new goroutine locked to its own
// OS thread. The thread is discarded when the loop returns.
func (d *Driver) RunBackground() (*Worker, error) {
	if mt, ok := d.src.(platform.MainThreadBound); ok && mt.RequiresMainThread() {
		return nil, ErrMainThreadRequired
	}
	if err := d.begin(); err != nil {
		return nil, err
	}

	w := &Worker{d: d, done: make(chan struct{})}
	go func() {
		// No UnlockOSThread: the thread exits with the goroutine.
		runtime.LockOSThread()
		defer close(w.done)
		defer d.end()

		d.log.Debug("run loop started", zap.String("pattern", "background"))
		w.err = d.src.Run()
		d.log.Debug("run loop returned", zap.Error(w.err))
	}()
	return w, nil
}

// Interrupt asks the native loop to return. It is safe from any goroutine
// when the source implements platform.Interrupter.
func (d *Driver) Interrupt() error {
	in, ok := d.src.(platform.Interrupter)
	if !ok {
		return ErrNoInterrupt
	}
	return in.Interrupt()
}

// Running reports whether the loop is currently pumping.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

func (d *Driver) begin() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.running {
		return ErrLoopRunning
	}
	d.running = true
	registerDriver(d)
	return nil
}

func (d *Driver) end() {
	d.mu.Lock()
	d.running = false
	d.mu.Unlock()
	unregisterDriver(d)
}

// Worker is a background run loop started by Driver.RunBackground.
type Worker struct {
	d    *Driver
	done chan struct{}
	err  error

	detachOnce sync.Once
}

// Stop interrupts the loop and waits for its thread to finish. With a source
// that cannot be interrupted it returns ErrNoInterrupt without waiting; call
// Detach in that case.
func (w *Worker) Stop() error {
	if err := w.d.Interrupt(); err != nil {
		return err
	}
	return w.Wait()
}

// Wait blocks until the loop returns and reports its error.
func (w *Worker) Wait() error {
	<-w.done
	return w.err
}

// Done is closed when the loop has returned.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}

// Detach gives up on joining the worker. The loop keeps running until the
// process exits.
func (w *Worker) Detach() {
	w.detachOnce.Do(func() {
		w.d.log.Warn("run loop worker detached; it ends at process exit")
	})
}

// Shutdown releases process-wide native resources: it stops the active
// Observer if one is still running, then interrupts every running loop. It is
// meant for process teardown and signal handlers and may be called repeatedly.
func Shutdown() error {
	global.mu.Lock()
	o := global.active
	drivers := make([]*Driver, 0, len(global.drivers))
	for d := range global.drivers {
		drivers = append(drivers, d)
	}
	global.mu.Unlock()

	var result *multierror.Error
	if o != nil {
		if err := o.Stop(); err != nil && !errors.Is(err, ErrAlreadyStopped) {
			result = multierror.Append(result, err)
		}
	}
	for _, d := range drivers {
		if err := d.Interrupt(); err != nil && !errors.Is(err, ErrNoInterrupt) {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
