// Package bridge connects a native focus event source to Go code.
//
// A native source calls back on a thread it owns. The bridge copies each
// notification into a model.FocusEvent on that thread, queues it, and returns
// immediately; a single dispatch goroutine delivers queued events to the
// application callback in arrival order. At most one Observer exists per
// process, matching the singleton native subscription.
package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/mj1618/focus-border/internal/goroutineid"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
	"go.uber.org/zap"
)

// Callback receives focus events on the bridge's dispatch goroutine.
type Callback func(model.FocusEvent)

// Options configures an Observer.
type Options struct {
	// Coalesce drops an event that targets the same window as the one queued
	// just before it. Off by default: every native event is delivered.
	Coalesce bool
	Logger   *zap.Logger
}

// noCopy makes `go vet` flag copies of Observer values.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Observer is the handle for the active focus subscription. Use it only
// through the pointer returned by StartObserving; Stop consumes it.
type Observer struct {
	_ noCopy

	id  string
	src platform.FocusSource
	cb  Callback
	log *zap.Logger

	accepting   atomic.Bool
	delivered   atomic.Uint64
	queue       *eventQueue
	dispatchGID atomic.Uint64
	done        chan struct{}

	mu       sync.Mutex
	released bool
}

// StartObserving registers cb with src and returns the subscription handle.
// Events raised before registration are never delivered.
//
// It fails with ErrSubscriptionUnavailable when a subscription already exists
// in this process (the existing one is left untouched) or when src refuses
// the registration.
func StartObserving(src platform.FocusSource, cb Callback, opts Options) (*Observer, error) {
	if src == nil || cb == nil {
		return nil, fmt.Errorf("%w: nil source or callback", ErrInvalidHandle)
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if global.active != nil {
		return nil, fmt.Errorf("%w: observer %s is already running", ErrSubscriptionUnavailable, global.active.id)
	}

	o := &Observer{
		id:    uuid.NewString(),
		src:   src,
		cb:    cb,
		log:   logging.OrNop(opts.Logger),
		queue: newEventQueue(opts.Coalesce),
		done:  make(chan struct{}),
	}
	o.log = o.log.With(zap.String("observer", o.id))

	go o.dispatchLoop()
	o.accepting.Store(true)

	if err := src.Subscribe(o.receive); err != nil {
		o.accepting.Store(false)
		o.queue.close()
		<-o.done
		o.log.Warn("native subscription failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrSubscriptionUnavailable, err)
	}

	global.active = o
	setState(StateRunning)
	o.log.Info("observer started", zap.Bool("coalesce", opts.Coalesce))
	return o, nil
}

// ID returns the handle's unique identifier.
func (o *Observer) ID() string {
	return o.id
}

// Delivered returns how many events the callback has received.
func (o *Observer) Delivered() uint64 {
	return o.delivered.Load()
}

// Coalesced returns how many events the coalescing policy dropped.
func (o *Observer) Coalesced() uint64 {
	return o.queue.coalesced()
}

// Stopped reports whether Stop has been called.
func (o *Observer) Stopped() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.released
}

// Stop ends the subscription. Native callbacks are refused from this point,
// the native registration is removed, and events already accepted are
// delivered before Stop returns. No callback runs after Stop returns, except
// when Stop is called from inside the callback: the remaining events are then
// delivered by the dispatch goroutine after the callback returns.
//
// A second Stop returns ErrAlreadyStopped.
func (o *Observer) Stop() error {
	if o == nil {
		return ErrInvalidHandle
	}

	o.mu.Lock()
	if o.released {
		o.mu.Unlock()
		return ErrAlreadyStopped
	}
	o.released = true
	o.mu.Unlock()

	o.accepting.Store(false)

	var result *multierror.Error
	if err := o.src.Unsubscribe(); err != nil {
		result = multierror.Append(result, fmt.Errorf("unsubscribe: %w", err))
	}

	o.queue.close()
	if goroutineid.Get() != o.dispatchGID.Load() {
		<-o.done
	}

	global.mu.Lock()
	if global.active == o {
		global.active = nil
		setState(StateStopped)
	}
	global.mu.Unlock()

	o.log.Info("observer stopped", zap.Uint64("delivered", o.delivered.Load()))
	return result.ErrorOrNil()
}

// receive is the platform.Sink handed to the native source. It runs on the
// native thread and must not block.
func (o *Observer) receive(n platform.RawNotification) {
	if !o.accepting.Load() {
		return
	}
	ev, err := Marshal(n)
	if err != nil {
		o.log.Warn("delivering event with placeholder text", zap.Error(err))
	}
	o.queue.push(ev)
}

func (o *Observer) dispatchLoop() {
	o.dispatchGID.Store(goroutineid.Get())
	defer close(o.done)

	for {
		batch, closed := o.queue.drain()
		for _, ev := range batch {
			o.deliver(ev)
		}
		if len(batch) > 0 {
			continue
		}
		if closed {
			return
		}
		<-o.queue.ready
	}
}

func (o *Observer) deliver(ev model.FocusEvent) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("focus callback panicked", zap.Any("panic", r), zap.Uint64("seq", ev.Seq))
		}
	}()
	o.delivered.Add(1)
	o.cb(ev)
}
