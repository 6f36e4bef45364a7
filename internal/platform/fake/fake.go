// Package fake provides scripted platform backends for tests.
package fake

import (
	"errors"
	"sync"

	"github.com/mj1618/focus-border/internal/platform"
)

// ErrNotSubscribed is returned by Emit when no sink is registered.
var ErrNotSubscribed = errors.New("fake source: not subscribed")

// subscription holds the sink registration shared by every fake source.
type subscription struct {
	mu           sync.Mutex
	sink         platform.Sink
	SubscribeErr error
	subscribes   int
	unsubscribes int
	running      chan struct{}
}

func (s *subscription) Subscribe(sink platform.Sink) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SubscribeErr != nil {
		return s.SubscribeErr
	}
	s.sink = sink
	s.subscribes++
	return nil
}

func (s *subscription) Unsubscribe() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sink = nil
	s.unsubscribes++
	return nil
}

// Running is closed once Run has started.
func (s *subscription) Running() <-chan struct{} {
	return s.running
}

// Emit delivers n to the registered sink, like a native callback would.
func (s *subscription) Emit(n platform.RawNotification) error {
	s.mu.Lock()
	sink := s.sink
	s.mu.Unlock()
	if sink == nil {
		return ErrNotSubscribed
	}
	sink(n)
	return nil
}

// Sink returns the currently registered sink, or nil.
func (s *subscription) Sink() platform.Sink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink
}

// Counts returns how many Subscribe and Unsubscribe calls succeeded.
func (s *subscription) Counts() (subscribes, unsubscribes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribes, s.unsubscribes
}

// Source is an in-memory FocusSource with an Interrupter. Emit calls the sink
// synchronously on the caller's goroutine, standing in for the native event thread.
type Source struct {
	subscription
	stopOnce sync.Once
	stop     chan struct{}
}

// NewSource returns a Source whose Run blocks until Interrupt.
func NewSource() *Source {
	return &Source{
		subscription: subscription{running: make(chan struct{})},
		stop:         make(chan struct{}),
	}
}

// Run blocks until Interrupt is called.
func (s *Source) Run() error {
	close(s.running)
	<-s.stop
	return nil
}

// Interrupt ends Run. Safe from any goroutine.
func (s *Source) Interrupt() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}

// BlockingSource has no Interrupter: Run returns only when Release is called,
// which tests use in place of process exit.
type BlockingSource struct {
	subscription
	release chan struct{}
}

// NewBlockingSource returns a source without an interrupt primitive.
func NewBlockingSource() *BlockingSource {
	return &BlockingSource{
		subscription: subscription{running: make(chan struct{})},
		release:      make(chan struct{}),
	}
}

func (b *BlockingSource) Run() error {
	close(b.running)
	<-b.release
	return nil
}

// Release lets Run return.
func (b *BlockingSource) Release() {
	close(b.release)
}

// MainThreadSource is a Source that must run on the main thread.
type MainThreadSource struct {
	*Source
}

func (MainThreadSource) RequiresMainThread() bool { return true }
