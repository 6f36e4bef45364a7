package cmd

import (
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mj1618/focus-border/internal/bridge"
	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/mj1618/focus-border/internal/platform/fake"
	"github.com/spf13/cobra"
)

func loadTestConfig(t *testing.T) {
	t.Helper()
	loaded, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	old := cfg
	cfg = loaded
	t.Cleanup(func() { cfg = old })
}

func newBorderTestCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addBorderFlags(c)
	if err := c.ParseFlags(args); err != nil {
		t.Fatal(err)
	}
	return c
}

func TestColorMapFromFlags(t *testing.T) {
	loadTestConfig(t)
	c := newBorderTestCommand(t, "--color", "red", "--map", "com.apple.Safari=#0000ff", "--map", "com.apple.Terminal=0,1,0")

	colors, err := colorMapFromFlags(c)
	if err != nil {
		t.Fatal(err)
	}
	if colors.Default != (model.Color{R: 1}) {
		t.Errorf("default: got %v", colors.Default)
	}
	if got := colors.Lookup("com.apple.Safari"); got != (model.Color{B: 1}) {
		t.Errorf("Safari: got %v", got)
	}
	if got := colors.Lookup("com.apple.Terminal"); got != (model.Color{G: 1}) {
		t.Errorf("Terminal: got %v", got)
	}
}

func TestColorMapFromFlags_Invalid(t *testing.T) {
	loadTestConfig(t)
	tests := [][]string{
		{"--color", "nope"},
		{"--map", "missing-equals"},
		{"--map", "id=2,0,0"},
	}
	for _, args := range tests {
		if _, err := colorMapFromFlags(newBorderTestCommand(t, args...)); err == nil {
			t.Errorf("expected error for %v", args)
		}
	}
}

func TestBorderParamsFromFlags(t *testing.T) {
	loadTestConfig(t)

	width, opacity := borderParamsFromFlags(newBorderTestCommand(t))
	if width != 20 || opacity != 0.3 {
		t.Errorf("defaults: got width=%v opacity=%v", width, opacity)
	}

	width, opacity = borderParamsFromFlags(newBorderTestCommand(t, "--width", "0", "--opacity", "1"))
	if width != 0 || opacity != 1 {
		t.Errorf("explicit flags: got width=%v opacity=%v", width, opacity)
	}
}

func expectStop(t *testing.T, stop <-chan string, want string) {
	t.Helper()
	select {
	case reason := <-stop:
		if reason != want {
			t.Errorf("reason: got %q, want %q", reason, want)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("no stop request, want %q", want)
	}
}

func TestStopRequests(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		expectStop(t, stopRequests(stopOptions{duration: 10 * time.Millisecond}), "duration elapsed")
	})
	t.Run("enter", func(t *testing.T) {
		expectStop(t, stopRequests(stopOptions{stdin: strings.NewReader("\n")}), "enter pressed")
	})
	t.Run("until", func(t *testing.T) {
		until := make(chan struct{})
		stop := stopRequests(stopOptions{until: until})
		close(until)
		expectStop(t, stop, "client disconnected")
	})
	t.Run("closed stdin is ignored", func(t *testing.T) {
		stop := stopRequests(stopOptions{stdin: strings.NewReader("")})
		select {
		case reason := <-stop:
			t.Errorf("unexpected stop: %q", reason)
		case <-time.After(50 * time.Millisecond):
		}
	})
}

// collector records events delivered by the bridge.
type collector struct {
	mu     sync.Mutex
	events []model.FocusEvent
}

func (c *collector) handle(ev model.FocusEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collector) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

type runningSource interface {
	platform.FocusSource
	Running() <-chan struct{}
	Emit(platform.RawNotification) error
}

func observeAndStop(t *testing.T, src runningSource) (*collector, error) {
	t.Helper()
	c := &collector{}
	stop := make(chan string, 1)
	result := make(chan error, 1)
	go func() { result <- runObservation(src, c.handle, false, stop) }()

	select {
	case <-src.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("run loop did not start")
	}
	for _, app := range []string{"Safari", "Terminal", "Finder"} {
		if err := src.Emit(platform.NewRawNotification(app, "", "com.example."+app, nil)); err != nil {
			t.Fatal(err)
		}
	}
	stop <- "test"

	select {
	case err := <-result:
		return c, err
	case <-time.After(5 * time.Second):
		t.Fatal("runObservation did not return")
		return nil, nil
	}
}

func TestForwardFirstSignal_ReleasesHandler(t *testing.T) {
	var released chan<- os.Signal
	old := releaseSignals
	releaseSignals = func(c chan<- os.Signal) { released = c }
	t.Cleanup(func() { releaseSignals = old })

	sigs := make(chan os.Signal, 1)
	sigs <- os.Interrupt
	var got string
	forwardFirstSignal(sigs, func(reason string) { got = reason })

	if got != os.Interrupt.String() {
		t.Errorf("reason: got %q, want %q", got, os.Interrupt.String())
	}
	if released != sigs {
		t.Error("signal channel should be released after the first signal")
	}
}

func TestRunObservation_Background(t *testing.T) {
	c, err := observeAndStop(t, fake.NewSource())
	if err != nil {
		t.Fatal(err)
	}
	if c.len() != 3 {
		t.Errorf("delivered %d events, want 3", c.len())
	}
	if bridge.IsObserving() {
		t.Error("observer should be stopped")
	}
}

func TestRunObservation_Foreground(t *testing.T) {
	c, err := observeAndStop(t, fake.MainThreadSource{Source: fake.NewSource()})
	if err != nil {
		t.Fatal(err)
	}
	if c.len() != 3 {
		t.Errorf("delivered %d events, want 3", c.len())
	}
}

func TestRunObservation_UninterruptibleLoopIsDetached(t *testing.T) {
	src := fake.NewBlockingSource()
	t.Cleanup(src.Release)

	c, err := observeAndStop(t, src)
	if err != nil {
		t.Fatal(err)
	}
	if c.len() != 3 {
		t.Errorf("delivered %d events, want 3", c.len())
	}
	if _, unsubs := src.Counts(); unsubs != 1 {
		t.Error("observer should be unsubscribed even when the loop keeps running")
	}
}

func TestRunObservation_SubscribeFailure(t *testing.T) {
	src := fake.NewSource()
	src.SubscribeErr = errors.New("permission denied")

	err := runObservation(src, func(model.FocusEvent) {}, false, make(chan string))
	if !errors.Is(err, bridge.ErrSubscriptionUnavailable) {
		t.Errorf("got %v, want ErrSubscriptionUnavailable", err)
	}
}

func TestPumpUntil(t *testing.T) {
	src := fake.NewSource()
	stop := make(chan string, 1)
	result := make(chan error, 1)
	go func() { result <- pumpUntil(src, stop) }()

	<-src.Running()
	stop <- "test"
	select {
	case err := <-result:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("pumpUntil did not return")
	}
}

func TestNewOverlayController_NoRenderer(t *testing.T) {
	if _, err := newOverlayController(&platform.Provider{}); !errors.Is(err, platform.ErrUnsupported) {
		t.Errorf("got %v, want ErrUnsupported", err)
	}
}

