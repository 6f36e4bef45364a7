package dispatch

import (
	"sync"

	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/output"
)

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	Latest      *model.FocusEvent     `yaml:"latest,omitempty"       json:"latest,omitempty"`
	Events      uint64                `yaml:"events"                 json:"events"`
	Skipped     uint64                `yaml:"skipped,omitempty"      json:"skipped,omitempty"`
	LastOverlay *output.OverlayResult `yaml:"last_overlay,omitempty" json:"last_overlay,omitempty"`
}

// State holds the most recent focus information. It keeps no history.
type State struct {
	mu          sync.RWMutex
	latest      model.FocusEvent
	hasLatest   bool
	events      uint64
	skipped     uint64
	lastOverlay output.OverlayResult
	hasOverlay  bool
}

// NewState returns an empty State.
func NewState() *State {
	return &State{}
}

func (s *State) recordEvent(ev model.FocusEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest, s.hasLatest = ev, true
	s.events++
}

func (s *State) recordSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.skipped++
}

func (s *State) recordOverlay(res output.OverlayResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastOverlay, s.hasOverlay = res, true
}

// RecordOverlay stores the result of an overlay operation made outside the
// event path, such as an explicit request from an MCP client.
func (s *State) RecordOverlay(res output.OverlayResult) {
	s.recordOverlay(res)
}

// Latest returns the most recent event, if any.
func (s *State) Latest() (model.FocusEvent, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.hasLatest
}

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Events: s.events, Skipped: s.skipped}
	if s.hasLatest {
		ev := s.latest
		snap.Latest = &ev
	}
	if s.hasOverlay {
		res := s.lastOverlay
		snap.LastOverlay = &res
	}
	return snap
}
