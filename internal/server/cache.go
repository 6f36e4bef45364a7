package server

import (
	"sync"
	"time"

	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/platform"
)

// FrontmostCache provides a TTL-based cache for frontmost application lookups,
// which cost a native round trip each.
type FrontmostCache struct {
	mu        sync.Mutex
	wm        platform.WindowManager
	ttl       time.Duration
	window    *model.Window
	timestamp time.Time
	now       func() time.Time
}

// NewFrontmostCache creates a new cache. A ttl of 0 disables caching.
func NewFrontmostCache(wm platform.WindowManager, ttl time.Duration) *FrontmostCache {
	return &FrontmostCache{wm: wm, ttl: ttl, now: time.Now}
}

// Frontmost returns the cached frontmost application if within TTL, otherwise
// asks the window manager.
func (c *FrontmostCache) Frontmost() (*model.Window, error) {
	if c.wm == nil {
		return nil, platform.ErrUnsupported
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl > 0 && c.window != nil && c.now().Sub(c.timestamp) < c.ttl {
		return c.window, nil
	}

	app, pid, err := c.wm.GetFrontmostApp()
	if err != nil {
		return nil, err
	}
	c.window = &model.Window{App: app, PID: pid}
	c.timestamp = c.now()
	return c.window, nil
}

// Invalidate drops the cached entry.
func (c *FrontmostCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.window = nil
}
