//go:build windows

package windows

import "github.com/mj1618/focus-border/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			FocusSource:   NewFocusSource(),
			WindowManager: NewWindowManager(),
		}, nil
	}
}
