//go:build darwin && cgo

package darwin

import "github.com/mj1618/focus-border/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			FocusSource:     NewFocusSource(),
			OverlayRenderer: NewBorderRenderer(),
			WindowManager:   NewWindowManager(),
		}, nil
	}
	platform.RequestPermissionsFunc = RequestAccessibilityPermission
}
