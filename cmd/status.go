package cmd

import (
	"runtime"

	"github.com/mj1618/focus-border/internal/model"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report platform support, permissions and the frontmost application",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	return output.Print(collectStatus(platform.NewProvider))
}

func collectStatus(newProvider func() (*platform.Provider, error)) model.Status {
	st := model.Status{Platform: runtime.GOOS + "/" + runtime.GOARCH}

	provider, err := newProvider()
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Supported = provider.FocusSource != nil
	st.Overlay = provider.OverlayRenderer != nil

	if provider.WindowManager == nil {
		return st
	}
	st.Trusted = provider.WindowManager.IsTrusted()
	app, pid, err := provider.WindowManager.GetFrontmostApp()
	if err != nil {
		st.Error = err.Error()
		return st
	}
	st.Frontmost = &model.Window{App: app, PID: pid}
	return st
}
