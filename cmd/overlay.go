package cmd

import (
	"time"

	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/overlay"
	"github.com/spf13/cobra"
)

var overlayCmd = &cobra.Command{
	Use:   "overlay",
	Short: "Show a border around the focused window for a few seconds",
	Long: `Draw one border around the currently focused window, hold it for --hold seconds
(or until Ctrl+C), then remove it. Useful to check colors and permissions.`,
	RunE: runOverlay,
}

func init() {
	rootCmd.AddCommand(overlayCmd)
	addBorderFlags(overlayCmd)
	overlayCmd.Flags().Float64("hold", 3, "Seconds to keep the border before removing it")
}

func runOverlay(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	colors, err := colorMapFromFlags(cmd)
	if err != nil {
		return err
	}
	width, opacity := borderParamsFromFlags(cmd)
	hold, _ := cmd.Flags().GetFloat64("hold")

	controller, err := newOverlayController(provider)
	if err != nil {
		return err
	}
	defer controller.Close()

	color := colors.Default
	res := output.OverlayResult{Action: "create", Color: &color, Width: width, Opacity: opacity}
	if _, err := controller.Create(overlay.Params{Color: color, Width: width, Opacity: opacity}); err != nil {
		res.Error = err.Error()
		_ = output.Print(res)
		return err
	}
	res.OK = true
	if err := output.Print(res); err != nil {
		return err
	}

	stop := stopRequests(stopOptions{
		duration: time.Duration(hold * float64(time.Second)),
		signals:  true,
	})
	if err := pumpUntil(provider.FocusSource, stop); err != nil {
		return err
	}

	removed := output.OverlayResult{Action: "remove", OK: true}
	if err := controller.Remove(); err != nil {
		removed.OK = false
		removed.Error = err.Error()
		_ = output.Print(removed)
		return err
	}
	return output.Print(removed)
}
