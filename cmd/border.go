package cmd

import (
	"os"
	"time"

	"github.com/mj1618/focus-border/internal/dispatch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var borderCmd = &cobra.Command{
	Use:   "border",
	Short: "Draw a colored border that follows the focused window",
	Long: `Watch focus changes and redraw a border around the focused window on every
change. The color is looked up by bundle identifier (--map, FOCUSBORDER_COLORS)
and falls back to the default color.

Examples:
  focus-border border
  focus-border border --color red --width 8 --map com.apple.Safari=#00aaff
  focus-border border --apps-only --quiet`,
	Annotations: needsPermissions,
	RunE:        runBorder,
}

func init() {
	rootCmd.AddCommand(borderCmd)
	addBorderFlags(borderCmd)
	borderCmd.Flags().Int("duration", 0, "Max seconds to run (0 = until Enter or Ctrl+C)")
	borderCmd.Flags().Bool("apps-only", false, "Only redraw when switching applications")
	borderCmd.Flags().Bool("coalesce", false, "Drop consecutive duplicate events (default from FOCUSBORDER_COALESCE)")
	borderCmd.Flags().Bool("quiet", false, "Do not print events")
}

func runBorder(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}
	colors, err := colorMapFromFlags(cmd)
	if err != nil {
		return err
	}
	width, opacity := borderParamsFromFlags(cmd)

	controller, err := newOverlayController(provider)
	if err != nil {
		return err
	}
	defer func() {
		if err := controller.Close(); err != nil {
			logger.Warn("removing border", zap.Error(err))
		}
	}()

	durationSec, _ := cmd.Flags().GetInt("duration")
	appsOnly, _ := cmd.Flags().GetBool("apps-only")
	quiet, _ := cmd.Flags().GetBool("quiet")
	coalesce := cfg.BridgeConfig.Coalesce
	if cmd.Flags().Changed("coalesce") {
		coalesce, _ = cmd.Flags().GetBool("coalesce")
	}

	d := dispatch.New(dispatch.Options{
		Colors:   colors,
		Overlay:  controller,
		Width:    width,
		Opacity:  opacity,
		AppsOnly: appsOnly,
		Quiet:    quiet,
		Logger:   logger,
	})
	stop := stopRequests(stopOptions{
		duration: time.Duration(durationSec) * time.Second,
		stdin:    os.Stdin,
		signals:  true,
	})
	return runObservation(provider.FocusSource, d.Handle, coalesce, stop)
}
