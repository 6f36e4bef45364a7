package cmd

import (
	"os"
	"time"

	"github.com/mj1618/focus-border/internal/dispatch"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print every focus change",
	Long: `Subscribe to focus notifications and print one record per change of the focused
application or window: application name, window title, bundle identifier and
document URL ("none" when the application reports no URL).

Press Enter or Ctrl+C, or use --duration, to stop watching.`,
	Annotations: needsPermissions,
	RunE:        runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Int("duration", 0, "Max seconds to watch (0 = until Enter or Ctrl+C)")
	watchCmd.Flags().Bool("apps-only", false, "Only report switches between applications")
	watchCmd.Flags().Bool("coalesce", false, "Drop consecutive duplicate events (default from FOCUSBORDER_COALESCE)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	provider, err := newProvider()
	if err != nil {
		return err
	}

	durationSec, _ := cmd.Flags().GetInt("duration")
	appsOnly, _ := cmd.Flags().GetBool("apps-only")
	coalesce := cfg.BridgeConfig.Coalesce
	if cmd.Flags().Changed("coalesce") {
		coalesce, _ = cmd.Flags().GetBool("coalesce")
	}

	d := dispatch.New(dispatch.Options{AppsOnly: appsOnly, Logger: logger})
	stop := stopRequests(stopOptions{
		duration: time.Duration(durationSec) * time.Second,
		stdin:    os.Stdin,
		signals:  true,
	})
	return runObservation(provider.FocusSource, d.Handle, coalesce, stop)
}
