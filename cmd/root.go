package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/focus-border/internal/bridge"
	"github.com/mj1618/focus-border/internal/config"
	"github.com/mj1618/focus-border/internal/logging"
	"github.com/mj1618/focus-border/internal/output"
	"github.com/mj1618/focus-border/internal/platform"
	"github.com/mj1618/focus-border/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "focus-border",
	Short: "Observe focus changes and draw a border around the focused window",
	Long: `focus-border subscribes to the operating system's focus notifications, prints
every change of the focused application and window, and can draw a colored
border that follows the focused window.

Defaults come from FOCUSBORDER_* environment variables; flags override them.`,
}

var (
	// cfg and logger are set by the root PersistentPreRunE.
	cfg    *config.Config
	logger = zap.NewNop()
)

func Execute() {
	err := rootCmd.Execute()
	if serr := bridge.Shutdown(); serr != nil {
		logger.Warn("shutdown", zap.Error(serr))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	rootCmd.PersistentFlags().String("format", "text", "Output format: text, yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Indent JSON output")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (default from FOCUSBORDER_LOG_LEVEL)")
	rootCmd.PersistentFlags().Bool("log-dev", false, "Human-readable development logging")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.LogConfig.Level
		logCfg.Development = cfg.LogConfig.Development
		if f := rootCmd.PersistentFlags().Lookup("log-level"); f != nil && f.Changed {
			logCfg.Level = f.Value.String()
		}
		if dev, _ := rootCmd.PersistentFlags().GetBool("log-dev"); dev {
			logCfg.Development = true
		}
		l, err := logging.New(logCfg)
		if err != nil {
			return err
		}
		logger = l

		if platform.RequestPermissionsFunc != nil && cmd.Annotations[annotationNeedsPermissions] == "true" {
			platform.RequestPermissionsFunc()
		}

		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		if pretty, _ := rootCmd.PersistentFlags().GetBool("pretty"); pretty {
			output.PrettyOutput = true
		}
		return nil
	}
}

// annotationNeedsPermissions marks commands that subscribe to focus events and
// should trigger the OS permission prompt.
const annotationNeedsPermissions = "needs-permissions"

var needsPermissions = map[string]string{annotationNeedsPermissions: "true"}
