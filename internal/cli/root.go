// Package cli implements the caseline command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/caseline/caseline/internal/config"
	"github.com/caseline/caseline/internal/logging"
)

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	var (
		configFile string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:           "caseline",
		Short:         "Case activity timeline processing",
		Long:          "caseline reduces email thread HTML into new content and quoted history,\nand renders processed case timelines.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.config/caseline/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging level (debug, info, warn, error)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(configFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		logging.Init(logging.Config{
			Level:        cfg.Logging.Level,
			Format:       cfg.Logging.Format,
			EnableCaller: cfg.Logging.EnableCaller,
		})
		setConfig(cfg)
		return nil
	}

	cmd.AddCommand(
		newParseCmd(),
		newPreviewCmd(),
		newProcessCmd(),
	)

	return cmd
}

var appConfig *config.Config

func setConfig(cfg *config.Config) {
	appConfig = cfg
}

// GetConfig returns the loaded configuration, or defaults when the root
// command has not run (tests).
func GetConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.LoadDefault()
}
