package main

import (
	"fmt"
	"os"

	"github.com/philipparndt/gortho/internal/config"
	"github.com/philipparndt/gortho/internal/logging"
	"github.com/philipparndt/gortho/version"
	"github.com/spf13/cobra"
)

var (
	configFile string

	cfg    = config.Default()
	logger = logging.NewNopLogger()
)

var rootCmd = &cobra.Command{
	Use:   "gortho",
	Short: "Cephalometric measurements from digitized landmarks",
	Long: `gortho evaluates cephalometric analyses. Landmarks digitized on a radiograph
are turned into the angles, distances and displacements an analysis template
defines. Projects are stored as YAML documents or legacy OpenOrtho XML files.`,
	Version:           version.GetVersion(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file (YAML)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
}

// setup merges defaults, the config file, GORTHO_* variables and the flags
// of the running command into cfg
func setup(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	loaded, err := config.Load(configFile,
		config.WithFlag("log.level", flags.Lookup("log-level")),
		config.WithFlag("log.format", flags.Lookup("log-format")),
		config.WithFlag("report.format", flags.Lookup("format")),
		config.WithFlag("report.decimals", flags.Lookup("decimals")),
		config.WithFlag("report.show_disabled", flags.Lookup("all")),
		config.WithFlag("watch.debounce", flags.Lookup("debounce")),
	)
	if err != nil {
		return err
	}

	l, err := logging.NewLogger(loaded.Log)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = l.Named("gortho")
	logging.SetDefault(logger)
	logger.Debug("configuration loaded",
		logging.String("file", configFile),
		logging.Any("report", cfg.Report),
		logging.Any("hints", cfg.Hints),
	)
	return nil
}

func main() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
