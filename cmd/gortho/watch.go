package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/philipparndt/gortho/internal/logging"
	"github.com/philipparndt/gortho/pkg/watcher"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <project>",
	Short: "Print the report again whenever the project file changes",
	Long: `Print the measurement report and keep watching the project file. Every save,
including editors that replace the file by rename, prints a fresh report.
Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringP("format", "f", "table", "output format (table, json, yaml)")
	watchCmd.Flags().IntP("decimals", "d", 1, "decimal places")
	watchCmd.Flags().Bool("all", false, "include disabled measurements")
	watchCmd.Flags().Duration("debounce", cfg.Watch.Debounce, "wait this long after the last change before reporting")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchProject(ctx, cmd, args[0])
}

// watchProject reports path until ctx is done. A project that fails to load
// is logged and reported again after the next change.
func watchProject(ctx context.Context, cmd *cobra.Command, path string) error {
	out := cmd.OutOrStdout()
	report := func() {
		p, err := loadProject(path)
		if err == nil {
			err = printReport(out, p, cfg.Report)
		}
		if err != nil {
			logger.Error("failed to report project", logging.String("path", path), logging.Err(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}

	fw, err := watcher.NewFileWatcher(cfg.Watch.Debounce, logger)
	if err != nil {
		return err
	}
	defer fw.Close()

	var mu sync.Mutex
	if err := fw.Watch(path, func(string) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(out)
		report()
	}); err != nil {
		return err
	}

	mu.Lock()
	report()
	mu.Unlock()

	logger.Info("watching project", logging.String("path", path), logging.Duration("debounce", cfg.Watch.Debounce))
	runErr := fw.Run(ctx)
	if err := fw.Unwatch(path); err != nil {
		logger.Warn("failed to stop watching project", logging.String("path", path), logging.Err(err))
	}
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}
	return nil
}
