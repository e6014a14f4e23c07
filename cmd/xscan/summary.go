package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"xscan/internal/cache"
	"xscan/internal/config"
	"xscan/internal/ui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary <component-id>",
	Short: "Print the cached summary for a component",
	Long: `Prints the cached scan summary for a component identifier, e.g.
"left-pad:1.3.0" or "npm://left-pad:1.3.0". Components without cached
results show no issues and an Unknown license.`,
	Args: cobra.ExactArgs(1),
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := config.FromViper()

	store, err := cache.NewStore(cfg.CacheBackend, cfg.CachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	scanCache, err := cache.NewScanCache(store, logger)
	if err != nil {
		return fmt.Errorf("failed to load scan cache: %w", err)
	}

	fmt.Fprint(os.Stdout, ui.RenderSummary(scanCache.Summary(args[0])))
	return nil
}
