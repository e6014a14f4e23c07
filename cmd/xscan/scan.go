package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"xscan/internal/cache"
	"xscan/internal/config"
	"xscan/internal/graph"
	"xscan/internal/metrics"
	"xscan/internal/model"
	"xscan/internal/scan"
	"xscan/internal/ui"
	"xscan/internal/xray"
)

var (
	graphFile string
	quickScan bool
	project   string
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a dependency graph and cache the results",
	Long: `Reads a dependency graph from a JSON file, reduces it to the components
that need scanning, sends them to the analysis service and folds the
results into the local cache. With --quick, components already cached are
skipped. With --project, findings are matched against the policies
configured for that project key and come back as violations.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&graphFile, "graph", "", "path to the dependency graph JSON file (required)")
	scanCmd.Flags().BoolVar(&quickScan, "quick", false, "skip components already present in the cache")
	scanCmd.Flags().StringVar(&project, "project", "", "policy-context project key (overrides config)")
	_ = scanCmd.MarkFlagRequired("graph")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := config.FromViper()
	if project != "" {
		cfg.Project = project
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	root, err := graph.Load(graphFile)
	if err != nil {
		return err
	}

	store, err := cache.NewStore(cfg.CacheBackend, cfg.CachePath)
	if err != nil {
		return err
	}
	defer store.Close()

	scanCache, err := cache.NewScanCache(store, logger)
	if err != nil {
		return fmt.Errorf("failed to load scan cache: %w", err)
	}

	m := metrics.NewMetrics()
	if cfg.MetricsPort > 0 {
		srv := m.Serve(cfg.MetricsPort)
		defer srv.Close()
	}

	client := xray.NewClient(cfg.URL, cfg.AccessToken, cfg.Timeout, logger)
	indicator := ui.NewConsoleIndicator(os.Stderr)
	orchestrator := scan.New(client, scanCache, indicator, logger)

	start := time.Now()
	status, err := orchestrator.ScanAndCache(cmd.Context(), root, cfg.Project, quickScan)
	m.ObserveScan(status.String(), time.Since(start))
	m.CachedArtifacts.Set(float64(scanCache.Len()))

	switch status {
	case scan.StatusSuccess:
		printDirectDependencySummaries(scanCache, root)
		logger.Info("scan completed", "duration", time.Since(start).Round(time.Millisecond))
		return nil
	case scan.StatusNothingToScan:
		fmt.Fprintln(os.Stdout, "Nothing to scan: all components are already cached.")
		return nil
	case scan.StatusCanceled:
		fmt.Fprintln(os.Stderr, "Scan canceled.")
		return nil
	default:
		return fmt.Errorf("scan failed: %w", err)
	}
}

// printDirectDependencySummaries prints a summary for each direct dependency
// of the scanned project (metadata groupings are looked through).
func printDirectDependencySummaries(scanCache *cache.ScanCache, root *model.DependencyNode) {
	for _, dep := range directDependencies(root) {
		id := dep.ComponentID
		if id == "" {
			id = dep.ID
		}
		fmt.Fprint(os.Stdout, ui.RenderSummary(scanCache.Summary(id)))
	}
}

// directDependencies returns the first non-metadata node along each branch.
func directDependencies(root *model.DependencyNode) []*model.DependencyNode {
	var deps []*model.DependencyNode
	for _, child := range root.Children() {
		if child.Metadata {
			deps = append(deps, directDependencies(child)...)
			continue
		}
		deps = append(deps, child)
	}
	return deps
}
