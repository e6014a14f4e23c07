package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"

	"xscan/internal/cache"
	"xscan/internal/model"
	"xscan/internal/xray"
)

// MinServiceVersion is the oldest service version exposing the graph-scan API.
const MinServiceVersion = "3.29.0"

// ErrUnsupportedVersion is returned when the service is older than
// MinServiceVersion or its version cannot be determined.
var ErrUnsupportedVersion = errors.New("unsupported scan service version")

// Status is the terminal state of one scan run.
type Status int

const (
	StatusSuccess Status = iota
	// StatusNothingToScan means the reduced scan tree was empty; not a failure.
	StatusNothingToScan
	// StatusCanceled means cooperative cancellation was observed; partial
	// merges that happened before the signal remain in the cache.
	StatusCanceled
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusNothingToScan:
		return "nothing-to-scan"
	case StatusCanceled:
		return "canceled"
	default:
		return "failed"
	}
}

// Orchestrator drives one scan run: tree reduction, version gate, the remote
// call, result merging and cache persistence. A single run owns the cache;
// concurrent runs against one cache must be serialized by the caller.
type Orchestrator struct {
	client    GraphScanner
	cache     *cache.ScanCache
	indicator ProgressIndicator
	logger    *slog.Logger
}

func New(client GraphScanner, c *cache.ScanCache, indicator ProgressIndicator, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		client:    client,
		cache:     c,
		indicator: indicator,
		logger:    logger,
	}
}

// ScanAndCache scans the dependency tree rooted at root and folds the results
// into the cache. A non-empty project key is sent as policy context, so the
// service returns violations instead of plain vulnerabilities. quickScan
// skips components already cached.
//
// Failures are reported through the returned Status; the error carries the
// cause for StatusFailed and is nil otherwise.
func (o *Orchestrator) ScanAndCache(ctx context.Context, root *model.DependencyNode, project string, quickScan bool) (Status, error) {
	// The graph-scan API reports no partial progress.
	o.indicator.SetIndeterminate(true)

	scanTree := NewTreeBuilder(o.cache).Build(root, quickScan)
	if scanTree.IsLeaf() {
		o.logger.Debug("no components found to scan")
		return StatusNothingToScan, nil
	}

	version, err := o.client.Version(ctx)
	if err != nil {
		if canceled(err) {
			o.logger.Info("scan was canceled")
			return StatusCanceled, nil
		}
		o.logger.Error("scan failed: could not determine service version, check your connection and credentials", "error", err)
		return StatusFailed, fmt.Errorf("%w: %v", ErrUnsupportedVersion, err)
	}
	if err := CheckVersion(version); err != nil {
		o.logger.Error("scan failed", "error", err)
		return StatusFailed, err
	}

	if ctx.Err() != nil {
		o.logger.Info("scan was canceled")
		return StatusCanceled, nil
	}

	o.logger.Debug("starting scan, sending dependency graph to the service",
		"components", len(scanTree.Children()), "quick", quickScan, "project", project)

	resp, err := o.client.ScanGraph(ctx, xray.GraphFromTree(scanTree), project)
	if err != nil {
		if canceled(err) {
			o.logger.Info("scan was canceled")
			return StatusCanceled, nil
		}
		o.logger.Error("scan failed, check your connection and credentials", "error", err)
		return StatusFailed, err
	}

	merger := NewMerger(o.cache)
	if project != "" {
		// With context the service matched configured watches.
		merger.MergeViolations(resp.Violations, resp.PackageType)
		merger.MergeLicenses(resp.Licenses, resp.PackageType, true)
	} else {
		merger.MergeVulnerabilities(resp.Vulnerabilities, resp.PackageType)
		merger.MergeLicenses(resp.Licenses, resp.PackageType, false)
	}

	o.indicator.SetFraction(1)

	o.logger.Debug("saving scan cache")
	if err := o.cache.Write(); err != nil {
		o.logger.Error("failed to save scan cache", "error", err)
		return StatusFailed, err
	}
	o.logger.Debug("scan cache saved successfully")

	return StatusSuccess, nil
}

// CheckVersion verifies the given service version supports graph scans.
func CheckVersion(version string) error {
	// Semantic-version ordering: "3.30.0" is newer than "3.29.0" even though
	// it sorts lower lexicographically.
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: cannot parse reported version %q: %v", ErrUnsupportedVersion, version, err)
	}
	if v.LessThan(semver.MustParse(MinServiceVersion)) {
		return fmt.Errorf("%w: got %s, required %s and above", ErrUnsupportedVersion, version, MinServiceVersion)
	}
	return nil
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
