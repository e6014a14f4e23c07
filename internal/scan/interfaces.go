package scan

import (
	"context"

	"xscan/internal/xray"
)

// GraphScanner is the remote scan collaborator. Retries, timeouts and mid-call
// cancellation are its concern; the orchestrator issues one blocking call.
type GraphScanner interface {
	Version(ctx context.Context) (string, error)
	ScanGraph(ctx context.Context, graph *xray.GraphNode, project string) (*xray.GraphResponse, error)
}

// Statically assert that the real client implements our interface.
var _ GraphScanner = (*xray.Client)(nil)

// ProgressIndicator receives coarse progress updates. The remote scan reports
// no partial progress, so runs only ever see indeterminate-then-complete.
type ProgressIndicator interface {
	SetIndeterminate(indeterminate bool)
	SetFraction(fraction float64)
}
