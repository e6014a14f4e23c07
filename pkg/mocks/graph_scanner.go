package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"xscan/internal/scan"
	"xscan/internal/xray"
)

// MockGraphScanner is a testify mock for the scan.GraphScanner interface.
type MockGraphScanner struct {
	mock.Mock
}

func (m *MockGraphScanner) Version(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGraphScanner) ScanGraph(ctx context.Context, graph *xray.GraphNode, project string) (*xray.GraphResponse, error) {
	args := m.Called(ctx, graph, project)
	if resp := args.Get(0); resp != nil {
		return resp.(*xray.GraphResponse), args.Error(1)
	}
	return nil, args.Error(1)
}

var _ scan.GraphScanner = (*MockGraphScanner)(nil)

// NoopIndicator records progress calls without rendering anything.
type NoopIndicator struct {
	IndeterminateCalls []bool
	Fractions          []float64
}

func (n *NoopIndicator) SetIndeterminate(indeterminate bool) {
	n.IndeterminateCalls = append(n.IndeterminateCalls, indeterminate)
}

func (n *NoopIndicator) SetFraction(fraction float64) {
	n.Fractions = append(n.Fractions, fraction)
}

var _ scan.ProgressIndicator = (*NoopIndicator)(nil)
