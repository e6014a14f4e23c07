package scan_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"xscan/internal/cache"
	"xscan/internal/model"
	"xscan/internal/scan"
	"xscan/internal/xray"
	"xscan/pkg/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrchestrator(t *testing.T, client scan.GraphScanner) (*scan.Orchestrator, *cache.ScanCache, *cache.MemoryStore) {
	t.Helper()
	store := cache.NewMemoryStore()
	sc, err := cache.NewScanCache(store, discardLogger())
	require.NoError(t, err)
	return scan.New(client, sc, &mocks.NoopIndicator{}, discardLogger()), sc, store
}

func componentNode(id string) *model.DependencyNode {
	n := model.NewDependencyNode(model.NormalizeComponentID(id))
	n.ComponentID = id
	return n
}

func metadataNode(id string) *model.DependencyNode {
	n := model.NewDependencyNode(id)
	n.Metadata = true
	return n
}

func projectTree() *model.DependencyNode {
	root := model.NewDependencyNode("project")
	root.Add(componentNode("npm://left-pad:1.3.0"))
	return root
}

func criticalVulnerability() xray.Vulnerability {
	return xray.Vulnerability{
		Severity: "Critical",
		Summary:  "Prototype pollution",
		Cves:     []xray.CVE{{ID: "CVE-2020-0001"}},
		Components: map[string]xray.Component{
			"npm://left-pad:1.3.0": {FixedVersions: []string{"1.3.1"}},
		},
	}
}

func TestScanAndCacheSuccessWithoutContext(t *testing.T) {
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("3.29.0", nil)
	client.On("ScanGraph", mock.Anything, mock.Anything, "").Return(&xray.GraphResponse{
		PackageType:     "npm",
		Vulnerabilities: []xray.Vulnerability{criticalVulnerability()},
		Licenses: []xray.License{{
			Name: "WTFPL", Key: "wtfpl",
			Components: map[string]xray.Component{"npm://left-pad:1.3.0": {}},
		}},
	}, nil)

	o, sc, store := newOrchestrator(t, client)
	status, err := o.ScanAndCache(context.Background(), projectTree(), "", false)

	require.NoError(t, err)
	assert.Equal(t, scan.StatusSuccess, status)

	artifact, ok := sc.Get("left-pad:1.3.0")
	require.True(t, ok)
	assert.Len(t, artifact.Issues, 1)
	require.Len(t, artifact.Licenses, 1)
	assert.False(t, artifact.Licenses[0].Violation)

	// The cache snapshot was persisted.
	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Contains(t, persisted, "left-pad:1.3.0")
	client.AssertExpectations(t)
}

func TestScanAndCacheSuccessWithContext(t *testing.T) {
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("3.30.1", nil)
	client.On("ScanGraph", mock.Anything, mock.Anything, "my-project").Return(&xray.GraphResponse{
		PackageType: "npm",
		Violations: []xray.Violation{{
			Severity: "Major", Summary: "Disallowed dependency",
			Components: map[string]xray.Component{"npm://left-pad:1.3.0": {}},
		}},
		Licenses: []xray.License{{
			Name: "GPL-3.0", Key: "gpl-3.0",
			Components: map[string]xray.Component{"npm://left-pad:1.3.0": {}},
		}},
	}, nil)

	o, sc, _ := newOrchestrator(t, client)
	status, err := o.ScanAndCache(context.Background(), projectTree(), "my-project", false)

	require.NoError(t, err)
	assert.Equal(t, scan.StatusSuccess, status)

	artifact, _ := sc.Get("left-pad:1.3.0")
	require.Len(t, artifact.Licenses, 1)
	// Licenses from a context scan are policy violations.
	assert.True(t, artifact.Licenses[0].Violation)
	client.AssertExpectations(t)
}

func TestScanAndCacheNothingToScan(t *testing.T) {
	client := new(mocks.MockGraphScanner)

	o, sc, _ := newOrchestrator(t, client)
	sc.Put(model.NewArtifact(model.GeneralInfo{ComponentID: "left-pad:1.3.0"}))

	status, err := o.ScanAndCache(context.Background(), projectTree(), "", true)

	require.NoError(t, err)
	assert.Equal(t, scan.StatusNothingToScan, status)
	client.AssertNotCalled(t, "Version", mock.Anything)
	client.AssertNotCalled(t, "ScanGraph", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanAndCacheUnsupportedVersion(t *testing.T) {
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("3.28.9", nil)

	o, _, store := newOrchestrator(t, client)
	status, err := o.ScanAndCache(context.Background(), projectTree(), "", false)

	assert.Equal(t, scan.StatusFailed, status)
	assert.ErrorIs(t, err, scan.ErrUnsupportedVersion)
	client.AssertNotCalled(t, "ScanGraph", mock.Anything, mock.Anything, mock.Anything)

	// Nothing was persisted.
	persisted, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.Empty(t, persisted)
}

func TestScanAndCacheVersionUnreachable(t *testing.T) {
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("", fmt.Errorf("connection refused"))

	o, _, _ := newOrchestrator(t, client)
	status, err := o.ScanAndCache(context.Background(), projectTree(), "", false)

	assert.Equal(t, scan.StatusFailed, status)
	assert.ErrorIs(t, err, scan.ErrUnsupportedVersion)
}

func TestScanAndCacheCanceledBeforeDispatch(t *testing.T) {
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("3.29.0", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o, _, _ := newOrchestrator(t, client)
	status, err := o.ScanAndCache(ctx, projectTree(), "", false)

	// Canceled is a distinct terminal state, not an error.
	require.NoError(t, err)
	assert.Equal(t, scan.StatusCanceled, status)
	client.AssertNotCalled(t, "ScanGraph", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanAndCacheCanceledMidCall(t *testing.T) {
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("3.29.0", nil)
	client.On("ScanGraph", mock.Anything, mock.Anything, "").Return(nil, context.Canceled)

	o, _, _ := newOrchestrator(t, client)
	status, err := o.ScanAndCache(context.Background(), projectTree(), "", false)

	require.NoError(t, err)
	assert.Equal(t, scan.StatusCanceled, status)
}

func TestScanAndCacheTransportFailure(t *testing.T) {
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("3.29.0", nil)
	client.On("ScanGraph", mock.Anything, mock.Anything, "").Return(nil, errors.New("503 service unavailable"))

	o, _, _ := newOrchestrator(t, client)
	status, err := o.ScanAndCache(context.Background(), projectTree(), "", false)

	assert.Equal(t, scan.StatusFailed, status)
	assert.Error(t, err)
}

func TestScanAndCacheSendsFlatGraph(t *testing.T) {
	var sent *xray.GraphNode
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("3.29.0", nil)
	client.On("ScanGraph", mock.Anything, mock.Anything, "").Run(func(args mock.Arguments) {
		sent = args.Get(1).(*xray.GraphNode)
	}).Return(&xray.GraphResponse{}, nil)

	root := model.NewDependencyNode("project")
	scope := metadataNode("compile")
	root.Add(scope)
	scope.Add(componentNode("npm://a:1.0"))
	b := componentNode("npm://b:1.0")
	scope.Add(b)
	b.Add(componentNode("npm://c:1.0"))

	o, _, _ := newOrchestrator(t, client)
	status, err := o.ScanAndCache(context.Background(), root, "", false)

	require.NoError(t, err)
	assert.Equal(t, scan.StatusSuccess, status)
	require.NotNil(t, sent)

	var ids []string
	for _, n := range sent.Nodes {
		ids = append(ids, n.ComponentID)
		assert.Empty(t, n.Nodes)
	}
	assert.ElementsMatch(t, []string{"npm://a:1.0", "npm://b:1.0", "npm://c:1.0"}, ids)
}

func TestScanAndCacheStoreWriteFailure(t *testing.T) {
	client := new(mocks.MockGraphScanner)
	client.On("Version", mock.Anything).Return("3.29.0", nil)
	client.On("ScanGraph", mock.Anything, mock.Anything, "").Return(&xray.GraphResponse{}, nil)

	sc, err := cache.NewScanCache(&failingStore{}, discardLogger())
	require.NoError(t, err)
	o := scan.New(client, sc, &mocks.NoopIndicator{}, discardLogger())

	status, err := o.ScanAndCache(context.Background(), projectTree(), "", false)

	assert.Equal(t, scan.StatusFailed, status)
	assert.Error(t, err)
}

type failingStore struct{}

func (f *failingStore) Load() (map[string]model.Artifact, error) { return nil, nil }
func (f *failingStore) Write(map[string]model.Artifact) error {
	return errors.New("disk full")
}
func (f *failingStore) Close() error { return nil }

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, scan.CheckVersion("3.29.0"))
	assert.NoError(t, scan.CheckVersion("4.0.0"))
	// Semantic ordering, not lexicographic: 3.100.0 >= 3.29.0.
	assert.NoError(t, scan.CheckVersion("3.100.0"))
	assert.ErrorIs(t, scan.CheckVersion("3.28.9"), scan.ErrUnsupportedVersion)
	assert.ErrorIs(t, scan.CheckVersion("not-a-version"), scan.ErrUnsupportedVersion)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", scan.StatusSuccess.String())
	assert.Equal(t, "nothing-to-scan", scan.StatusNothingToScan.String())
	assert.Equal(t, "canceled", scan.StatusCanceled.String())
	assert.Equal(t, "failed", scan.StatusFailed.String())
}
