package cache

import (
	"log/slog"

	"xscan/internal/model"
)

// ScanCache maps normalized component IDs to the artifacts a previous scan
// produced for them. It is the skip oracle for quick scans and the source of
// per-component summaries. Single writer: one scan run owns the cache for its
// duration; concurrent runs must be serialized by the caller.
type ScanCache struct {
	artifacts map[string]model.Artifact
	store     Store
	logger    *slog.Logger
}

// NewScanCache hydrates a cache from its backing store.
func NewScanCache(store Store, logger *slog.Logger) (*ScanCache, error) {
	artifacts, err := store.Load()
	if err != nil {
		return nil, err
	}
	if artifacts == nil {
		artifacts = make(map[string]model.Artifact)
	}
	logger.Debug("scan cache loaded", "artifacts", len(artifacts))
	return &ScanCache{artifacts: artifacts, store: store, logger: logger}, nil
}

// Get returns the cached artifact for a component ID (any scheme prefix is
// stripped before lookup).
func (c *ScanCache) Get(id string) (model.Artifact, bool) {
	artifact, ok := c.artifacts[model.NormalizeComponentID(id)]
	return artifact, ok
}

// Contains reports whether the component is cached.
func (c *ScanCache) Contains(id string) bool {
	_, ok := c.artifacts[model.NormalizeComponentID(id)]
	return ok
}

// Put inserts or replaces an artifact, keyed by its normalized component ID.
func (c *ScanCache) Put(artifact model.Artifact) {
	key := model.NormalizeComponentID(artifact.General.ComponentID)
	artifact.General.ComponentID = key
	c.artifacts[key] = artifact
}

// Len returns the number of cached artifacts.
func (c *ScanCache) Len() int {
	return len(c.artifacts)
}

// Write flushes the in-memory snapshot to the backing store.
func (c *ScanCache) Write() error {
	return c.store.Write(c.artifacts)
}

// Summary returns the artifact for a component, shaped for display: an
// unknown component yields an empty artifact with a single "Unknown" license,
// and a cached artifact with no licenses gets the same placeholder appended.
// A summary therefore always carries at least one license; issues are never
// touched.
func (c *ScanCache) Summary(id string) model.Artifact {
	key := model.NormalizeComponentID(id)
	artifact, ok := c.artifacts[key]
	if !ok {
		artifact = model.NewArtifact(model.GeneralInfo{ComponentID: key})
	}
	if len(artifact.Licenses) == 0 {
		artifact.Licenses = append(artifact.Licenses, model.UnknownLicense())
	}
	return artifact
}
