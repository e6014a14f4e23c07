package scan

import (
	"xscan/internal/cache"
	"xscan/internal/model"
	"xscan/internal/xray"
)

// Merger folds raw scan-service output into the cache, one finding-to-
// component pair at a time. Findings without a component mapping are skipped:
// the service occasionally sends incomplete data and is the source of truth.
type Merger struct {
	cache *cache.ScanCache
}

func NewMerger(c *cache.ScanCache) *Merger {
	return &Merger{cache: c}
}

// MergeVulnerabilities records unfiltered findings from a context-free scan.
func (m *Merger) MergeVulnerabilities(vulns []xray.Vulnerability, packageType string) {
	for _, v := range vulns {
		m.mergeFinding(v.Components, model.ParseSeverity(v.Severity), v.Summary, packageType, v.Cves)
	}
}

// MergeViolations records policy-matched findings from a context scan.
func (m *Merger) MergeViolations(violations []xray.Violation, packageType string) {
	for _, v := range violations {
		m.mergeFinding(v.Components, model.ParseSeverity(v.Severity), v.Summary, packageType, v.Cves)
	}
}

// MergeLicenses records license discoveries; violation marks them as flagged
// by an active policy.
func (m *Merger) MergeLicenses(licenses []xray.License, packageType string, violation bool) {
	for _, lic := range licenses {
		if lic.Components == nil {
			continue
		}
		for id, component := range lic.Components {
			candidate := model.License{
				Name:          lic.Name,
				Key:           lic.Key,
				FixedVersions: component.FixedVersions,
				Violation:     violation,
			}
			m.upsert(id, component, packageType, func(a *model.Artifact) {
				a.AddLicense(candidate)
			})
		}
	}
}

func (m *Merger) mergeFinding(components map[string]xray.Component, severity model.Severity, summary, packageType string, cves []xray.CVE) {
	if components == nil {
		return
	}
	if summary == "" {
		summary = model.NoSummary
	}
	// Due to UI limitations only the first CVE with an ID is kept.
	cveID := firstCVE(cves)

	for id, component := range components {
		candidate := model.Issue{
			Severity:      severity,
			Summary:       summary,
			FixedVersions: component.FixedVersions,
			CVE:           cveID,
		}
		m.upsert(id, component, packageType, func(a *model.Artifact) {
			a.AddIssue(candidate)
		})
	}
}

// upsert applies add to the cached artifact for the component, creating a new
// artifact from the finding's metadata when none is cached yet.
func (m *Merger) upsert(componentID string, component xray.Component, packageType string, add func(*model.Artifact)) {
	key := model.NormalizeComponentID(componentID)
	artifact, ok := m.cache.Get(key)
	if !ok {
		artifact = model.NewArtifact(model.GeneralInfo{
			ComponentID: key,
			Path:        firstImpactPath(component),
			PkgType:     packageType,
		})
	}
	add(&artifact)
	m.cache.Put(artifact)
}

func firstCVE(cves []xray.CVE) string {
	for _, c := range cves {
		if c.ID != "" {
			return c.ID
		}
	}
	return ""
}

func firstImpactPath(component xray.Component) string {
	if len(component.ImpactPaths) > 0 && len(component.ImpactPaths[0]) > 0 {
		return component.ImpactPaths[0][0].FullPath
	}
	return ""
}
