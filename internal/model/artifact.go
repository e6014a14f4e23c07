package model

import (
	"strings"
)

// NoSummary is the placeholder used when the scan service omits a finding summary.
const NoSummary = "N/A"

// NormalizeComponentID strips the scheme prefix from a component identifier,
// e.g. "npm://left-pad:1.3.0" -> "left-pad:1.3.0". Identifiers without a
// scheme are returned unchanged. Cache keys are always normalized.
func NormalizeComponentID(id string) string {
	if _, after, ok := strings.Cut(id, "://"); ok {
		return after
	}
	return id
}

// GeneralInfo holds the non-finding metadata of a cached artifact.
type GeneralInfo struct {
	ComponentID string `json:"component_id"`
	Path        string `json:"path,omitempty"`
	PkgType     string `json:"pkg_type,omitempty"`
}

// Issue is a single security finding attached to an artifact.
//
// CVE holds at most one identifier: when the service reports several CVEs for
// one finding, only the first is kept. Downstream consumers rely on the
// one-CVE-per-issue shape.
type Issue struct {
	Severity      Severity `json:"severity"`
	Summary       string   `json:"summary"`
	FixedVersions []string `json:"fixed_versions,omitempty"`
	CVE           string   `json:"cve,omitempty"`
}

// key identifies the finding itself, not its current assessment: severity and
// fixed versions may change between scans, and the refreshed record must
// replace the stale one rather than sit next to it.
func (i Issue) key() string {
	return i.Summary + "|" + i.CVE
}

// License is a license finding attached to an artifact. Violation marks a
// license flagged by an active policy, as opposed to plain discovery.
type License struct {
	Name          string   `json:"name"`
	Key           string   `json:"key"`
	FixedVersions []string `json:"fixed_versions,omitempty"`
	Violation     bool     `json:"violation"`
}

// key identifies the license; the violation flag and fixed versions are
// assessment state refreshed on rescans.
func (l License) key() string {
	return l.Name + "|" + l.Key
}

// UnknownLicense is the fallback license for components where the service
// detected no license at all.
func UnknownLicense() License {
	return License{Name: "Unknown", Key: "unknown"}
}

// Artifact is the unit of cache storage: one scanned component together with
// everything the service reported about it. Issues and Licenses behave as
// value-equality sets, maintained through AddIssue and AddLicense.
type Artifact struct {
	General  GeneralInfo `json:"general"`
	Issues   []Issue     `json:"issues,omitempty"`
	Licenses []License   `json:"licenses,omitempty"`
}

// NewArtifact creates an empty artifact for a normalized component ID.
func NewArtifact(info GeneralInfo) Artifact {
	return Artifact{General: info}
}

// AddIssue inserts an issue, replacing any existing issue equal to it.
// Forced rescans therefore refresh records instead of duplicating them.
func (a *Artifact) AddIssue(is Issue) {
	for idx, existing := range a.Issues {
		if existing.key() == is.key() {
			a.Issues[idx] = is
			return
		}
	}
	a.Issues = append(a.Issues, is)
}

// AddLicense inserts a license, replacing any existing license equal to it.
func (a *Artifact) AddLicense(l License) {
	for idx, existing := range a.Licenses {
		if existing.key() == l.key() {
			a.Licenses[idx] = l
			return
		}
	}
	a.Licenses = append(a.Licenses, l)
}
