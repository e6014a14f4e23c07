package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"xscan/internal/model"
)

func TestRenderSummary(t *testing.T) {
	artifact := model.NewArtifact(model.GeneralInfo{ComponentID: "left-pad:1.3.0", PkgType: "npm"})
	artifact.AddIssue(model.Issue{Severity: model.SeverityMinor, Summary: "ReDoS", CVE: "CVE-2020-0002"})
	artifact.AddIssue(model.Issue{
		Severity:      model.SeverityCritical,
		Summary:       "Prototype pollution",
		FixedVersions: []string{"1.3.1"},
		CVE:           "CVE-2020-0001",
	})
	artifact.AddLicense(model.License{Name: "MIT", Key: "mit"})

	out := RenderSummary(artifact)

	assert.Contains(t, out, "left-pad:1.3.0")
	assert.Contains(t, out, "Prototype pollution")
	assert.Contains(t, out, "CVE-2020-0001")
	assert.Contains(t, out, "fixed in 1.3.1")
	assert.Contains(t, out, "MIT")
	// Issues are ordered by descending severity.
	assert.Less(t, strings.Index(out, "Prototype pollution"), strings.Index(out, "ReDoS"))
}

func TestRenderSummaryNoIssues(t *testing.T) {
	artifact := model.NewArtifact(model.GeneralInfo{ComponentID: "safe:1.0.0"})
	artifact.AddLicense(model.UnknownLicense())

	out := RenderSummary(artifact)

	assert.Contains(t, out, "no known issues")
	assert.Contains(t, out, "Unknown")
}

func TestRenderSummaryViolationMarker(t *testing.T) {
	artifact := model.NewArtifact(model.GeneralInfo{ComponentID: "left-pad:1.3.0"})
	artifact.AddLicense(model.License{Name: "GPL-3.0", Key: "gpl-3.0", Violation: true})

	out := RenderSummary(artifact)

	assert.Contains(t, out, "policy violation")
}

func TestConsoleIndicator(t *testing.T) {
	var buf bytes.Buffer
	ind := NewConsoleIndicator(&buf)

	ind.SetIndeterminate(true)
	ind.SetFraction(1)

	out := buf.String()
	assert.Contains(t, out, "Scanning dependency graph")
	assert.Contains(t, out, "100% complete")
}
