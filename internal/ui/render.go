package ui

import (
	"fmt"
	"sort"
	"strings"

	"xscan/internal/model"
)

// RenderSummary renders one artifact summary for terminal display: component
// header, issues ordered by descending severity, then licenses.
func RenderSummary(artifact model.Artifact) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(artifact.General.ComponentID))
	b.WriteString("\n")
	if artifact.General.PkgType != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("type: %s", artifact.General.PkgType)))
		b.WriteString("\n")
	}
	if artifact.General.Path != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("path: %s", artifact.General.Path)))
		b.WriteString("\n")
	}

	issues := make([]model.Issue, len(artifact.Issues))
	copy(issues, artifact.Issues)
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity > issues[j].Severity
	})

	if len(issues) == 0 {
		b.WriteString(dimStyle.Render("no known issues"))
		b.WriteString("\n")
	}
	for _, issue := range issues {
		line := fmt.Sprintf("[%s] %s", issue.Severity, issue.Summary)
		if issue.CVE != "" {
			line += fmt.Sprintf(" (%s)", issue.CVE)
		}
		if len(issue.FixedVersions) > 0 {
			line += fmt.Sprintf(" fixed in %s", strings.Join(issue.FixedVersions, ", "))
		}
		b.WriteString(severityStyle(issue.Severity).Render(line))
		b.WriteString("\n")
	}

	for _, lic := range artifact.Licenses {
		line := fmt.Sprintf("license: %s (%s)", lic.Name, lic.Key)
		if lic.Violation {
			b.WriteString(violationStyle.Render(line + " [policy violation]"))
		} else {
			b.WriteString(dimStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
