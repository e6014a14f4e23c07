package xray

import "xscan/internal/model"

// CVE is one CVE reference attached to a finding.
type CVE struct {
	ID        string `json:"cve,omitempty"`
	CvssV3    string `json:"cvss_v3_score,omitempty"`
	CvssV3Vec string `json:"cvss_v3_vector,omitempty"`
}

// ImpactPathNode is one hop on the path from the project root to an affected
// component.
type ImpactPathNode struct {
	ComponentID string `json:"component_id"`
	FullPath    string `json:"full_path"`
}

// Component is the per-component payload of a finding, keyed in the parent
// maps by scheme-prefixed component ID.
type Component struct {
	FixedVersions []string           `json:"fixed_versions,omitempty"`
	ImpactPaths   [][]ImpactPathNode `json:"impact_paths,omitempty"`
}

// Vulnerability is an unfiltered finding, returned by context-free scans.
type Vulnerability struct {
	Severity   string               `json:"severity"`
	Summary    string               `json:"summary"`
	Cves       []CVE                `json:"cves,omitempty"`
	Components map[string]Component `json:"components,omitempty"`
}

// Violation is a finding matched against a configured watch, returned by
// scans carrying a policy context.
type Violation struct {
	Severity   string               `json:"severity"`
	Summary    string               `json:"summary"`
	WatchName  string               `json:"watch_name,omitempty"`
	IssueID    string               `json:"issue_id,omitempty"`
	Cves       []CVE                `json:"cves,omitempty"`
	Components map[string]Component `json:"components,omitempty"`
}

// License is a license discovery; whether it is a policy violation depends on
// the request shape, not on the payload.
type License struct {
	Name       string               `json:"name"`
	Key        string               `json:"key"`
	Components map[string]Component `json:"components,omitempty"`
}

// GraphResponse is the scan result envelope. The collections are
// independently nullable: context scans fill violations, context-free scans
// fill vulnerabilities, never both.
type GraphResponse struct {
	ScanID          string          `json:"scan_id,omitempty"`
	PackageType     string          `json:"package_type,omitempty"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities,omitempty"`
	Violations      []Violation     `json:"violations,omitempty"`
	Licenses        []License       `json:"licenses,omitempty"`
}

// GraphNode is the request-side component graph.
type GraphNode struct {
	ComponentID string       `json:"component_id"`
	Nodes       []*GraphNode `json:"nodes,omitempty"`
}

// GraphFromTree converts a (flat or nested) dependency tree into the wire
// graph. Node IDs double as component IDs for nodes without one.
func GraphFromTree(root *model.DependencyNode) *GraphNode {
	id := root.ComponentID
	if id == "" {
		id = root.ID
	}
	node := &GraphNode{ComponentID: id}
	for _, child := range root.Children() {
		node.Nodes = append(node.Nodes, GraphFromTree(child))
	}
	return node
}
