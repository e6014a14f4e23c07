// Package graph loads dependency trees from their JSON representation, the
// exchange format produced by build-tool integrations.
package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"xscan/internal/model"
)

type nodeJSON struct {
	ID          string     `json:"id"`
	ComponentID string     `json:"component_id,omitempty"`
	Metadata    bool       `json:"metadata,omitempty"`
	Children    []nodeJSON `json:"children,omitempty"`
}

// Load reads a dependency tree from a JSON file.
func Load(path string) (*model.DependencyNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a dependency tree from JSON.
func Parse(r io.Reader) (*model.DependencyNode, error) {
	var root nodeJSON
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("failed to decode dependency graph: %w", err)
	}
	if root.ID == "" {
		return nil, fmt.Errorf("dependency graph root is missing an id")
	}
	return build(root), nil
}

func build(n nodeJSON) *model.DependencyNode {
	node := model.NewDependencyNode(n.ID)
	node.ComponentID = n.ComponentID
	node.Metadata = n.Metadata
	for _, child := range n.Children {
		node.Add(build(child))
	}
	return node
}
