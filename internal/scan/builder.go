package scan

import (
	"xscan/internal/cache"
	"xscan/internal/model"
)

// TreeBuilder reduces a full dependency tree into the flat set of components
// that need a remote scan.
type TreeBuilder struct {
	cache *cache.ScanCache
}

func NewTreeBuilder(c *cache.ScanCache) *TreeBuilder {
	return &TreeBuilder{cache: c}
}

// Build walks the tree and returns a flat scan tree: one synthetic root whose
// children are the components to send. Metadata nodes are transparent. On a
// quick scan, components already cached are skipped, but their children are
// still visited - a cached parent says nothing about its children.
//
// Direct dependencies of the project root get a placeholder artifact inserted
// into the cache when included, so that components the service never mentions
// are not rescanned by the next quick scan.
//
// An empty result (root.IsLeaf()) means nothing to scan, not an error.
func (b *TreeBuilder) Build(root *model.DependencyNode, quickScan bool) *model.DependencyNode {
	scanRoot := model.NewDependencyNode(root.ID)

	// Iterative DFS; dependency graphs can be deep enough to make recursion
	// a liability.
	stack := make([]*model.DependencyNode, 0, len(root.Children()))
	push := func(children []*model.DependencyNode) {
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
	push(root.Children())

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if node.Metadata {
			push(node.Children())
			continue
		}

		if quickScan && b.cache.Contains(componentKey(node)) {
			// Cached: skip the node itself but keep descending.
			push(node.Children())
			continue
		}

		if parent := node.Parent(); parent == root || (parent != nil && parent.Metadata) {
			// Direct dependencies must always end up cached, even when the
			// service reports nothing for them.
			key := model.NormalizeComponentID(componentKey(node))
			b.cache.Put(model.NewArtifact(model.GeneralInfo{ComponentID: key}))
		}

		flat := model.NewDependencyNode(node.ComponentID)
		flat.ComponentID = node.ComponentID
		scanRoot.Add(flat)
		push(node.Children())
	}

	return scanRoot
}

func componentKey(node *model.DependencyNode) string {
	if node.ComponentID != "" {
		return node.ComponentID
	}
	return node.ID
}
