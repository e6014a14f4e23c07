package model

// DependencyNode is one node of a project dependency tree. Nodes own their
// children; the parent pointer is a non-owning back-link for ancestor checks.
// Trees are built fresh per scan invocation and discarded after reduction.
type DependencyNode struct {
	// ID is the display identifier of the node (project name, scope name,
	// or component identifier).
	ID string
	// ComponentID is the scheme-prefixed component identifier, empty for
	// organizational nodes.
	ComponentID string
	// Metadata marks organizational nodes (scopes, module groupings) that
	// are not scannable components themselves.
	Metadata bool

	children []*DependencyNode
	parent   *DependencyNode
}

// NewDependencyNode creates a detached node.
func NewDependencyNode(id string) *DependencyNode {
	return &DependencyNode{ID: id}
}

// Add appends child to n and sets its parent back-link.
func (n *DependencyNode) Add(child *DependencyNode) {
	child.parent = n
	n.children = append(n.children, child)
}

// Children returns the ordered child list. Callers must not mutate it.
func (n *DependencyNode) Children() []*DependencyNode {
	return n.children
}

// Parent returns the parent node, nil for the root.
func (n *DependencyNode) Parent() *DependencyNode {
	return n.parent
}

// IsLeaf reports whether the node has no children.
func (n *DependencyNode) IsLeaf() bool {
	return len(n.children) == 0
}
