package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDependencyNodeParentAndLeaf(t *testing.T) {
	root := NewDependencyNode("project")
	child := NewDependencyNode("left-pad:1.3.0")
	root.Add(child)

	assert.Same(t, root, child.Parent())
	assert.Nil(t, root.Parent())
	assert.False(t, root.IsLeaf())
	assert.True(t, child.IsLeaf())
	assert.Len(t, root.Children(), 1)
}
