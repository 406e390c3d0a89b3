package rbtree //nolint:testpackage // rotations and Verify failures need hand-built trees.

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// link builds a node and points its children back at it.
func link(key int64, c Color, left, right *Node) *Node {
	n := &Node{key: key, color: c, left: left, right: right}

	if left != nil {
		left.parent = n
	}

	if right != nil {
		right.parent = n
	}

	return n
}

func assertParentLinks(t *testing.T, n *Node) {
	t.Helper()

	if n == nil {
		return
	}

	if n.left != nil {
		assert.Same(t, n, n.left.parent, "left child of %d", n.key)
		assertParentLinks(t, n.left)
	}

	if n.right != nil {
		assert.Same(t, n, n.right.parent, "right child of %d", n.key)
		assertParentLinks(t, n.right)
	}
}

func TestRotateLeftAtRoot(t *testing.T) {
	t.Parallel()

	a := link(5, Black, nil, nil)
	b := link(15, Black, nil, nil)
	c := link(25, Black, nil, nil)
	y := link(20, Red, b, c)
	x := link(10, Black, a, y)
	tree := &Tree{root: x, size: 5}

	tree.rotateLeft(x)

	assert.Same(t, y, tree.root)
	assert.Nil(t, y.parent)
	assert.Same(t, x, y.left)
	assert.Same(t, c, y.right)
	assert.Same(t, a, x.left)
	assert.Same(t, b, x.right)
	assert.Equal(t, Red, y.color)
	assert.Equal(t, Black, x.color)
	assertParentLinks(t, tree.root)

	tree.rotateRight(y)

	assert.Same(t, x, tree.root)
	assert.Same(t, a, x.left)
	assert.Same(t, y, x.right)
	assert.Same(t, b, y.left)
	assert.Same(t, c, y.right)
	assertParentLinks(t, tree.root)
}

func TestRotateUnderParent(t *testing.T) {
	t.Parallel()

	x := link(10, Red, nil, link(20, Black, nil, nil))
	p := link(5, Black, link(1, Black, nil, nil), x)
	tree := &Tree{root: p, size: 4}

	tree.rotate(x, true)

	assert.Same(t, p, tree.root)
	assert.Equal(t, int64(20), p.right.key)
	assert.Same(t, x, p.right.left)
	assert.Nil(t, x.right)
	assertParentLinks(t, tree.root)

	tree.rotate(p.right, false)

	assert.Same(t, x, p.right)
	assert.Equal(t, int64(20), x.right.key)
	assertParentLinks(t, tree.root)
}

func TestFindMinimum(t *testing.T) {
	t.Parallel()

	tree := New()
	for _, k := range []int64{8, 4, 12, 2, 6, 10, 14, 1} {
		tree.Insert(k)
	}

	assert.Equal(t, int64(1), findMinimum(tree.root).key)

	right := tree.root.right
	assert.Equal(t, int64(10), findMinimum(right).key)
}

func TestRemoveReleasesNode(t *testing.T) {
	t.Parallel()

	tree := New()
	for _, k := range []int64{2, 1, 3} {
		tree.Insert(k)
	}

	leaf, ok := tree.Search(3)
	require.True(t, ok)
	require.True(t, tree.Remove(3))

	assert.Nil(t, leaf.parent)
	assert.Nil(t, tree.root.right)
}

func TestVerifyDetectsViolations(t *testing.T) {
	t.Parallel()

	orphan := link(2, Black, link(1, Red, nil, nil), nil)
	orphan.left.parent = nil

	tests := []struct {
		name string
		tree *Tree
		want error
	}{
		{
			name: "RedRoot",
			tree: &Tree{root: link(1, Red, nil, nil), size: 1},
			want: ErrRedRoot,
		},
		{
			name: "RedRed",
			tree: &Tree{root: link(2, Black, link(1, Red, link(0, Red, nil, nil), nil), link(3, Black, nil, nil)), size: 4},
			want: ErrRedViolation,
		},
		{
			name: "BlackHeight",
			tree: &Tree{root: link(2, Black, link(1, Black, nil, nil), nil), size: 2},
			want: ErrBlackHeight,
		},
		{
			name: "Order",
			tree: &Tree{root: link(2, Black, link(3, Red, nil, nil), nil), size: 2},
			want: ErrOrder,
		},
		{
			name: "ParentLink",
			tree: &Tree{root: orphan, size: 2},
			want: ErrParentLink,
		},
		{
			name: "Count",
			tree: &Tree{root: link(1, Black, nil, nil), size: 3},
			want: ErrCount,
		},
		{
			name: "EmptyCount",
			tree: &Tree{size: 1},
			want: ErrCount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.ErrorIs(t, tt.tree.Verify(), tt.want)
		})
	}
}

func TestColorOfNilIsBlack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Black, colorOf(nil))
	assert.Nil(t, childOf(nil, true))
}
