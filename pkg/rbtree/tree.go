// Package rbtree provides an ordered set of int64 keys backed by a red-black
// tree. Insert, Remove and Search run in O(log N); Traverse emits one record
// per node for rendering the tree as a right-first diagram.
//
// Nodes keep a parent pointer so fixups can walk upward. The parent link is
// never treated as ownership: every node is owned by exactly one left/right
// link (or by the tree as its root), and Teardown walks owning links only.
//
// A Tree is not safe for concurrent use. Callers sharing one tree between
// goroutines must serialize access themselves.
package rbtree

// Color is the color of a red-black tree node.
type Color bool

// Node colors.
const (
	Red   Color = false
	Black Color = true
)

// String returns "red" or "black".
func (c Color) String() string {
	if c == Red {
		return "red"
	}

	return "black"
}

// Node is a handle to one stored key. Handles are only valid until the next
// mutating call on the tree that returned them.
type Node struct {
	key         int64
	color       Color
	left, right *Node
	parent      *Node
}

// Key returns the key stored in the node.
func (n *Node) Key() int64 {
	return n.key
}

// Color returns the node color.
func (n *Node) Color() Color {
	return n.color
}

// Tree is a red-black tree of unique int64 keys.
// The zero value is an empty tree ready to use.
type Tree struct {
	root *Node
	size int
}

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Len returns the number of keys in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node {
	return t.root
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	if t.root == nil {
		return 0
	}

	type frame struct {
		node  *Node
		depth int
	}

	height := 0
	stack := []frame{{node: t.root, depth: 1}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		height = max(height, top.depth)

		if top.node.left != nil {
			stack = append(stack, frame{node: top.node.left, depth: top.depth + 1})
		}

		if top.node.right != nil {
			stack = append(stack, frame{node: top.node.right, depth: top.depth + 1})
		}
	}

	return height
}

// BlackHeight returns the number of black nodes on the path from the root to
// any nil leaf, root included. On a valid tree every such path gives the same
// count, so the leftmost path is used.
func (t *Tree) BlackHeight() int {
	count := 0

	for n := t.root; n != nil; n = n.left {
		if n.color == Black {
			count++
		}
	}

	return count
}

// Teardown releases every node and leaves the tree empty. It returns the
// number of nodes released.
func (t *Tree) Teardown() int {
	released := 0

	stack := []*Node{}
	if t.root != nil {
		stack = append(stack, t.root)
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.left != nil {
			stack = append(stack, n.left)
		}

		if n.right != nil {
			stack = append(stack, n.right)
		}

		release(n)

		released++
	}

	t.root = nil
	t.size = 0

	return released
}

// colorOf reports the color of n, treating nil leaves as black.
func colorOf(n *Node) Color {
	if n == nil {
		return Black
	}

	return n.color
}

// childOf returns the left child when left is true, the right child otherwise.
func childOf(n *Node, left bool) *Node {
	if n == nil {
		return nil
	}

	if left {
		return n.left
	}

	return n.right
}

// release clears all links of a node that has left the tree.
func release(n *Node) {
	n.left = nil
	n.right = nil
	n.parent = nil
}
