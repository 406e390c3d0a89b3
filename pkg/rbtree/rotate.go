package rbtree

/*
	rotateLeft(x):                 rotateRight(x):

	      P            P                 P            P
	      |            |                 |            |
	      x            y                 x            y
	     / \          / \               / \          / \
	    A   y   ->   x   C             y   C   ->   A   x
	       / \      / \               / \              / \
	      B   C    A   B             A   B            B   C
*/

// rotateLeft makes x's right child the root of x's subtree.
// x.right must not be nil. Colors are left untouched.
func (t *Tree) rotateLeft(x *Node) {
	pivot := x.right

	x.right = pivot.left
	if pivot.left != nil {
		pivot.left.parent = x
	}

	t.replaceChild(x.parent, x, pivot)

	pivot.left = x
	x.parent = pivot
}

// rotateRight makes x's left child the root of x's subtree.
// x.left must not be nil. Colors are left untouched.
func (t *Tree) rotateRight(x *Node) {
	pivot := x.left

	x.left = pivot.right
	if pivot.right != nil {
		pivot.right.parent = x
	}

	t.replaceChild(x.parent, x, pivot)

	pivot.right = x
	x.parent = pivot
}

// rotate rotates at n toward the left when toLeft is true, otherwise
// toward the right.
func (t *Tree) rotate(n *Node, toLeft bool) {
	if toLeft {
		t.rotateLeft(n)

		return
	}

	t.rotateRight(n)
}

// replaceChild points the link that held old (parent's child slot, or the
// root when parent is nil) at repl, and sets repl's parent. repl may be nil.
func (t *Tree) replaceChild(parent, old, repl *Node) {
	switch {
	case parent == nil:
		t.root = repl
	case parent.left == old:
		parent.left = repl
	default:
		parent.right = repl
	}

	if repl != nil {
		repl.parent = parent
	}
}
