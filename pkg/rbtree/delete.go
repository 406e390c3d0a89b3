package rbtree

// Remove deletes key from the tree. It reports whether the key was present;
// removing an absent key is a no-op.
func (t *Tree) Remove(key int64) bool {
	z, ok := t.Search(key)
	if !ok {
		return false
	}

	t.removeNode(z)
	t.size--

	return true
}

// removeNode splices z out of the tree. A node with two children trades keys
// with its in-order successor, which has no left child, and the successor is
// removed in its place.
func (t *Tree) removeNode(z *Node) {
	y := z
	if z.left != nil && z.right != nil {
		y = findMinimum(z.right)
		z.key = y.key
	}

	x := y.left
	if x == nil {
		x = y.right
	}

	parent := y.parent
	t.replaceChild(parent, y, x)

	if y.color == Black {
		t.removeFixup(x, parent)
	}

	release(y)
}

// findMinimum returns the node with the smallest key in the subtree rooted at n.
func findMinimum(n *Node) *Node {
	for n.left != nil {
		n = n.left
	}

	return n
}

// removeFixup restores uniform black-height after a black node was spliced
// out. x is the node that took its place and carries one extra unit of black;
// it may be nil, so its parent is tracked explicitly.
func (t *Tree) removeFixup(x, parent *Node) {
	for x != t.root && colorOf(x) == Black {
		x, parent = t.removeFixupStep(x, parent)
	}

	if x != nil {
		x.color = Black
	}
}

// removeFixupStep handles one level of the double-black fixup and returns the
// next (x, parent) pair. The sibling of x is never nil here: the path through
// x is one black short, so the sibling's side holds at least one black node.
func (t *Tree) removeFixupStep(x, parent *Node) (*Node, *Node) {
	isLeft := x == parent.left
	sibling := childOf(parent, !isLeft)

	if sibling.color == Red {
		sibling.color = Black
		parent.color = Red
		t.rotate(parent, isLeft)

		sibling = childOf(parent, !isLeft)
	}

	near := childOf(sibling, isLeft)
	far := childOf(sibling, !isLeft)

	if colorOf(near) == Black && colorOf(far) == Black {
		sibling.color = Red

		return parent, parent.parent
	}

	if colorOf(far) == Black {
		near.color = Black
		sibling.color = Red
		t.rotate(sibling, !isLeft)

		sibling = childOf(parent, !isLeft)
		far = childOf(sibling, !isLeft)
	}

	sibling.color = parent.color
	parent.color = Black
	far.color = Black
	t.rotate(parent, isLeft)

	return t.root, nil
}
