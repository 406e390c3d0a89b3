package rbtree

// Insert adds key to the tree. It reports whether the key was added; inserting
// a key that is already present leaves the tree untouched and returns false.
func (t *Tree) Insert(key int64) bool {
	var parent *Node

	current := t.root

	for current != nil {
		parent = current

		switch {
		case key < current.key:
			current = current.left
		case key > current.key:
			current = current.right
		default:
			return false
		}
	}

	n := &Node{key: key, color: Red, parent: parent}

	switch {
	case parent == nil:
		t.root = n
	case key < parent.key:
		parent.left = n
	default:
		parent.right = n
	}

	t.size++
	t.insertFixup(n)

	return true
}

// insertFixup removes the red-red violation between x and its parent,
// walking upward while recoloring pushes the violation toward the root.
func (t *Tree) insertFixup(x *Node) {
	for x != t.root && x.parent.color == Red {
		var done bool

		x, done = t.insertFixupStep(x)
		if done {
			break
		}
	}

	t.root.color = Black
}

// insertFixupStep handles one level of insert fixup. The parent of x is red,
// so it is not the root and the grandparent exists. It returns the node the
// loop continues from and whether the violation has been resolved.
func (t *Tree) insertFixupStep(x *Node) (*Node, bool) {
	parent := x.parent
	grandparent := parent.parent
	parentIsLeft := parent == grandparent.left
	uncle := childOf(grandparent, !parentIsLeft)

	if colorOf(uncle) == Red {
		parent.color = Black
		uncle.color = Black
		grandparent.color = Red

		return grandparent, false
	}

	// Triangle: x is the inner grandchild. Straighten it into a line.
	if x == childOf(parent, !parentIsLeft) {
		t.rotate(parent, parentIsLeft)
		x, parent = parent, x
	}

	t.rotate(grandparent, !parentIsLeft)
	parent.color, grandparent.color = grandparent.color, parent.color

	return x, true
}
