package rbtree

// Search returns the node holding key and true, or nil and false when the key
// is not in the tree.
func (t *Tree) Search(key int64) (*Node, bool) {
	current := t.root

	for current != nil {
		switch {
		case key < current.key:
			current = current.left
		case key > current.key:
			current = current.right
		default:
			return current, true
		}
	}

	return nil, false
}

// Contains reports whether key is in the tree.
func (t *Tree) Contains(key int64) bool {
	_, ok := t.Search(key)

	return ok
}
