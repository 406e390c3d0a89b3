package rbtree

import (
	"errors"
	"fmt"
)

// Invariant violations reported by Verify.
var (
	ErrRedRoot      = errors.New("root is red")
	ErrRedViolation = errors.New("red node has a red child")
	ErrBlackHeight  = errors.New("black-height differs between subtrees")
	ErrOrder        = errors.New("keys out of order")
	ErrParentLink   = errors.New("parent link does not match child link")
	ErrCount        = errors.New("node count mismatch")
)

// Verify checks the red-black invariants: strict key order, black root, no
// red node with a red child, and equal black-height on every path. It also
// checks that parent links mirror child links and that Len matches the
// number of reachable nodes. It returns nil for a valid tree.
func (t *Tree) Verify() error {
	if t.root == nil {
		if t.size != 0 {
			return fmt.Errorf("%w: empty tree reports %d keys", ErrCount, t.size)
		}

		return nil
	}

	if t.root.parent != nil {
		return fmt.Errorf("%w: root %d has a parent", ErrParentLink, t.root.key)
	}

	if t.root.color == Red {
		return fmt.Errorf("%w: key %d", ErrRedRoot, t.root.key)
	}

	count := 0

	_, err := verifySubtree(t.root, nil, nil, &count)
	if err != nil {
		return err
	}

	if count != t.size {
		return fmt.Errorf("%w: reachable %d, recorded %d", ErrCount, count, t.size)
	}

	return nil
}

// verifySubtree checks the subtree rooted at n, whose keys must lie strictly
// between lo and hi when those are set. It returns the subtree's black-height
// counting the nil leaves.
func verifySubtree(n *Node, lo, hi *int64, count *int) (int, error) {
	if n == nil {
		return 1, nil
	}

	*count++

	if (lo != nil && n.key <= *lo) || (hi != nil && n.key >= *hi) {
		return 0, fmt.Errorf("%w: key %d", ErrOrder, n.key)
	}

	for _, child := range [...]*Node{n.left, n.right} {
		if child == nil {
			continue
		}

		if child.parent != n {
			return 0, fmt.Errorf("%w: child %d of %d", ErrParentLink, child.key, n.key)
		}

		if n.color == Red && child.color == Red {
			return 0, fmt.Errorf("%w: %d -> %d", ErrRedViolation, n.key, child.key)
		}
	}

	leftHeight, err := verifySubtree(n.left, lo, &n.key, count)
	if err != nil {
		return 0, err
	}

	rightHeight, err := verifySubtree(n.right, &n.key, hi, count)
	if err != nil {
		return 0, err
	}

	if leftHeight != rightHeight {
		return 0, fmt.Errorf("%w: at key %d left %d, right %d", ErrBlackHeight, n.key, leftHeight, rightHeight)
	}

	if n.color == Black {
		leftHeight++
	}

	return leftHeight, nil
}
