package rbtree

import "iter"

// Side tells which link of its ancestor a node hangs from.
type Side uint8

// Node positions.
const (
	SideRoot Side = iota
	SideRight
	SideLeft
)

// String returns "root", "right" or "left".
func (s Side) String() string {
	switch s {
	case SideRight:
		return "right"
	case SideLeft:
		return "left"
	default:
		return "root"
	}
}

// Record describes one node for rendering.
type Record struct {
	Depth int
	Side  Side
	Color Color
	Key   int64
}

// Traverse returns one record per node, right subtree first, then the node,
// then the left subtree. Printed top to bottom this gives a tree diagram
// lying on its side with larger keys above; read bottom to top the keys are
// strictly increasing.
func (t *Tree) Traverse() []Record {
	type frame struct {
		node  *Node
		depth int
		side  Side
	}

	records := make([]Record, 0, t.size)
	stack := []frame{}
	current := frame{node: t.root, side: SideRoot}

	for current.node != nil || len(stack) > 0 {
		for current.node != nil {
			stack = append(stack, current)
			current = frame{node: current.node.right, depth: current.depth + 1, side: SideRight}
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		records = append(records, Record{
			Depth: top.depth,
			Side:  top.side,
			Color: top.node.color,
			Key:   top.node.key,
		})

		current = frame{node: top.node.left, depth: top.depth + 1, side: SideLeft}
	}

	return records
}

// Keys yields the keys in ascending order.
func (t *Tree) Keys() iter.Seq[int64] {
	return func(yield func(int64) bool) {
		stack := []*Node{}
		current := t.root

		for current != nil || len(stack) > 0 {
			for current != nil {
				stack = append(stack, current)
				current = current.left
			}

			current = stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(current.key) {
				return
			}

			current = current.right
		}
	}
}
