// SPDX-License-Identifier: MIT
package treeds

import (
	"golang.org/x/exp/slices"
)

type (
	// Nodes is an ordered collection of node handles.
	//
	// Insertion order is preserved & ids are not deduplicated; id
	// uniqueness is the caller's contract.
	Nodes[Q Constraint, T comparable] []*Node[Q, T]
)

// NodesFrom copies a handle slice into a collection.
func NodesFrom[Q Constraint, T comparable](nodes []*Node[Q, T]) Nodes[Q, T] {
	return slices.Clone(Nodes[Q, T](nodes))
}

// Push appends a handle to the collection.
func (l *Nodes[Q, T]) Push(node *Node[Q, T]) { *l = append(*l, node) }

// Remove drops the handle at index, preserving order.
func (l *Nodes[Q, T]) Remove(index int) (node *Node[Q, T], ok bool) {
	if index < 0 || index >= len(*l) {
		return
	}
	node, ok = (*l)[index], true
	*l = slices.Delete(*l, index, index+1)

	return
}

// Retain keeps the handles satisfying pred, preserving order.
func (l *Nodes[Q, T]) Retain(pred func(*Node[Q, T]) bool) {
	if pred == nil {
		return
	}

	kept := (*l)[:0]
	for _, node := range *l {
		if pred(node) {
			kept = append(kept, node)
		}
	}
	// Release the dropped handles.
	for index := len(kept); index < len(*l); index++ {
		(*l)[index] = nil
	}
	*l = kept
}

// Append adds other's handles onto the collection.
func (l *Nodes[Q, T]) Append(other Nodes[Q, T]) { *l = append(*l, other...) }

// AppendSlice adds a handle slice onto the collection.
func (l *Nodes[Q, T]) AppendSlice(nodes []*Node[Q, T]) { *l = append(*l, nodes...) }

// Clear empties the collection.
func (l *Nodes[Q, T]) Clear() { *l = nil }

// Get returns the handle at index.
func (l Nodes[Q, T]) Get(index int) (node *Node[Q, T], ok bool) {
	if index < 0 || index >= len(l) {
		return
	}

	return l[index], true
}

// GetByID returns the first handle whose id matches.
func (l Nodes[Q, T]) GetByID(id Q) (node *Node[Q, T], ok bool) {
	for _, candidate := range l {
		if candidate.ID() == id {
			return candidate, true
		}
	}

	return
}

// First returns the earliest-inserted handle.
func (l Nodes[Q, T]) First() (node *Node[Q, T], ok bool) { return l.Get(0) }

// All visits the handles in insertion order until visit returns false.
func (l Nodes[Q, T]) All(visit func(index int, node *Node[Q, T]) bool) {
	for index, node := range l {
		if !visit(index, node) {
			return
		}
	}
}

// Len returns the handle count.
func (l Nodes[Q, T]) Len() int { return len(l) }

// IsEmpty reports whether the collection holds no handles.
func (l Nodes[Q, T]) IsEmpty() bool { return len(l) == 0 }

// Equal compares collections pairwise in order.
func (l Nodes[Q, T]) Equal(other Nodes[Q, T]) bool {
	if len(l) != len(other) {
		return false
	}
	for index := range l {
		if !l[index].Equal(other[index]) {
			return false
		}
	}

	return true
}
