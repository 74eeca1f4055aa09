// SPDX-License-Identifier: MIT
package treeds

import (
	"fmt"
	"hash/fnv"
	"sync"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/clementwanjau/tree-ds/autoid"
	"github.com/clementwanjau/tree-ds/types"
)

type (
	// Constraint is a wrapper interface containing comparable &
	// constraints.Ordered.
	Constraint interface {
		comparable
		constraints.Ordered
	}

	// Node is a handle on one tree record: an id, an optional payload & the
	// ids linking the record to its parent & children.
	//
	// Handles on the same record share state; a mutation through one handle
	// is visible through every other. Accessors that take the record's lock
	// fail with [ErrAccessConflict] when it is already exclusively held, e.g.
	// a [Node.Update] closure calling back into its own node. Overlapping
	// access from other goroutines reports the same conflict; callers sharing
	// a record across goroutines coordinate externally.
	Node[Q Constraint, T comparable] struct {
		mu sync.RWMutex

		id       Q
		value    types.Option[T]
		children []Q
		parent   types.Option[Q]
	}

	// snapshot is a consistent copy of one record's state.
	snapshot[Q Constraint, T comparable] struct {
		id       Q
		value    types.Option[T]
		children []Q
		parent   types.Option[Q]
	}
)

// NewNode creates an unattached node record.
func NewNode[Q Constraint, T comparable](id Q, value types.Option[T]) *Node[Q, T] {
	return &Node[Q, T]{id: id, value: value}
}

// NewAutoNode creates an unattached node record, sourcing its id from gen
// through the conv conversion.
func NewAutoNode[Q Constraint, T comparable](gen autoid.Generator, conv func(uint64) Q, value types.Option[T]) *Node[Q, T] {
	return NewNode(conv(gen.Next()), value)
}

// ID returns the node's identifier; ids are immutable & read without locking.
func (n *Node[Q, T]) ID() Q { return n.id }

// Value returns the node's payload.
func (n *Node[Q, T]) Value() (value types.Option[T], err error) {
	if !n.mu.TryRLock() {
		err = fmt.Errorf("value of (%v): %w", n.id, ErrAccessConflict)
		return
	}
	value = n.value
	n.mu.RUnlock()

	return
}

// SetValue replaces the node's payload.
func (n *Node[Q, T]) SetValue(value types.Option[T]) (err error) {
	if !n.mu.TryLock() {
		err = fmt.Errorf("set value of (%v): %w", n.id, ErrAccessConflict)
		return
	}
	n.value = value
	n.mu.Unlock()

	return
}

// Update replaces the node's payload with fn's result inside one critical
// section.
//
// fn re-entering the node reports ErrAccessConflict to the re-entrant call.
func (n *Node[Q, T]) Update(fn func(types.Option[T]) types.Option[T]) (err error) {
	if fn == nil {
		return
	}
	if !n.mu.TryLock() {
		err = fmt.Errorf("update value of (%v): %w", n.id, ErrAccessConflict)
		return
	}
	defer n.mu.Unlock()

	n.value = fn(n.value)

	return
}

// ChildIDs returns a copy of the ordered child-id list.
func (n *Node[Q, T]) ChildIDs() (children []Q, err error) {
	if !n.mu.TryRLock() {
		err = fmt.Errorf("children of (%v): %w", n.id, ErrAccessConflict)
		return
	}
	children = slices.Clone(n.children)
	n.mu.RUnlock()

	return
}

// ParentID returns the id of the node's parent, when linked.
func (n *Node[Q, T]) ParentID() (parent types.Option[Q], err error) {
	if !n.mu.TryRLock() {
		err = fmt.Errorf("parent of (%v): %w", n.id, ErrAccessConflict)
		return
	}
	parent = n.parent
	n.mu.RUnlock()

	return
}

// SetParent points the node's parent reference at parent.
//
// Only the reference changes; no child list is edited.
func (n *Node[Q, T]) SetParent(parent types.Option[Q]) (err error) {
	if !n.mu.TryLock() {
		err = fmt.Errorf("set parent of (%v): %w", n.id, ErrAccessConflict)
		return
	}
	n.parent = parent
	n.mu.Unlock()

	return
}

// AddChild appends child's id to the node's child list & points child's
// parent reference at the node.
func (n *Node[Q, T]) AddChild(child *Node[Q, T]) (err error) {
	if !n.mu.TryLock() {
		err = fmt.Errorf("add child to (%v): %w", n.id, ErrAccessConflict)
		return
	}
	defer n.mu.Unlock()

	if slices.Contains(n.children, child.id) {
		err = fmt.Errorf("(%v) %w (%v)", child.id, ErrAlreadyChild, n.id)
		return
	}

	if err = child.SetParent(types.Some(n.id)); err != nil {
		return
	}
	n.children = append(n.children, child.id)

	return
}

// RemoveChild drops child's id from the node's child list & clears child's
// parent reference; an unlisted id only clears the reference.
func (n *Node[Q, T]) RemoveChild(child *Node[Q, T]) (err error) {
	if !n.mu.TryLock() {
		err = fmt.Errorf("remove child of (%v): %w", n.id, ErrAccessConflict)
		return
	}
	defer n.mu.Unlock()

	if index := slices.Index(n.children, child.id); index >= 0 {
		n.children = slices.Delete(n.children, index, index+1)
	}

	return child.SetParent(types.None[Q]())
}

// SortChildren reorders the child-id list by cmp; the child records are
// untouched.
func (n *Node[Q, T]) SortChildren(cmp func(a, b Q) int) (err error) {
	if cmp == nil {
		return
	}
	if !n.mu.TryLock() {
		err = fmt.Errorf("sort children of (%v): %w", n.id, ErrAccessConflict)
		return
	}
	slices.SortStableFunc(n.children, cmp)
	n.mu.Unlock()

	return
}

// Equal reports whether other holds the same id & payload; linkage is not
// compared. A record amid mutation compares unequal.
func (n *Node[Q, T]) Equal(other *Node[Q, T]) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n == other {
		return true
	}

	left, err := n.snapshot()
	if err != nil {
		return false
	}
	right, err := other.snapshot()
	if err != nil {
		return false
	}

	return left.id == right.id && left.value == right.value
}

// Hash64 folds the record's id, payload, child ids & parent id into an
// fnv-1a sum.
func (n *Node[Q, T]) Hash64() (sum uint64, err error) {
	snap, err := n.snapshot()
	if err != nil {
		return
	}

	digest := fnv.New64a()
	value, ok := snap.value.Get()
	fmt.Fprintf(digest, "%v\x00%t\x00%v\x00", snap.id, ok, value)
	for _, child := range snap.children {
		fmt.Fprintf(digest, "%v\x1f", child)
	}
	parent, ok := snap.parent.Get()
	fmt.Fprintf(digest, "\x00%t\x00%v", ok, parent)
	sum = digest.Sum64()

	return
}

// String renders the node as "id: value"; an absent payload renders as T's
// zero value & a record amid mutation renders its id alone.
func (n *Node[Q, T]) String() string {
	snap, err := n.snapshot()
	if err != nil {
		return fmt.Sprint(n.id)
	}

	return nodeLabel(snap)
}

// snapshot copies the record under its read lock.
func (n *Node[Q, T]) snapshot() (snap snapshot[Q, T], err error) {
	if !n.mu.TryRLock() {
		err = fmt.Errorf("read (%v): %w", n.id, ErrAccessConflict)
		return
	}
	snap = snapshot[Q, T]{
		id:       n.id,
		value:    n.value,
		children: slices.Clone(n.children),
		parent:   n.parent,
	}
	n.mu.RUnlock()

	return
}

// nodeLabel renders a record as "id: value".
func nodeLabel[Q Constraint, T comparable](snap snapshot[Q, T]) string {
	return fmt.Sprintf("%v: %v", snap.id, snap.value)
}
