// SPDX-License-Identifier: MIT

// Package treeds implements a generic ordered tree whose nodes are
// shared handles linked by id.
//
// A Tree owns an ordered collection of node handles; each node records
// its parent & children by id, so structural queries resolve through
// the tree's lookup table instead of chasing pointers.
package treeds

import (
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"

	"github.com/clementwanjau/tree-ds/types"
)

type (
	// Tree is an ordered hierarchy of shared node handles addressed by id.
	//
	// The zero value is usable; New tags the tree with an optional name.
	Tree[Q Constraint, T comparable] struct {
		name  string
		nodes Nodes[Q, T]
	}

	// RemovalStrategy selects what happens to a removed node's children.
	RemovalStrategy uint8
)

const (
	// RetainChildren reattaches the removed node's children to its parent.
	RetainChildren RemovalStrategy = iota
	// RemoveNodeAndChildren discards the removed node's whole substructure.
	RemoveNodeAndChildren
)

// Core errors.
var (
	// ErrNodeNotFound indicates an id absent from a tree's collection.
	ErrNodeNotFound = errors.New("node not found in the tree")

	// ErrRootPresent indicates an attempt to add a second root node.
	ErrRootPresent = errors.New("root node already present in the tree")

	// ErrAlreadyChild indicates a duplicated parent-child linkage.
	ErrAlreadyChild = errors.New("is a child of")

	// ErrAccessConflict indicates overlapping access to a node's state.
	ErrAccessConflict = errors.New("conflicting access to node state")

	// ErrInvalidOperation indicates an operation the tree's current
	// structure cannot satisfy.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrFmt indicates a failure to format a tree for display.
	ErrFmt = errors.New("format failure")

	ErrNoRootNode  = fmt.Errorf("%w: tree has no root node", ErrInvalidOperation)
	ErrRemoveRoot  = fmt.Errorf("%w: cannot detach the root node's children", ErrInvalidOperation)
	ErrSubtreeRoot = fmt.Errorf("%w: subtree has no root node", ErrInvalidOperation)
)

var fLogger logrus.FieldLogger = logrus.New()

// SetLogger configures the package's logrus.FieldLogger.
func SetLogger(l logrus.FieldLogger) { fLogger = l }

// New instantiates a Tree, tagged with name if given.
func New[Q Constraint, T comparable](name ...string) *Tree[Q, T] {
	t := &Tree[Q, T]{}
	if len(name) > 0 {
		t.name = name[0]
	}

	return t
}

// Name returns the tree's name; "" for an unnamed tree.
func (t *Tree[Q, T]) Name() string { return t.name }

// Rename tags the tree with name.
func (t *Tree[Q, T]) Rename(name string) { t.name = name }

// Nodes returns the tree's handles in insertion order.
//
// The slice is copied but the handles are shared; mutating a handle
// mutates the tree.
func (t *Tree[Q, T]) Nodes() Nodes[Q, T] { return slices.Clone(t.nodes) }

// Len returns the number of nodes in the tree.
func (t *Tree[Q, T]) Len() int { return t.nodes.Len() }

// IsEmpty reports whether the tree holds no nodes.
func (t *Tree[Q, T]) IsEmpty() bool { return t.nodes.IsEmpty() }

// AddNode links node under parent & adds it to the tree, returning the
// added node's id.
//
// A node added without a parent becomes the root; a second such node is
// refused with ErrRootPresent.
func (t *Tree[Q, T]) AddNode(node *Node[Q, T], parent types.Option[Q]) (id Q, err error) {
	id = node.ID()

	if parentID, ok := parent.Get(); ok {
		var parentNode *Node[Q, T]
		if parentNode, err = t.GetNodeByID(parentID); err != nil {
			return
		}
		if err = parentNode.AddChild(node); err != nil {
			return
		}
	} else {
		var root *Node[Q, T]
		if root, err = t.root(); err != nil {
			return
		}
		if root != nil {
			err = fmt.Errorf("(%v) %w", root.ID(), ErrRootPresent)
			return
		}
		if err = node.SetParent(types.None[Q]()); err != nil {
			return
		}
	}

	t.nodes.Push(node)

	return
}

// GetNodeByID returns the handle registered under id.
func (t *Tree[Q, T]) GetNodeByID(id Q) (node *Node[Q, T], err error) {
	node, ok := t.nodes.GetByID(id)
	if !ok {
		err = fmt.Errorf("(%v) %w", id, ErrNodeNotFound)
	}

	return
}

// GetRootNode returns the tree's parentless node.
func (t *Tree[Q, T]) GetRootNode() (node *Node[Q, T], err error) {
	if node, err = t.root(); err != nil {
		return
	}
	if node == nil {
		err = ErrNoRootNode
	}

	return
}

// root scans for the first parentless handle; nil when none exists.
func (t *Tree[Q, T]) root() (node *Node[Q, T], err error) {
	for _, candidate := range t.nodes {
		parent, pErr := candidate.ParentID()
		if pErr != nil {
			return nil, pErr
		}
		if parent.IsNone() {
			return candidate, nil
		}
	}

	return
}

// GetNodeHeight measures the longest downward path from id; a leaf
// measures 0.
func (t *Tree[Q, T]) GetNodeHeight(id Q) (height int, err error) {
	node, err := t.GetNodeByID(id)
	if err != nil {
		return
	}

	// Level-order descent; the last non-empty level fixes the height.
	peers := []*Node[Q, T]{node}
	for height = -1; len(peers) > 0; height++ {
		var next []*Node[Q, T]
		for _, peer := range peers {
			children, cErr := peer.ChildIDs()
			if cErr != nil {
				return 0, cErr
			}
			for _, childID := range children {
				child, gErr := t.GetNodeByID(childID)
				if gErr != nil {
					return 0, gErr
				}
				next = append(next, child)
			}
		}
		peers = next
	}

	return
}

// GetNodeDepth counts the edges from id up to the root.
func (t *Tree[Q, T]) GetNodeDepth(id Q) (depth int, err error) {
	ancestors, err := t.GetAncestorIDs(id)
	if err != nil {
		return
	}
	depth = len(ancestors)

	return
}

// GetAncestorIDs lists the ids on the path from id to the root, nearest
// ancestor first.
func (t *Tree[Q, T]) GetAncestorIDs(id Q) (ancestors []Q, err error) {
	node, err := t.GetNodeByID(id)
	if err != nil {
		return
	}

	for {
		parent, pErr := node.ParentID()
		if pErr != nil {
			return nil, pErr
		}

		parentID, ok := parent.Get()
		if !ok {
			return
		}
		if node, err = t.GetNodeByID(parentID); err != nil {
			return nil, err
		}

		ancestors = append(ancestors, parentID)
	}
}

// GetNodeDegree counts id's children.
func (t *Tree[Q, T]) GetNodeDegree(id Q) (degree int, err error) {
	node, err := t.GetNodeByID(id)
	if err != nil {
		return
	}

	children, err := node.ChildIDs()
	if err != nil {
		return
	}
	degree = len(children)

	return
}

// GetSiblingIDs lists the ids sharing a parent with id, in the parent's
// child order; inclusive keeps id itself in place.  A root node has
// only itself for company.
func (t *Tree[Q, T]) GetSiblingIDs(id Q, inclusive bool) (siblings []Q, err error) {
	node, err := t.GetNodeByID(id)
	if err != nil {
		return
	}

	parent, err := node.ParentID()
	if err != nil {
		return
	}
	parentID, ok := parent.Get()
	if !ok {
		if inclusive {
			return []Q{id}, nil
		}

		return []Q{}, nil
	}

	parentNode, err := t.GetNodeByID(parentID)
	if err != nil {
		return
	}
	children, err := parentNode.ChildIDs()
	if err != nil {
		return
	}
	if inclusive {
		return children, nil
	}

	siblings = make([]Q, 0, len(children))
	for _, childID := range children {
		if childID == id {
			continue
		}
		siblings = append(siblings, childID)
	}

	return
}

// GetHeight measures the tree's height: the root node's height.
func (t *Tree[Q, T]) GetHeight() (height int, err error) {
	root, err := t.GetRootNode()
	if err != nil {
		return
	}

	return t.GetNodeHeight(root.ID())
}

// RemoveNode drops id from the tree per strategy.
func (t *Tree[Q, T]) RemoveNode(id Q, strategy RemovalStrategy) (err error) {
	node, err := t.GetNodeByID(id)
	if err != nil {
		return
	}

	switch strategy {
	case RetainChildren:
		err = t.removeRetainingChildren(node)
	case RemoveNodeAndChildren:
		err = t.removeWithChildren(node)
	default:
		err = fmt.Errorf("%w: unknown removal strategy (%d)", ErrInvalidOperation, strategy)
	}

	return
}

// removeRetainingChildren splices node's children onto its former
// parent, preserving their order.
func (t *Tree[Q, T]) removeRetainingChildren(node *Node[Q, T]) (err error) {
	parent, err := node.ParentID()
	if err != nil {
		return
	}
	parentID, ok := parent.Get()
	if !ok {
		return ErrRemoveRoot
	}

	parentNode, err := t.GetNodeByID(parentID)
	if err != nil {
		return
	}
	if err = parentNode.RemoveChild(node); err != nil {
		return
	}

	children, err := node.ChildIDs()
	if err != nil {
		return
	}
	for _, childID := range children {
		var child *Node[Q, T]
		if child, err = t.GetNodeByID(childID); err != nil {
			return
		}
		if err = parentNode.AddChild(child); err != nil {
			return
		}
	}

	t.drop(node.ID())

	return
}

// removeWithChildren drops node & every node reachable below it.
func (t *Tree[Q, T]) removeWithChildren(node *Node[Q, T]) (err error) {
	parent, err := node.ParentID()
	if err != nil {
		return
	}
	if parentID, ok := parent.Get(); ok {
		var parentNode *Node[Q, T]
		if parentNode, err = t.GetNodeByID(parentID); err != nil {
			return
		}
		if err = parentNode.RemoveChild(node); err != nil {
			return
		}
	}

	id := node.ID()
	doomed := map[Q]bool{id: true}
	queue := []Q{id}
	for len(queue) > 0 {
		currentID := queue[0]
		queue = queue[1:]

		current, gErr := t.GetNodeByID(currentID)
		if gErr != nil {
			return gErr
		}
		children, cErr := current.ChildIDs()
		if cErr != nil {
			return cErr
		}
		for _, childID := range children {
			if doomed[childID] {
				continue
			}
			doomed[childID] = true
			queue = append(queue, childID)
		}
	}

	t.nodes.Retain(func(candidate *Node[Q, T]) bool { return !doomed[candidate.ID()] })
	fLogger.Debugf("removal of (%v) dropped (%d) nodes", id, len(doomed))

	return
}

// drop removes the handle registered under id from the collection.
func (t *Tree[Q, T]) drop(id Q) {
	t.nodes.Retain(func(candidate *Node[Q, T]) bool { return candidate.ID() != id })
}

// Equal compares trees by name & by their collections' order, ids &
// values.
func (t *Tree[Q, T]) Equal(other *Tree[Q, T]) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil {
		return false
	}

	return t.name == other.name && t.nodes.Equal(other.nodes)
}

// Hash64 digests the tree's name & its nodes' structural state.
func (t *Tree[Q, T]) Hash64() (sum uint64, err error) {
	digest := fnv.New64a()
	if _, err = fmt.Fprintf(digest, "%s\x00", t.name); err != nil {
		return
	}

	for _, node := range t.nodes {
		var nodeSum uint64
		if nodeSum, err = node.Hash64(); err != nil {
			return
		}
		if _, err = fmt.Fprintf(digest, "%d\x1f", nodeSum); err != nil {
			return
		}
	}
	sum = digest.Sum64()

	return
}
