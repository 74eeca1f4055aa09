// SPDX-License-Identifier: MIT
package treeds

import (
	"fmt"

	"github.com/clementwanjau/tree-ds/types"
)

type (
	// subtreeItem pairs a discovered id with its distance from the
	// extraction point.
	subtreeItem[Q Constraint] struct {
		id    Q
		depth int
	}
)

// GetSubtree copies the structure within generations of id into an
// independent fragment named after id; the whole substructure when
// generations is absent.
//
// The fragment's first record is a parentless copy of id's record;
// boundary copies have their child lists trimmed to the fragment's
// members.
func (t *Tree[Q, T]) GetSubtree(id Q, generations types.Option[int]) (sub *Tree[Q, T], err error) {
	if _, err = t.GetNodeByID(id); err != nil {
		return
	}

	limit, bounded := generations.Get()

	// Discover members breadth-first, each exactly once.
	seen := map[Q]bool{id: true}
	order := []Q{id}
	queue := []subtreeItem[Q]{{id: id}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if bounded && item.depth >= limit {
			continue
		}

		children, cErr := t.childIDs(item.id)
		if cErr != nil {
			return nil, cErr
		}
		for _, childID := range children {
			if seen[childID] {
				continue
			}
			seen[childID] = true
			order = append(order, childID)
			queue = append(queue, subtreeItem[Q]{id: childID, depth: item.depth + 1})
		}
	}

	sub = New[Q, T](fmt.Sprint(id))
	for _, memberID := range order {
		var member, clone *Node[Q, T]
		if member, err = t.GetNodeByID(memberID); err != nil {
			return nil, err
		}
		if clone, err = member.cloneFiltered(seen); err != nil {
			return nil, err
		}
		sub.nodes.Push(clone)
	}

	// The fragment's first record stands parentless.
	rootClone, _ := sub.nodes.First()
	if err = rootClone.SetParent(types.None[Q]()); err != nil {
		return nil, err
	}

	return
}

// AddSubtree grafts sub's records under id: the fragment's root becomes
// a child of id & the fragment's collection is drained into the tree's.
//
// Ids are not deduplicated; the caller keeps them unique.
func (t *Tree[Q, T]) AddSubtree(id Q, sub *Tree[Q, T]) (err error) {
	node, err := t.GetNodeByID(id)
	if err != nil {
		return
	}
	if sub == nil {
		return ErrSubtreeRoot
	}

	subRoot, err := sub.root()
	if err != nil {
		return
	}
	if subRoot == nil {
		return ErrSubtreeRoot
	}

	if err = node.AddChild(subRoot); err != nil {
		return
	}

	t.nodes.Append(sub.nodes)
	sub.nodes.Clear()

	return
}

// cloneFiltered copies a record, retaining the child ids keep admits.
func (n *Node[Q, T]) cloneFiltered(keep map[Q]bool) (clone *Node[Q, T], err error) {
	snap, err := n.snapshot()
	if err != nil {
		return
	}

	clone = &Node[Q, T]{id: snap.id, value: snap.value, parent: snap.parent}
	for _, childID := range snap.children {
		if keep[childID] {
			clone.children = append(clone.children, childID)
		}
	}

	return
}
