// SPDX-License-Identifier: MIT
package treeds

import (
	"context"
	"fmt"

	"golang.org/x/exp/slices"
)

type (
	// TraversalOrder selects the sequence Traverse yields ids in.
	TraversalOrder uint8

	// inOrderFrame tracks one node's progress through an in-order
	// descent.
	inOrderFrame[Q Constraint] struct {
		children []Q
		id       Q
		index    int
		entered  bool
	}
)

const (
	// OrderPre yields a node before its children.
	OrderPre TraversalOrder = iota
	// OrderPost yields a node after its children.
	OrderPost
	// OrderIn yields a node after its first child's subtree & before
	// the remaining children.
	OrderIn
)

// Traverse lists the ids reachable from startID, sequenced by order;
// repeated ids are kept at their first occurrence.
func (t *Tree[Q, T]) Traverse(ctx context.Context, startID Q, order TraversalOrder) (ids []Q, err error) {
	switch order {
	case OrderPre:
		ids, err = t.preOrder(ctx, startID)
	case OrderPost:
		ids, err = t.postOrder(ctx, startID)
	case OrderIn:
		ids, err = t.inOrder(ctx, startID)
	default:
		err = fmt.Errorf("%w: unknown traversal order (%d)", ErrInvalidOperation, order)
	}
	if err != nil {
		return nil, err
	}

	return dedupFirst(ids), nil
}

// preOrder descends depth-first, yielding parents before children.
func (t *Tree[Q, T]) preOrder(ctx context.Context, startID Q) (ids []Q, err error) {
	stack := []Q{startID}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, id)

		children, cErr := t.childIDs(id)
		if cErr != nil {
			return nil, cErr
		}
		for index := len(children) - 1; index >= 0; index-- {
			stack = append(stack, children[index])
		}
	}

	return
}

// postOrder descends depth-first, yielding children before parents.
func (t *Tree[Q, T]) postOrder(ctx context.Context, startID Q) (ids []Q, err error) {
	stack := []Q{startID}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, id)

		children, cErr := t.childIDs(id)
		if cErr != nil {
			return nil, cErr
		}
		stack = append(stack, children...)
	}
	slices.Reverse(ids)

	return
}

// inOrder emulates the recursive sequencing with explicit frames: a
// node follows its first child's subtree, the remaining children &
// their subtrees follow the node.
func (t *Tree[Q, T]) inOrder(ctx context.Context, startID Q) (ids []Q, err error) {
	stack := []inOrderFrame[Q]{{id: startID}}
	for len(stack) > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		top := &stack[len(stack)-1]

		if !top.entered {
			top.entered = true
			if top.children, err = t.childIDs(top.id); err != nil {
				return nil, err
			}

			if len(top.children) == 0 {
				// A childless start still yields itself.
				if len(stack) == 1 {
					ids = append(ids, top.id)
				}
				stack = stack[:len(stack)-1]

				continue
			}
			stack = append(stack, inOrderFrame[Q]{id: top.children[0]})

			continue
		}

		if top.index == 0 {
			ids = append(ids, top.children[0], top.id)
		}
		if top.index++; top.index < len(top.children) {
			next := top.children[top.index]
			ids = append(ids, next)
			stack = append(stack, inOrderFrame[Q]{id: next})

			continue
		}
		stack = stack[:len(stack)-1]
	}

	return
}

// childIDs resolves id & snapshots its child list.
func (t *Tree[Q, T]) childIDs(id Q) (children []Q, err error) {
	node, err := t.GetNodeByID(id)
	if err != nil {
		return
	}

	return node.ChildIDs()
}

// dedupFirst drops repeated ids, keeping first occurrences in order.
func dedupFirst[Q Constraint](ids []Q) []Q {
	seen := make(map[Q]bool, len(ids))
	deduped := ids[:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
	}

	return deduped
}
