// SPDX-License-Identifier: MIT
package treeds

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/clementwanjau/tree-ds/types"
)

type (
	// TraverseComm relays nodes between a walking goroutine & its
	// consumer.
	TraverseComm[Q Constraint, T comparable] struct {
		Node *Node[Q, T]
		Err  error

		// NewPeers marks the first node of a level.
		NewPeers bool
	}
)

// WalkBufferSize is a reasonable capacity for a Walk channel.
const WalkBufferSize = 10

// Walk performs a level-order walk over the tree's linkage, pushing
// each handle to walkChan; the channel is closed once the walk
// completes.
//
// A context.Context terminates the walk operation.
func (t *Tree[Q, T]) Walk(ctx context.Context, walkChan chan TraverseComm[Q, T]) {
	defer close(walkChan)

	select {
	case <-ctx.Done():
		// Received context cancellation.
		return
	default:
		// Default operation is to walk.
		if t.IsEmpty() {
			return
		}

		root, err := t.GetRootNode()
		if err != nil {
			walkChan <- TraverseComm[Q, T]{Err: err}

			return
		}

		// Level order traversal.
		queue := Nodes[Q, T]{root}
		for len(queue) > 0 {
			qLen := len(queue)

			// Iterate over the level's peers.
			newPeers := true
			for ; qLen > 0; qLen-- {
				// Pop from queue.
				var front *Node[Q, T]
				front, queue = queue[0], queue[1:]

				// Send node to caller via the channel.
				select {
				case <-ctx.Done():
					return
				case walkChan <- TraverseComm[Q, T]{Node: front, NewPeers: newPeers}:
				}
				newPeers = false

				// Add children to the queue.
				children, cErr := front.ChildIDs()
				if cErr != nil {
					walkChan <- TraverseComm[Q, T]{Err: cErr}

					return
				}
				for _, childID := range children {
					child, gErr := t.GetNodeByID(childID)
					if gErr != nil {
						walkChan <- TraverseComm[Q, T]{Err: gErr}

						return
					}
					queue = append(queue, child)
				}
			}
		}
	}
}

// Apply runs operation over every handle on an ants goroutine pool of
// the given size; workers below 1 default to runtime.NumCPU().
//
// Failures accumulate with the earliest leading; an expired ctx
// abandons the wait without interrupting operations already running.
func (t *Tree[Q, T]) Apply(ctx context.Context, workers int, operation func(*Node[Q, T]) error) (err error) {
	if operation == nil {
		return fmt.Errorf("%w: nil apply operation", ErrInvalidOperation)
	}

	nodes := t.Nodes()
	if len(nodes) < 1 {
		return
	}

	if workers < 1 {
		workers = runtime.NumCPU()
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return
	}
	defer pool.Release()

	var (
		wg sync.WaitGroup

		done = make(chan struct{})
		// A node contributes at most one message.
		errChan = make(chan error, len(nodes))
	)

	wg.Add(len(nodes))
	for _, node := range nodes {
		node := node
		if sErr := pool.Submit(func() {
			defer wg.Done()

			if ctx.Err() != nil {
				return
			}
			if oErr := operation(node); oErr != nil {
				errChan <- oErr
			}
		}); sErr != nil {
			wg.Done()
			errChan <- sErr
		}
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	return types.MonitorChannels(ctx, len(nodes), done, errChan)
}
