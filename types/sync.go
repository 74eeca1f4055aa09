// SPDX-License-Identifier: MIT
package types

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type (
	// SafeCounter is a thread-safe counter.
	SafeCounter struct {
		m   sync.Mutex
		val uint64
	}
)

const (
	// BufferedErrChanSize is the default capacity for operation error channels.
	BufferedErrChanSize = 5
)

// Synchronization errors.
var (
	ErrInvalidOperationCount = errors.New("invalid operation count")
)

// Inc increments the counter, returning the updated value.
func (c *SafeCounter) Inc() uint64 {
	c.m.Lock()
	defer c.m.Unlock()
	c.val++

	return c.val
}

// Value returns the current value of the counter.
func (c *SafeCounter) Value() uint64 {
	c.m.Lock()
	defer c.m.Unlock()

	return c.val
}

// MonitorChannels accumulates operation errors until done closes, operations
// messages have been consumed or ctx expires.
func MonitorChannels(ctx context.Context, operations int, done chan struct{}, errChan chan error) (err error) {
	if operations < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidOperationCount, operations)
	}

	for index := 0; index < operations; index++ {
		select {
		case <-ctx.Done():
			return accumulate(err, ctx.Err())
		case <-done:
			// Collect errors buffered before completion.
			for {
				select {
				case e := <-errChan:
					err = accumulate(err, e)
				default:
					return
				}
			}
		case e := <-errChan:
			err = accumulate(err, e)
		}
	}

	return
}

// accumulate chains e onto err, the earliest error leading.
func accumulate(err, e error) error {
	if err == nil {
		return e
	}

	return fmt.Errorf("%v, %w", err, e)
}
