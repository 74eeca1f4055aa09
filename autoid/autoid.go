// SPDX-License-Identifier: MIT

// Package autoid generates identifiers for nodes created without
// caller-supplied ids.
package autoid

import (
	"sync/atomic"
	"time"

	"github.com/clementwanjau/tree-ds/types"
)

type (
	// Generator yields node identifiers.
	//
	// Implementations are safe for concurrent use.
	Generator interface {
		// Next yields the subsequent identifier.
		Next() uint64
	}

	sequence struct {
		counter types.SafeCounter
	}

	epoch struct {
		last atomic.Uint64
	}
)

// NewSequence creates a Generator counting 1, 2, 3, …
func NewSequence() Generator { return &sequence{} }

// Next implements [Generator].
func (s *sequence) Next() uint64 { return s.counter.Inc() }

// NewEpoch creates a Generator yielding strictly increasing nanosecond epoch
// values; same-instant calls remain unique.
func NewEpoch() Generator { return &epoch{} }

// Next implements [Generator].
func (e *epoch) Next() uint64 {
	for {
		next := uint64(time.Now().UnixNano())
		last := e.last.Load()
		if next <= last {
			next = last + 1
		}

		if e.last.CompareAndSwap(last, next) {
			return next
		}
	}
}
