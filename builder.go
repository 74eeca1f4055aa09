// SPDX-License-Identifier: MIT
package treeds

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"

	"github.com/clementwanjau/tree-ds/types"
)

type (
	// Builder defines an interface for rows that can be read into a
	// Tree.
	Builder[Q Constraint, T comparable] interface {
		// ID obtains the id stored by the Builder.
		ID() Q
		// Parent obtains the parent id stored by the Builder.
		Parent() types.Option[Q]
		// Value obtains the value stored by the Builder.
		Value() types.Option[T]
	}

	// BuildSource is a wrapper type for []Builder.
	BuildSource[Q Constraint, T comparable] []Builder[Q, T]

	// DefaultBuilder is a sample Builder interface implementation.
	DefaultBuilder[Q Constraint, T comparable] struct {
		parent types.Option[Q]
		value  types.Option[T]
		id     Q
	}
)

// Tree building errors.
var (
	ErrMissingRootNode   = errors.New("missing root node")
	ErrMultipleRootNodes = errors.New("build source has multiple root nodes")

	ErrEmptyBuildSource  = errors.New("empty build source")
	ErrInvalidBuildCache = errors.New("inconsistency between tree and build cache")

	ErrLocateParents = errors.New("unable to locate parent(s)")

	ErrPanicked = errors.New("recovery from panic")
)

// NewDefaultBuilder instantiates a DefaultBuilder row.
func NewDefaultBuilder[Q Constraint, T comparable](id Q, parent types.Option[Q], value types.Option[T]) *DefaultBuilder[Q, T] {
	return &DefaultBuilder[Q, T]{id: id, parent: parent, value: value}
}

// ID obtains the id stored by the DefaultBuilder.
func (d *DefaultBuilder[Q, T]) ID() Q { return d.id }

// Parent obtains the parent id stored by the DefaultBuilder.
func (d *DefaultBuilder[Q, T]) Parent() types.Option[Q] { return d.parent }

// Value obtains the value stored by the DefaultBuilder.
func (d *DefaultBuilder[Q, T]) Value() types.Option[T] { return d.value }

// Cut a row at some index from the BuildSource.
func (b *BuildSource[Q, T]) Cut(index int) {
	upper := index + 1

	// index == 0.
	if index < 1 {
		// length of slice == 0.
		if upper >= len(*b) {
			*b = BuildSource[Q, T]{}
			return
		}

		*b = (*b)[1:]

		return
	}

	(*b) = append((*b)[:index], (*b)[upper:]...)
}

// Build assembles a Tree from the BuildSource's rows, tolerating any
// row order.
func (b *BuildSource[Q, T]) Build(ctx context.Context) (t *Tree[Q, T], err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("failed to build tree: %w", err)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		if err != nil {
			fLogger.Debugf("current tree: %s \nsource remnants: %s", spew.Sprint(t), spew.Sprint(b))
		}
	}()

	cache := make(map[Q]struct{})
	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		if len(*b) < 1 {
			err = ErrEmptyBuildSource
			return
		}

		rootIndex := 0
		for index := range *b {
			if (*b)[index].Parent().IsSome() {
				continue
			}

			// Disallow additional root node(s).
			if t != nil {
				err = ErrMultipleRootNodes
				return
			}

			row := (*b)[index]
			t = New[Q, T]()
			if _, err = t.AddNode(NewNode(row.ID(), row.Value()), types.None[Q]()); err != nil {
				return
			}
			cache[row.ID()] = struct{}{}

			rootIndex = index
		}
		if t == nil {
			err = ErrMissingRootNode
			return
		}

		// Remove the root row.
		prevLen := len(*b)
		fLogger.Debugf("build source: %+v\n", *b)
		b.Cut(rootIndex)
		fLogger.Debugf("build source (less root): %+v\n", *b)

		for {
			lenSrc := len(*b)
			if lenSrc < 1 {
				return
			}

			if lenSrc == prevLen {
				err = fmt.Errorf("%w for: %s", ErrLocateParents, spew.Sprint(b))
				return
			}
			prevLen = lenSrc

			for index := 0; index < lenSrc; index++ {
				row := (*b)[index]
				parentID, ok := row.Parent().Get()
				if !ok {
					continue
				}

				// Parent not yet in the tree.
				if _, ok = cache[parentID]; !ok {
					continue
				}

				if _, err = t.AddNode(NewNode(row.ID(), row.Value()), types.Some(parentID)); err != nil {
					if errors.Is(err, ErrNodeNotFound) {
						// Inconsistency between the cache & tree.
						err = fmt.Errorf("%w: %v", ErrInvalidBuildCache, err)
					}

					return
				}
				cache[row.ID()] = struct{}{}

				b.Cut(index)

				// Allow for unordered BuildSources.
				//
				// Adds extraneous opcodes compared to an ordered
				// BuildSource's operations.
				break
			}
		}
	}
}
