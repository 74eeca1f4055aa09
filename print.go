// SPDX-License-Identifier: MIT
package treeds

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type (
	// printItem schedules a display line & the prefix its children
	// inherit.
	printItem[Q Constraint] struct {
		id     Q
		prefix string
		last   bool
	}
)

// Fprint renders the tree's display form to w: a name header when the
// tree is named, then one box-drawing line per node.
func (t *Tree[Q, T]) Fprint(w io.Writer) (err error) {
	if t.name != "" {
		underline := strings.Repeat("*", utf8.RuneCountInString(t.name))
		if _, err = fmt.Fprintf(w, "%s\n%s\n", t.name, underline); err != nil {
			return fmt.Errorf("%w: %v", ErrFmt, err)
		}
	}
	if t.IsEmpty() {
		return
	}

	root, err := t.GetRootNode()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFmt, err)
	}
	rootID := root.ID()

	stack := []printItem[Q]{{id: rootID, last: true}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node, gErr := t.GetNodeByID(item.id)
		if gErr != nil {
			return fmt.Errorf("%w: %v", ErrFmt, gErr)
		}
		snap, sErr := node.snapshot()
		if sErr != nil {
			return fmt.Errorf("%w: %v", ErrFmt, sErr)
		}

		childPrefix := item.prefix
		switch {
		case item.id == rootID:
			_, err = fmt.Fprintf(w, "%s\n", nodeLabel(snap))
		case item.last:
			_, err = fmt.Fprintf(w, "%s└── %s\n", item.prefix, nodeLabel(snap))
			childPrefix += "    "
		default:
			_, err = fmt.Fprintf(w, "%s├── %s\n", item.prefix, nodeLabel(snap))
			childPrefix += "│   "
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFmt, err)
		}

		for index := len(snap.children) - 1; index >= 0; index-- {
			stack = append(stack, printItem[Q]{
				id:     snap.children[index],
				prefix: childPrefix,
				last:   index == len(snap.children)-1,
			})
		}
	}

	return
}

// String renders the tree's display form, best effort; a tree that
// cannot render reads as "".
func (t *Tree[Q, T]) String() string {
	var buffer strings.Builder
	if err := t.Fprint(&buffer); err != nil {
		fLogger.Debugf("tree display: %v", err)

		return ""
	}

	return buffer.String()
}

// MarshalText renders the tree's display form.
func (t *Tree[Q, T]) MarshalText() ([]byte, error) {
	var buffer bytes.Buffer
	if err := t.Fprint(&buffer); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}
