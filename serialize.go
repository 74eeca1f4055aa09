// SPDX-License-Identifier: MIT
package treeds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/clementwanjau/tree-ds/lexer"
	"github.com/clementwanjau/tree-ds/types"
)

type (
	// SerdeMode selects the JSON record form Marshal emits.
	SerdeMode uint8

	// nodeRecord is a node's full JSON form; field order is part of the
	// format.
	nodeRecord[Q Constraint, T comparable] struct {
		ID       Q               `json:"node_id"`
		Value    types.Option[T] `json:"value"`
		Children []Q             `json:"children"`
		Parent   types.Option[Q] `json:"parent"`
	}

	// compactRecord drops the child list; linkage is implied by the
	// parent references.
	compactRecord[Q Constraint, T comparable] struct {
		ID     Q               `json:"node_id"`
		Value  types.Option[T] `json:"value"`
		Parent types.Option[Q] `json:"parent"`
	}

	// treeDocument is the envelope for a tree's JSON form.
	treeDocument struct {
		Name  string            `json:"name,omitempty"`
		Nodes []json.RawMessage `json:"nodes"`
	}

	// serItem schedules a line-form emission.
	serItem[Q Constraint] struct {
		id    Q
		close bool
	}

	// serToken relays an emitted token or a failure.
	serToken struct {
		err   error
		value string
	}
)

const (
	// ModeFull emits records with explicit child lists.
	ModeFull SerdeMode = iota
	// ModeCompact omits child lists from the records.
	ModeCompact
)

const serializeBufferSize = 10

// Marshal encodes the tree as JSON, its records in collection order &
// shaped per mode.
func (t *Tree[Q, T]) Marshal(mode SerdeMode) (data []byte, err error) {
	records := make([]json.RawMessage, 0, t.nodes.Len())
	for _, node := range t.nodes {
		var raw json.RawMessage
		if raw, err = node.marshalRecord(mode); err != nil {
			return nil, err
		}
		records = append(records, raw)
	}

	return json.Marshal(treeDocument{Name: t.name, Nodes: records})
}

// MarshalJSON encodes the tree in the full record form.
func (t *Tree[Q, T]) MarshalJSON() ([]byte, error) { return t.Marshal(ModeFull) }

// MarshalJSON encodes the record in its full form.
func (n *Node[Q, T]) MarshalJSON() ([]byte, error) { return n.marshalRecord(ModeFull) }

// marshalRecord encodes the record per mode.
func (n *Node[Q, T]) marshalRecord(mode SerdeMode) (data []byte, err error) {
	snap, err := n.snapshot()
	if err != nil {
		return
	}

	switch mode {
	case ModeFull:
		children := snap.children
		if children == nil {
			// An empty child list reads [], not null.
			children = []Q{}
		}

		return json.Marshal(nodeRecord[Q, T]{
			ID:       snap.id,
			Value:    snap.value,
			Children: children,
			Parent:   snap.parent,
		})
	case ModeCompact:
		return json.Marshal(compactRecord[Q, T]{ID: snap.id, Value: snap.value, Parent: snap.parent})
	default:
		return nil, fmt.Errorf("%w: unknown serialization mode (%d)", ErrInvalidOperation, mode)
	}
}

// Serialize transforms a Tree into a single-line string of id:value
// tokens, children split by cfg.Splitter & closed by cfg.EndMarker.
//
// Only token-safe ids & values survive a round trip; the tree's name is
// not encoded.
func (t *Tree[Q, T]) Serialize(ctx context.Context, cfg *lexer.Config) (output string, err error) {
	if cfg == nil {
		cfg = lexer.DefaultConfig()
	}
	cfg.Validate()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	serChan := make(chan serToken, serializeBufferSize)
	go t.serializeLine(ctx, cfg, serChan)

	// Handle the root's token.
	first, fProceed := <-serChan
	if !fProceed {
		return
	}
	if first.err != nil {
		return "", first.err
	}

	var buffer strings.Builder
	if _, err = buffer.WriteString(first.value); err != nil {
		// Invalidate serialization output.
		return
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		for token := range serChan {
			if token.err != nil {
				return "", token.err
			}

			if token.value != string(cfg.EndMarker) {
				if _, err = buffer.WriteString(string(cfg.Splitter)); err != nil {
					return
				}
			}
			if _, err = buffer.WriteString(token.value); err != nil {
				// Invalidate serialization output.
				return
			}
		}
		// A cancelled walker closes the stream mid-line; discard the
		// partial output.
		if err = ctx.Err(); err != nil {
			return "", err
		}

		output = buffer.String()
	}

	return
}

// serializeLine performs the serialization grunt work: a pre-order
// emission with an end marker closing each node's child list.
func (t *Tree[Q, T]) serializeLine(ctx context.Context, cfg *lexer.Config, serChan chan serToken) {
	defer close(serChan)

	root, err := t.root()
	if err != nil {
		serChan <- serToken{err: err}

		return
	}
	if root == nil {
		// An empty tree serializes to nothing.
		if !t.IsEmpty() {
			serChan <- serToken{err: ErrNoRootNode}
		}

		return
	}

	stack := []serItem[Q]{{id: root.ID()}}
	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if item.close {
			select {
			case <-ctx.Done():
				return
			case serChan <- serToken{value: string(cfg.EndMarker)}:
			}

			continue
		}

		node, gErr := t.GetNodeByID(item.id)
		if gErr != nil {
			serChan <- serToken{err: gErr}

			return
		}
		snap, sErr := node.snapshot()
		if sErr != nil {
			serChan <- serToken{err: sErr}

			return
		}

		select {
		case <-ctx.Done():
			return
		case serChan <- serToken{value: lineToken(snap)}:
		}

		stack = append(stack, serItem[Q]{close: true})
		for index := len(snap.children) - 1; index >= 0; index-- {
			stack = append(stack, serItem[Q]{id: snap.children[index]})
		}
	}
}

// lineToken renders a record's id:value token; bare id when the value
// is absent.
func lineToken[Q Constraint, T comparable](snap snapshot[Q, T]) string {
	value, ok := snap.value.Get()
	if !ok {
		return fmt.Sprint(snap.id)
	}

	return fmt.Sprintf("%v%c%v", snap.id, lexer.PairMarker, value)
}
