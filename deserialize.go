// SPDX-License-Identifier: MIT
package treeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/clementwanjau/tree-ds/lexer"
	"github.com/clementwanjau/tree-ds/types"
)

type (
	// nodeProbe reads a record of either form; a nil Children
	// distinguishes the compact form from an empty child list.
	nodeProbe[Q Constraint, T comparable] struct {
		ID       Q               `json:"node_id"`
		Value    types.Option[T] `json:"value"`
		Children *[]Q            `json:"children"`
		Parent   types.Option[Q] `json:"parent"`
	}

	// ParseFunc reconstructs a typed id or value from its line-form
	// token.
	ParseFunc[V any] func(token string) (V, error)
)

// Deserialization errors.
var (
	ErrEmptySource      = errors.New("empty deserialization source")
	ErrInvalidSource    = errors.New("invalid deserialization source")
	ErrExcessValues     = errors.New("the deserialization source has excessive values")
	ErrExcessEndMarkers = errors.New("the deserialization source has excessive end markers")
)

// Unmarshal decodes a JSON document produced by either Marshal mode.
//
// Records lacking a children key have their child lists reconstructed
// by scanning the node array in order for records parented to them.
func (t *Tree[Q, T]) Unmarshal(data []byte) (err error) {
	var doc treeDocument
	if err = json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	probes := make([]nodeProbe[Q, T], 0, len(doc.Nodes))
	for _, raw := range doc.Nodes {
		var probe nodeProbe[Q, T]
		if err = json.Unmarshal(raw, &probe); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}
		probes = append(probes, probe)
	}

	nodes := make(Nodes[Q, T], 0, len(probes))
	for _, probe := range probes {
		node := &Node[Q, T]{id: probe.ID, value: probe.Value, parent: probe.Parent}

		if probe.Children != nil {
			node.children = append([]Q{}, (*probe.Children)...)
		} else {
			// Compact form: recover the list from the array's parent
			// references, in array order.
			for _, peer := range probes {
				if parentID, ok := peer.Parent.Get(); ok && parentID == probe.ID {
					node.children = append(node.children, peer.ID)
				}
			}
		}

		nodes = append(nodes, node)
	}

	t.name = doc.Name
	t.nodes = nodes

	return
}

// UnmarshalJSON decodes a JSON document produced by either Marshal
// mode.
func (t *Tree[Q, T]) UnmarshalJSON(data []byte) error { return t.Unmarshal(data) }

// UnmarshalJSON decodes a lone record of either form; a record without
// a children key reads childless.
func (n *Node[Q, T]) UnmarshalJSON(data []byte) (err error) {
	var probe nodeProbe[Q, T]
	if err = json.Unmarshal(data, &probe); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}

	n.id, n.value, n.parent = probe.ID, probe.Value, probe.Parent
	n.children = nil
	if probe.Children != nil {
		n.children = append([]Q{}, (*probe.Children)...)
	}

	return
}

// Deserialize transforms a serialized line back into a Tree, its ids &
// values reconstructed through the parse functions.
//
// An invalid entry results in a truncated Tree.
func Deserialize[Q Constraint, T comparable](
	ctx context.Context, cfg *lexer.Config, input string,
	parseID ParseFunc[Q], parseValue ParseFunc[T],
) (t *Tree[Q, T], err error) {
	if input == "" {
		err = ErrEmptySource
		return
	}
	if parseID == nil || parseValue == nil {
		err = fmt.Errorf("%w: nil line-form parser", ErrInvalidOperation)
		return
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
		l := lexer.New(cfg, input)
		go l.Lex(ctx)

		t = New[Q, T]()
		if err = t.deserializeLine(ctx, l, parseID, parseValue); err != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidSource, err)
			return nil, err
		}

		diff := l.ValueCounter() - l.EndCounter()
		switch {
		case diff > 0:
			// Excessive values.
			err = fmt.Errorf("%w: +%d", ErrExcessValues, diff)
		case diff < 0:
			// Excessive end markers.
			err = fmt.Errorf("%w: %s +%d", ErrExcessEndMarkers, string(l.EndMarker()), diff*-1)
		default:
			// Valid.
		}
		if err != nil {
			return nil, err
		}

		fLogger.Debugf("deserialized tree of (%d) nodes", t.Len())
	}

	return
}

// deserializeLine performs the deserialization grunt work: each value
// token opens a node under the innermost open node, each end marker
// closes one.
func (t *Tree[Q, T]) deserializeLine(
	ctx context.Context, l *lexer.Lexer,
	parseID ParseFunc[Q], parseValue ParseFunc[T],
) (err error) {
	var open Nodes[Q, T]

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		item, proceed := l.NextItem()
		if !proceed {
			return
		}

		fLogger.Debugf("lexed item: %+v", item)

		switch item.ID {
		case lexer.ItemEOF:
			return
		case lexer.ItemError:
			// Stop input processing.
			return item.Err
		case lexer.ItemSplitter:
			continue
		case lexer.ItemEndMarker:
			if open.Len() > 0 {
				// Innermost node's child list is complete.
				_, _ = open.Remove(open.Len() - 1)
			}

			continue
		}

		var node *Node[Q, T]
		if node, err = parseLineToken[Q, T](item.Val, parseID, parseValue); err != nil {
			return
		}

		parent := types.None[Q]()
		if top, ok := open.Get(open.Len() - 1); ok {
			parent = types.Some(top.ID())
		}
		if _, err = t.AddNode(node, parent); err != nil {
			return
		}

		open.Push(node)
	}
}

// parseLineToken splits an id:value token & reconstructs its record.
func parseLineToken[Q Constraint, T comparable](
	token string, parseID ParseFunc[Q], parseValue ParseFunc[T],
) (node *Node[Q, T], err error) {
	idToken, valueToken, paired := strings.Cut(token, string(lexer.PairMarker))

	id, err := parseID(idToken)
	if err != nil {
		return nil, fmt.Errorf("id token (%s): %w", idToken, err)
	}

	value := types.None[T]()
	if paired {
		var v T
		if v, err = parseValue(valueToken); err != nil {
			return nil, fmt.Errorf("value token (%s): %w", valueToken, err)
		}
		value = types.Some(v)
	}

	return NewNode(id, value), nil
}
