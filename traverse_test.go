// SPDX-License-Identifier: MIT
package treeds

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/clementwanjau/tree-ds/types"
)

// wideTree builds a two-branch fixture:
//
//	1: 10
//	├── 2: 20
//	│   ├── 4: 40
//	│   └── 5: 50
//	└── 3: 30
//	    └── 6: 60
func wideTree(t *testing.T) *Tree[int, int] {
	t.Helper()

	tree := New[int, int]("Wide Tree")
	for _, row := range []struct {
		id     int
		parent types.Option[int]
	}{
		{1, types.None[int]()},
		{2, types.Some(1)},
		{3, types.Some(1)},
		{4, types.Some(2)},
		{5, types.Some(2)},
		{6, types.Some(3)},
	} {
		if _, err := tree.AddNode(NewNode(row.id, types.Some(row.id*10)), row.parent); err != nil {
			t.Fatalf("Tree.AddNode() error = %v, wantErr false", err)
		}
	}

	return tree
}

func TestTree_Traverse(t *testing.T) {
	tree := wideTree(t)

	type args struct {
		startID int
		order   TraversalOrder
	}
	tests := []struct {
		name    string
		args    args
		want    []int
		wantErr bool
	}{
		{name: "pre-order", args: args{1, OrderPre}, want: []int{1, 2, 4, 5, 3, 6}},
		{name: "post-order", args: args{1, OrderPost}, want: []int{4, 5, 2, 6, 3, 1}},
		{name: "in-order", args: args{1, OrderIn}, want: []int{4, 2, 5, 1, 3, 6}},
		{name: "pre-order below the root", args: args{2, OrderPre}, want: []int{2, 4, 5}},
		{name: "post-order below the root", args: args{3, OrderPost}, want: []int{6, 3}},
		{name: "in-order from a leaf", args: args{4, OrderIn}, want: []int{4}},
		{name: "absent start", args: args{9, OrderPre}, wantErr: true},
		{name: "unknown order", args: args{1, TraversalOrder(7)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tree.Traverse(context.Background(), tt.args.startID, tt.args.order)
			if (err != nil) != tt.wantErr {
				t.Errorf("Tree.Traverse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tree.Traverse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTree_Traverse_sampleTree(t *testing.T) {
	tree := sampleTree(t)

	type args struct {
		order TraversalOrder
	}
	tests := []struct {
		name string
		args args
		want []int
	}{
		{name: "pre-order", args: args{OrderPre}, want: []int{1, 2, 3, 4}},
		{name: "post-order", args: args{OrderPost}, want: []int{3, 4, 2, 1}},
		{name: "in-order", args: args{OrderIn}, want: []int{3, 2, 4, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tree.Traverse(context.Background(), 1, tt.args.order)
			if err != nil {
				t.Errorf("Tree.Traverse() error = %v, wantErr false", err)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tree.Traverse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTree_Traverse_expiredContext(t *testing.T) {
	tree := sampleTree(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, order := range []TraversalOrder{OrderPre, OrderPost, OrderIn} {
		if _, err := tree.Traverse(ctx, 1, order); !errors.Is(err, context.Canceled) {
			t.Errorf("Tree.Traverse() error = %v, want %v", err, context.Canceled)
		}
	}
}

func TestTree_Traverse_invalidOrder(t *testing.T) {
	tree := sampleTree(t)

	if _, err := tree.Traverse(context.Background(), 1, TraversalOrder(7)); !errors.Is(err, ErrInvalidOperation) {
		t.Errorf("Tree.Traverse() error = %v, want %v", err, ErrInvalidOperation)
	}
}
