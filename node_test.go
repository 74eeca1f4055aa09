// SPDX-License-Identifier: MIT
package treeds

import (
	"errors"
	"reflect"
	"testing"

	"github.com/clementwanjau/tree-ds/autoid"
	"github.com/clementwanjau/tree-ds/types"
)

func TestNewAutoNode(t *testing.T) {
	gen := autoid.NewSequence()
	conv := func(id uint64) int { return int(id) }

	for want := 1; want <= 3; want++ {
		node := NewAutoNode(gen, conv, types.Some(want*10))
		if got := node.ID(); got != want {
			t.Errorf("NewAutoNode().ID() = %v, want %v", got, want)
		}
	}
}

func TestNode_SetValue(t *testing.T) {
	node := NewNode(1, types.Some("before"))

	if err := node.SetValue(types.Some("after")); err != nil {
		t.Fatalf("Node.SetValue() error = %v, wantErr false", err)
	}

	value, err := node.Value()
	if err != nil {
		t.Fatalf("Node.Value() error = %v, wantErr false", err)
	}
	if got := value.OrZero(); got != "after" {
		t.Errorf("Node.Value() = %v, want %v", got, "after")
	}
}

func TestNode_Update(t *testing.T) {
	type args struct {
		fn func(types.Option[int]) types.Option[int]
	}
	tests := []struct {
		name    string
		node    *Node[int, int]
		args    args
		want    types.Option[int]
		wantErr bool
	}{
		{
			name: "increment",
			node: NewNode(1, types.Some(2)),
			args: args{func(value types.Option[int]) types.Option[int] {
				return types.Some(value.OrZero() + 1)
			}},
			want: types.Some(3),
		},
		{
			name: "clear",
			node: NewNode(1, types.Some(2)),
			args: args{func(types.Option[int]) types.Option[int] {
				return types.None[int]()
			}},
			want: types.None[int](),
		},
		{
			name: "nil operation is a no-op",
			node: NewNode(1, types.Some(2)),
			args: args{nil},
			want: types.Some(2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.node.Update(tt.args.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("Node.Update() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			value, err := tt.node.Value()
			if err != nil {
				t.Errorf("Node.Update()->Node.Value() error = %v, wantErr false", err)
				return
			}
			if !reflect.DeepEqual(value, tt.want) {
				t.Errorf("Node.Update() value = %v, want %v", value, tt.want)
			}
		})
	}
}

func TestNode_Update_reentrant(t *testing.T) {
	node := NewNode(1, types.Some(2))

	err := node.Update(func(value types.Option[int]) types.Option[int] {
		if _, nested := node.Value(); !errors.Is(nested, ErrAccessConflict) {
			t.Errorf("Node.Value() error = %v, want %v", nested, ErrAccessConflict)
		}

		return value
	})
	if err != nil {
		t.Errorf("Node.Update() error = %v, wantErr false", err)
	}
}

func TestNode_AddChild(t *testing.T) {
	parent := NewNode(1, types.Some("root"))

	for _, id := range []int{2, 3, 4} {
		if err := parent.AddChild(NewNode(id, types.Some("leaf"))); err != nil {
			t.Fatalf("Node.AddChild() error = %v, wantErr false", err)
		}
	}

	children, err := parent.ChildIDs()
	if err != nil {
		t.Fatalf("Node.ChildIDs() error = %v, wantErr false", err)
	}
	if want := []int{2, 3, 4}; !reflect.DeepEqual(children, want) {
		t.Errorf("Node.ChildIDs() = %v, want %v", children, want)
	}

	// A repeated id is refused.
	if err = parent.AddChild(NewNode(3, types.None[string]())); !errors.Is(err, ErrAlreadyChild) {
		t.Errorf("Node.AddChild() error = %v, want %v", err, ErrAlreadyChild)
	}
}

func TestNode_RemoveChild(t *testing.T) {
	parent := NewNode(1, types.None[string]())
	child := NewNode(2, types.None[string]())
	stranger := NewNode(9, types.None[string]())

	if err := parent.AddChild(child); err != nil {
		t.Fatalf("Node.AddChild() error = %v, wantErr false", err)
	}

	if err := parent.RemoveChild(child); err != nil {
		t.Fatalf("Node.RemoveChild() error = %v, wantErr false", err)
	}
	children, err := parent.ChildIDs()
	if err != nil {
		t.Fatalf("Node.ChildIDs() error = %v, wantErr false", err)
	}
	if len(children) != 0 {
		t.Errorf("Node.ChildIDs() = %v, want none", children)
	}
	linkage, err := child.ParentID()
	if err != nil {
		t.Fatalf("Node.ParentID() error = %v, wantErr false", err)
	}
	if linkage.IsSome() {
		t.Errorf("Node.ParentID() = %v, want absent", linkage)
	}

	// An unlisted node only has its parent reference cleared.
	if err = parent.RemoveChild(stranger); err != nil {
		t.Errorf("Node.RemoveChild() error = %v, wantErr false", err)
	}
}

func TestNode_SortChildren(t *testing.T) {
	parent := NewNode(1, types.None[int]())
	for _, id := range []int{4, 2, 3} {
		if err := parent.AddChild(NewNode(id, types.None[int]())); err != nil {
			t.Fatalf("Node.AddChild() error = %v, wantErr false", err)
		}
	}

	if err := parent.SortChildren(func(a, b int) int { return a - b }); err != nil {
		t.Fatalf("Node.SortChildren() error = %v, wantErr false", err)
	}

	children, err := parent.ChildIDs()
	if err != nil {
		t.Fatalf("Node.ChildIDs() error = %v, wantErr false", err)
	}
	if want := []int{2, 3, 4}; !reflect.DeepEqual(children, want) {
		t.Errorf("Node.SortChildren() children = %v, want %v", children, want)
	}
}

func TestNode_Equal(t *testing.T) {
	attached := NewNode(1, types.Some(2))
	if err := attached.AddChild(NewNode(5, types.None[int]())); err != nil {
		t.Fatalf("Node.AddChild() error = %v, wantErr false", err)
	}

	type args struct {
		other *Node[int, int]
	}
	tests := []struct {
		name string
		node *Node[int, int]
		args args
		want bool
	}{
		{name: "same id & value", node: NewNode(1, types.Some(2)), args: args{NewNode(1, types.Some(2))}, want: true},
		{name: "different id", node: NewNode(1, types.Some(2)), args: args{NewNode(9, types.Some(2))}},
		{name: "different value", node: NewNode(1, types.Some(2)), args: args{NewNode(1, types.Some(9))}},
		{name: "linkage is not compared", node: NewNode(1, types.Some(2)), args: args{attached}, want: true},
		{name: "nil other", node: NewNode(1, types.Some(2)), args: args{nil}},
		{name: "both nil", args: args{nil}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Equal(tt.args.other); got != tt.want {
				t.Errorf("Node.Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNode_Hash64(t *testing.T) {
	left, right := NewNode(1, types.Some(2)), NewNode(1, types.Some(2))

	leftSum, err := left.Hash64()
	if err != nil {
		t.Fatalf("Node.Hash64() error = %v, wantErr false", err)
	}
	rightSum, err := right.Hash64()
	if err != nil {
		t.Fatalf("Node.Hash64() error = %v, wantErr false", err)
	}
	if leftSum != rightSum {
		t.Errorf("Node.Hash64() = %d & %d for identical records", leftSum, rightSum)
	}

	// Linkage participates in the digest.
	if err = right.AddChild(NewNode(3, types.None[int]())); err != nil {
		t.Fatalf("Node.AddChild() error = %v, wantErr false", err)
	}
	rightSum, err = right.Hash64()
	if err != nil {
		t.Fatalf("Node.Hash64() error = %v, wantErr false", err)
	}
	if leftSum == rightSum {
		t.Errorf("Node.Hash64() = %d for records with differing children", leftSum)
	}
}

func TestNode_String(t *testing.T) {
	tests := []struct {
		name string
		node *Node[int, int]
		want string
	}{
		{name: "present value", node: NewNode(1, types.Some(2)), want: "1: 2"},
		{name: "absent value renders the zero value", node: NewNode(1, types.None[int]()), want: "1: 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.String(); got != tt.want {
				t.Errorf("Node.String() = %v, want %v", got, tt.want)
			}
		})
	}
}
