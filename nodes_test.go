// SPDX-License-Identifier: MIT
package treeds

import (
	"reflect"
	"testing"

	"github.com/clementwanjau/tree-ds/types"
)

// idList flattens a collection to its ids for comparison.
func idList[Q Constraint, T comparable](l Nodes[Q, T]) (ids []Q) {
	for _, node := range l {
		ids = append(ids, node.ID())
	}

	return
}

func testNodes(ids ...int) Nodes[int, int] {
	l := Nodes[int, int]{}
	for _, id := range ids {
		l.Push(NewNode(id, types.Some(id*10)))
	}

	return l
}

func TestNodes_Remove(t *testing.T) {
	type args struct {
		index int
	}
	tests := []struct {
		name     string
		l        Nodes[int, int]
		args     args
		wantID   int
		wantOk   bool
		wantRest []int
	}{
		{name: "first", l: testNodes(1, 2, 3), args: args{0}, wantID: 1, wantOk: true, wantRest: []int{2, 3}},
		{name: "middle", l: testNodes(1, 2, 3), args: args{1}, wantID: 2, wantOk: true, wantRest: []int{1, 3}},
		{name: "out of range", l: testNodes(1, 2, 3), args: args{7}, wantRest: []int{1, 2, 3}},
		{name: "negative", l: testNodes(1, 2, 3), args: args{-1}, wantRest: []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := tt.l.Remove(tt.args.index)
			if ok != tt.wantOk {
				t.Errorf("Nodes.Remove() ok = %v, want %v", ok, tt.wantOk)
				return
			}
			if ok && node.ID() != tt.wantID {
				t.Errorf("Nodes.Remove() = %v, want %v", node.ID(), tt.wantID)
			}
			if got := idList(tt.l); !reflect.DeepEqual(got, tt.wantRest) {
				t.Errorf("Nodes.Remove() remainder = %v, want %v", got, tt.wantRest)
			}
		})
	}
}

func TestNodes_Retain(t *testing.T) {
	type args struct {
		pred func(*Node[int, int]) bool
	}
	tests := []struct {
		name string
		l    Nodes[int, int]
		args args
		want []int
	}{
		{
			name: "keep even ids",
			l:    testNodes(1, 2, 3, 4),
			args: args{func(node *Node[int, int]) bool { return node.ID()%2 == 0 }},
			want: []int{2, 4},
		},
		{
			name: "keep all",
			l:    testNodes(1, 2),
			args: args{func(*Node[int, int]) bool { return true }},
			want: []int{1, 2},
		},
		{
			name: "keep none",
			l:    testNodes(1, 2),
			args: args{func(*Node[int, int]) bool { return false }},
		},
		{
			name: "nil predicate is a no-op",
			l:    testNodes(1, 2),
			args: args{nil},
			want: []int{1, 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.l.Retain(tt.args.pred)
			if got := idList(tt.l); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Nodes.Retain() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodes_AppendSlice(t *testing.T) {
	l := testNodes(1, 2)
	l.AppendSlice([]*Node[int, int]{NewNode(3, types.Some(30)), NewNode(4, types.Some(40))})

	if got, want := idList(l), []int{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Nodes.AppendSlice() = %v, want %v", got, want)
	}

	l.AppendSlice(nil)
	if got := l.Len(); got != 4 {
		t.Errorf("Nodes.Len() = %v, want %v", got, 4)
	}
}

func TestNodes_All(t *testing.T) {
	l := testNodes(1, 2, 3)

	var visited []int
	l.All(func(index int, node *Node[int, int]) bool {
		visited = append(visited, node.ID())
		return true
	})
	if want := []int{1, 2, 3}; !reflect.DeepEqual(visited, want) {
		t.Errorf("Nodes.All() = %v, want %v", visited, want)
	}

	// A false return stops the visit.
	visited = visited[:0]
	l.All(func(index int, node *Node[int, int]) bool {
		visited = append(visited, node.ID())
		return index < 1
	})
	if want := []int{1, 2}; !reflect.DeepEqual(visited, want) {
		t.Errorf("Nodes.All() = %v, want %v", visited, want)
	}
}

func TestNodes_GetByID(t *testing.T) {
	type args struct {
		id int
	}
	tests := []struct {
		name   string
		l      Nodes[int, int]
		args   args
		wantOk bool
	}{
		{name: "present", l: testNodes(1, 2, 3), args: args{2}, wantOk: true},
		{name: "absent", l: testNodes(1, 2, 3), args: args{9}},
		{name: "empty collection", l: Nodes[int, int]{}, args: args{1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, ok := tt.l.GetByID(tt.args.id)
			if ok != tt.wantOk {
				t.Errorf("Nodes.GetByID() ok = %v, want %v", ok, tt.wantOk)
				return
			}
			if ok && node.ID() != tt.args.id {
				t.Errorf("Nodes.GetByID() = %v, want %v", node.ID(), tt.args.id)
			}
		})
	}
}

func TestNodes_Equal(t *testing.T) {
	type args struct {
		other Nodes[int, int]
	}
	tests := []struct {
		name string
		l    Nodes[int, int]
		args args
		want bool
	}{
		{name: "same ids & values", l: testNodes(1, 2), args: args{testNodes(1, 2)}, want: true},
		{name: "differing order", l: testNodes(1, 2), args: args{testNodes(2, 1)}},
		{name: "differing length", l: testNodes(1, 2), args: args{testNodes(1)}},
		{name: "both empty", l: Nodes[int, int]{}, args: args{Nodes[int, int]{}}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.l.Equal(tt.args.other); got != tt.want {
				t.Errorf("Nodes.Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}
