package device

import (
	"fmt"
	"reflect"
	"testing"
)

func chainGraph(ids ...string) *fakeGraph {
	g := newFakeGraph()
	parent := ""
	for _, id := range ids {
		g.add(id, parent)
		parent = id
	}
	return g
}

func TestAncestors(t *testing.T) {
	g := chainGraph(`ROOT`, `USB\HUB\1`, `USBSTOR\DISK\2`)
	topo := NewTopology(g)

	got := topo.Ancestors(`USBSTOR\DISK\2`)
	want := []string{`USB\HUB\1`, `ROOT`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Ancestors() = %v, want %v", got, want)
	}
}

func TestAncestorsNeverIncludesSelf(t *testing.T) {
	g := chainGraph(`ROOT`, `USB\LEAF`)
	topo := NewTopology(g)

	for _, id := range topo.Ancestors(`USB\LEAF`) {
		if id == `USB\LEAF` {
			t.Fatalf("Ancestors() included the node itself")
		}
	}
}

func TestAncestorsUnknownNode(t *testing.T) {
	topo := NewTopology(newFakeGraph())
	if got := topo.Ancestors(`USB\MISSING`); got != nil {
		t.Errorf("Ancestors() = %v, want nil", got)
	}
}

func TestAncestorsDepthBound(t *testing.T) {
	// A chain deeper than the bound: the walk must stop at maxDepth.
	ids := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		ids = append(ids, fmt.Sprintf(`NODE\%d`, i))
	}
	g := chainGraph(ids...)
	leaf := ids[len(ids)-1]

	for _, depth := range []int{1, 3, 10} {
		topo := NewTopologyWithDepth(g, depth)
		if got := len(topo.Ancestors(leaf)); got != depth {
			t.Errorf("depth %d: len(Ancestors()) = %d, want %d", depth, got, depth)
		}
	}

	// Default bound is 10.
	if got := len(NewTopology(g).Ancestors(leaf)); got != DefaultMaxAncestorDepth {
		t.Errorf("default: len(Ancestors()) = %d, want %d", got, DefaultMaxAncestorDepth)
	}
}

func TestWithSelfThenAncestors(t *testing.T) {
	g := chainGraph(`ROOT`, `USB\LEAF`)
	topo := NewTopology(g)

	got := topo.WithSelfThenAncestors(`USB\LEAF`)
	want := []string{`USB\LEAF`, `ROOT`}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WithSelfThenAncestors() = %v, want %v", got, want)
	}
}

func TestResolveFirst(t *testing.T) {
	candidates := []string{"a", "b", "c"}
	values := map[string]int{"b": 2, "c": 3}

	got, ok := resolveFirst(candidates, func(id string) (int, bool) {
		v, ok := values[id]
		return v, ok
	})
	if !ok || got != 2 {
		t.Errorf("resolveFirst() = (%d, %v), want (2, true)", got, ok)
	}

	_, ok = resolveFirst(candidates, func(string) (int, bool) { return 0, false })
	if ok {
		t.Errorf("resolveFirst() ok = true, want false when nothing matches")
	}
}
