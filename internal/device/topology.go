package device

// DefaultMaxAncestorDepth bounds upward walks through the device tree.
// Real topologies are shallow (five levels or so); the cap guards against
// corrupted parent links.
const DefaultMaxAncestorDepth = 10

// Topology walks the parent chain of device nodes by instance id.
type Topology struct {
	graph    NodeGraph
	maxDepth int
}

func NewTopology(graph NodeGraph) *Topology {
	return &Topology{graph: graph, maxDepth: DefaultMaxAncestorDepth}
}

// NewTopologyWithDepth overrides the ancestor depth bound. Depths below one
// fall back to the default.
func NewTopologyWithDepth(graph NodeGraph, maxDepth int) *Topology {
	if maxDepth < 1 {
		maxDepth = DefaultMaxAncestorDepth
	}
	return &Topology{graph: graph, maxDepth: maxDepth}
}

// Ancestors returns the instance ids of the node's ancestors starting at
// the immediate parent, walking upward until a lookup fails, the root is
// reached, or the depth bound is hit. The node itself is never included.
func (t *Topology) Ancestors(instanceID string) []string {
	node, ret := t.graph.Locate(instanceID)
	if ret != 0 {
		return nil
	}

	var ancestors []string
	for depth := 0; depth < t.maxDepth; depth++ {
		parent, ok := t.graph.ParentOf(node)
		if !ok {
			break
		}
		id, ok := t.graph.InstanceIDOf(parent)
		if !ok {
			break
		}
		ancestors = append(ancestors, id)
		node = parent
	}
	return ancestors
}

// WithSelfThenAncestors prepends the node's own id to its ancestor chain.
// Every fallback lookup in this package iterates this order: prefer the
// most specific node's data, reach for parents only on failure.
func (t *Topology) WithSelfThenAncestors(instanceID string) []string {
	return append([]string{instanceID}, t.Ancestors(instanceID)...)
}

// resolveFirst runs attempt over candidates in order and returns the first
// hit. The shared shape behind property fallback and VID/PID fallback.
func resolveFirst[T any](candidates []string, attempt func(id string) (T, bool)) (T, bool) {
	for _, id := range candidates {
		if v, ok := attempt(id); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
