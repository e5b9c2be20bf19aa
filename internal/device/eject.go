package device

import "github.com/keketcl/umanager/internal/usb"

// Ejector drives the ancestor-retry eject protocol. Ejecting the matched
// node itself is often refused (open handles, legacy driver) while
// ejecting its parent hub port succeeds, so the engine walks
// [self, ancestors...] until one attempt goes through.
type Ejector struct {
	graph NodeGraph
	topo  *Topology
}

func NewEjector(graph NodeGraph, topo *Topology) *Ejector {
	return &Ejector{graph: graph, topo: topo}
}

// Eject attempts to eject instanceID, then each ancestor in turn. The
// first zero status ends the walk with success. When every candidate
// fails, the result of the LAST attempt is returned: later ancestors were
// closer to succeeding, so their veto information is the actionable one.
func (e *Ejector) Eject(instanceID string) usb.EjectResult {
	var last usb.EjectResult

	for _, candidate := range e.topo.WithSelfThenAncestors(instanceID) {
		node, ret := e.graph.Locate(candidate)
		if ret != 0 {
			// Unusable node, not a veto. Keep the raw status and move on.
			last = usb.EjectResult{AttemptedInstanceID: candidate, ConfigRet: ret}
			continue
		}

		outcome := e.graph.RequestEject(node)
		if outcome.ConfigRet == 0 {
			return usb.EjectResult{Success: true, AttemptedInstanceID: candidate}
		}

		last = usb.EjectResult{
			AttemptedInstanceID: candidate,
			ConfigRet:           outcome.ConfigRet,
			VetoType:            outcome.VetoType,
			VetoName:            outcome.VetoName,
		}
	}

	return last
}
