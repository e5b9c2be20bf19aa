package device

import (
	"strings"

	"github.com/keketcl/umanager/internal/usb"
)

const crNoSuchDevnode = 0x0000000D // CR_NO_SUCH_DEVNODE

type fakeDirectory struct {
	records []Record
	err     error
	scans   int
}

func (d *fakeDirectory) EnumeratePresent() ([]Record, error) {
	d.scans++
	if d.err != nil {
		return nil, d.err
	}
	return d.records, nil
}

// fakeGraph is an in-memory device tree. Nodes are registered with an
// instance id and an optional parent id; Locate is case-insensitive like
// the real device manager.
type fakeGraph struct {
	nodes       map[string]Node   // lowercased instance id -> node
	ids         map[Node]string   // node -> instance id
	parents     map[Node]Node     // node -> parent node
	ejects      map[Node]EjectOutcome
	next        Node
	locateCalls int
	ejectCalls  int
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		nodes:   make(map[string]Node),
		ids:     make(map[Node]string),
		parents: make(map[Node]Node),
		ejects:  make(map[Node]EjectOutcome),
	}
}

func (g *fakeGraph) add(instanceID, parentID string) Node {
	g.next++
	n := g.next
	g.nodes[strings.ToLower(instanceID)] = n
	g.ids[n] = instanceID
	if parentID != "" {
		if p, ok := g.nodes[strings.ToLower(parentID)]; ok {
			g.parents[n] = p
		}
	}
	return n
}

func (g *fakeGraph) setEject(instanceID string, outcome EjectOutcome) {
	g.ejects[g.nodes[strings.ToLower(instanceID)]] = outcome
}

func (g *fakeGraph) Locate(instanceID string) (Node, uint32) {
	g.locateCalls++
	n, ok := g.nodes[strings.ToLower(instanceID)]
	if !ok {
		return 0, crNoSuchDevnode
	}
	return n, 0
}

func (g *fakeGraph) ParentOf(n Node) (Node, bool) {
	p, ok := g.parents[n]
	return p, ok
}

func (g *fakeGraph) InstanceIDOf(n Node) (string, bool) {
	id, ok := g.ids[n]
	return id, ok
}

func (g *fakeGraph) RequestEject(n Node) EjectOutcome {
	g.ejectCalls++
	if out, ok := g.ejects[n]; ok {
		return out
	}
	return EjectOutcome{ConfigRet: 0}
}

type fakeStore struct {
	props map[string]map[PropertyCode][]byte // lowercased instance id
	reads int
}

func newFakeStore() *fakeStore {
	return &fakeStore{props: make(map[string]map[PropertyCode][]byte)}
}

func (s *fakeStore) set(instanceID string, code PropertyCode, raw []byte) {
	key := strings.ToLower(instanceID)
	if s.props[key] == nil {
		s.props[key] = make(map[PropertyCode][]byte)
	}
	s.props[key][code] = raw
}

func (s *fakeStore) setString(instanceID string, code PropertyCode, value string) {
	s.set(instanceID, code, encodeUTF16(value))
}

func (s *fakeStore) setDword(instanceID string, code PropertyCode, value uint32) {
	s.set(instanceID, code, []byte{byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24)})
}

func (s *fakeStore) ReadProperty(instanceID string, code PropertyCode) ([]byte, bool) {
	s.reads++
	raw, ok := s.props[strings.ToLower(instanceID)][code]
	return raw, ok
}

func encodeUTF16(s string) []byte {
	var raw []byte
	for _, r := range s {
		raw = append(raw, byte(r), byte(uint16(r)>>8))
	}
	return append(raw, 0, 0)
}

type fakeDisks struct {
	drives     []DiskDrive
	partitions map[string][]Partition     // disk DeviceID
	volumes    map[string][]LogicalVolume // partition DeviceID
}

func newFakeDisks() *fakeDisks {
	return &fakeDisks{
		partitions: make(map[string][]Partition),
		volumes:    make(map[string][]LogicalVolume),
	}
}

func (d *fakeDisks) USBDiskDrives() ([]DiskDrive, error) { return d.drives, nil }

func (d *fakeDisks) PartitionsOf(drive DiskDrive) ([]Partition, error) {
	return d.partitions[drive.DeviceID], nil
}

func (d *fakeDisks) LogicalVolumesOf(p Partition) ([]LogicalVolume, error) {
	return d.volumes[p.DeviceID], nil
}

func strOf(s string) *string { return &s }

func mustID(t interface{ Fatalf(string, ...any) }, raw string) usb.DeviceID {
	id, err := usb.ParseDeviceID(raw)
	if err != nil {
		t.Fatalf("ParseDeviceID(%q): %v", raw, err)
	}
	return id
}
