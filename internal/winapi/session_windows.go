//go:build windows

package winapi

import "github.com/keketcl/umanager/internal/device"

// Open wires up the Windows adapters behind the device service ports.
// The adapters hold lazily resolved DLL procs and a shared WMI client
// each, so one Session per process is the intended shape.
func Open() (*Session, error) {
	return &Session{
		Directory: NewDirectory(),
		Graph:     NewNodeGraph(),
		Store:     NewPropertyStore(),
		Disks:     NewDiskDirectory(),
	}, nil
}

// Services builds the base and storage services on top of this session's
// adapters. maxAncestorDepth bounds topology walks; values below one use
// the default.
func (s *Session) Services(maxAncestorDepth int) (*device.BaseService, *device.StorageService) {
	topo := device.NewTopologyWithDepth(s.Graph, maxAncestorDepth)
	base := device.NewBaseServiceWithTopology(s.Directory, topo, s.Store)
	storage := device.NewStorageService(base, s.Disks, device.NewEjector(s.Graph, topo))
	return base, storage
}
