package device

import (
	"errors"
	"fmt"
	"strings"

	"github.com/keketcl/umanager/internal/usb"
)

// ErrNotFound reports that the requested device id is absent from the
// current cache. Callers recover by refreshing and retrying.
var ErrNotFound = errors.New("device not found")

// BaseService owns the scan-then-cache lifecycle over the device
// directory. The cache is a copy-on-write snapshot: Refresh builds a new
// one and swaps the pointer, it is never mutated in place. The service is
// not internally synchronized; callers serialize one mutator at a time.
type BaseService struct {
	dir   Directory
	topo  *Topology
	props *Properties
	snap  *baseSnapshot
}

type baseSnapshot struct {
	ids     []usb.DeviceID
	records map[string]Record // keyed by lowercased instance id
}

func NewBaseService(dir Directory, graph NodeGraph, store PropertyStore) *BaseService {
	return NewBaseServiceWithTopology(dir, NewTopology(graph), store)
}

// NewBaseServiceWithTopology lets the caller share one Topology (with its
// depth bound) between the base service and the eject engine.
func NewBaseServiceWithTopology(dir Directory, topo *Topology, store PropertyStore) *BaseService {
	return &BaseService{
		dir:   dir,
		topo:  topo,
		props: NewProperties(store, topo),
	}
}

// Refresh rescans the device directory and replaces the cached snapshot.
// Until it completes, readers keep seeing the previous snapshot.
func (s *BaseService) Refresh() error {
	records, err := s.dir.EnumeratePresent()
	if err != nil {
		return fmt.Errorf("enumerate devices: %w", err)
	}

	snap := &baseSnapshot{records: make(map[string]Record)}
	for _, rec := range records {
		if rec.InstanceID == "" || !IsUSBCandidate(rec) {
			continue
		}
		id, err := usb.ParseDeviceID(rec.InstanceID)
		if err != nil {
			continue
		}
		key := strings.ToLower(id.InstanceID())
		if _, dup := snap.records[key]; dup {
			continue
		}
		snap.records[key] = rec
		snap.ids = append(snap.ids, id)
	}
	usb.SortDeviceIDs(snap.ids)

	s.snap = snap
	return nil
}

// ListDeviceIDs returns the cached USB device ids in case-insensitive
// order. Empty until the first Refresh.
func (s *BaseService) ListDeviceIDs() []usb.DeviceID {
	if s.snap == nil {
		return nil
	}
	ids := make([]usb.DeviceID, len(s.snap.ids))
	copy(ids, s.snap.ids)
	return ids
}

// Records returns the cached classified records of the current snapshot.
// The storage service joins against these.
func (s *BaseService) Records() []Record {
	if s.snap == nil {
		return nil
	}
	records := make([]Record, 0, len(s.snap.ids))
	for _, id := range s.snap.ids {
		records = append(records, s.snap.records[strings.ToLower(id.InstanceID())])
	}
	return records
}

func (s *BaseService) lookup(id usb.DeviceID) (Record, bool) {
	if s.snap == nil {
		return Record{}, false
	}
	rec, ok := s.snap.records[strings.ToLower(id.InstanceID())]
	return rec, ok
}

// GetDeviceInfo assembles the full info snapshot for one cached device.
// Returns ErrNotFound when the id is not in the current cache.
func (s *BaseService) GetDeviceInfo(id usb.DeviceID) (usb.BaseDeviceInfo, error) {
	rec, ok := s.lookup(id)
	if !ok {
		return usb.BaseDeviceInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id.InstanceID())
	}

	parsed := usb.ParseInstanceIDs(id.InstanceID())
	vendorID, productID := s.resolveVendorProduct(id.InstanceID(), parsed)

	locationInfo := s.props.StringWithAncestors(id.InstanceID(), PropLocationInformation)
	busFromLocation, portNumber := usb.ParseBusPort(deref(locationInfo))

	// The dedicated bus-number property wins over the Hub_# token from
	// the location string.
	busNumber := busFromLocation
	if dw := s.props.DwordWithAncestors(id.InstanceID(), PropBusNumber); dw != nil {
		n := int(*dw)
		busNumber = &n
	}

	// Speed is a per-node fact: only the matched record's own strings are
	// inspected, no ancestor fallback.
	version, speed := usb.InferSpeed(
		rec.CompatibleIDs,
		deref(rec.Service),
		deref(rec.Name),
		deref(rec.Description),
		deref(rec.Caption),
	)

	description := rec.Description
	if description == nil {
		description = rec.Name
	}

	return usb.BaseDeviceInfo{
		ID:           id,
		VendorID:     vendorID,
		ProductID:    productID,
		Manufacturer: rec.Manufacturer,
		Product:      rec.Name,
		SerialNumber: parsed.SerialNumber,
		BusNumber:    busNumber,
		PortNumber:   portNumber,
		USBVersion:   version,
		SpeedMbps:    speed,
		Description:  description,
	}, nil
}

// resolveVendorProduct fills missing VID/PID tokens by parsing ancestor
// instance ids. Composite and hub-bridged devices often only advertise
// them on an ancestor node.
func (s *BaseService) resolveVendorProduct(instanceID string, parsed usb.ParsedIDs) (vendorID, productID *string) {
	vendorID, productID = parsed.VendorID, parsed.ProductID
	if vendorID != nil && productID != nil {
		return vendorID, productID
	}

	for _, ancestorID := range s.topo.Ancestors(instanceID) {
		p := usb.ParseInstanceIDs(ancestorID)
		if vendorID == nil {
			vendorID = p.VendorID
		}
		if productID == nil {
			productID = p.ProductID
		}
		if vendorID != nil && productID != nil {
			break
		}
	}
	return vendorID, productID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
