// Package device implements the USB device services: scanning the device
// directory, resolving per-device attributes through the device-node
// topology, joining storage devices to their mounted volumes, and driving
// safe eject. All operating-system access goes through the small
// interfaces below so the services run against fakes in tests and against
// the winapi adapters in production.
package device

import "github.com/keketcl/umanager/internal/usb"

// Record is one present device as reported by the device directory.
// Pointer fields are absent attributes.
type Record struct {
	InstanceID    string
	Name          *string
	Manufacturer  *string
	Description   *string
	Caption       *string
	Service       *string
	PNPClass      *string
	CompatibleIDs []string
	HardwareIDs   []string
}

// Directory enumerates all currently present device records. Calls are
// blocking and expected to run off any latency-sensitive goroutine.
type Directory interface {
	EnumeratePresent() ([]Record, error)
}

// Node is an opaque handle to one node in the device topology. On Windows
// this is a DEVINST.
type Node uint32

// EjectOutcome is the raw result of one eject request against a node.
// ConfigRet zero means the node was ejected.
type EjectOutcome struct {
	ConfigRet uint32
	VetoType  *usb.VetoType
	VetoName  *string
}

// NodeGraph exposes the parent-link structure of the device topology.
type NodeGraph interface {
	// Locate resolves an instance id to a node handle. A non-zero status
	// code means the node could not be found; the handle is then invalid.
	Locate(instanceID string) (Node, uint32)
	ParentOf(n Node) (Node, bool)
	InstanceIDOf(n Node) (string, bool)
	RequestEject(n Node) EjectOutcome
}

// PropertyCode selects a registry-backed device property. Values are the
// Windows SPDRP_* codes.
type PropertyCode uint32

const (
	PropLocationInformation PropertyCode = 0x0000000D // SPDRP_LOCATION_INFORMATION
	PropBusNumber           PropertyCode = 0x00000015 // SPDRP_BUSNUMBER
)

// PropertyStore reads raw registry-backed properties of a device node.
// The second return is false when the node has no such property.
type PropertyStore interface {
	ReadProperty(instanceID string, code PropertyCode) ([]byte, bool)
}

// DiskDrive is one USB physical disk. DeviceID is the provider-specific
// key ("\\.\PHYSICALDRIVE2" on Windows) used to join to partitions;
// InstanceID links it back to the PnP record.
type DiskDrive struct {
	InstanceID string
	DeviceID   string
}

// Partition is one partition of a physical disk.
type Partition struct {
	DeviceID string
}

// LogicalVolume is one logical volume as reported by the disk directory.
// Size and Free are the provider's raw decimal strings; parsing them is the
// caller's problem because providers hand back malformed values in the wild.
type LogicalVolume struct {
	DriveLetter *string
	FileSystem  *string
	Label       *string
	Size        *string
	Free        *string
}

// DiskDirectory walks the disk, partition and logical-volume associations
// for USB mass-storage hardware.
type DiskDirectory interface {
	USBDiskDrives() ([]DiskDrive, error)
	PartitionsOf(d DiskDrive) ([]Partition, error)
	LogicalVolumesOf(p Partition) ([]LogicalVolume, error)
}
