package usb

// BaseDeviceInfo is an immutable snapshot of one USB device produced by a
// single scan. Nil fields mean the attribute could not be resolved, which
// is common and not an error.
type BaseDeviceInfo struct {
	ID           DeviceID
	VendorID     *string
	ProductID    *string
	Manufacturer *string
	Product      *string
	SerialNumber *string
	BusNumber    *int
	PortNumber   *int
	USBVersion   *string
	SpeedMbps    *float64
	Description  *string
}

// VolumeInfo describes one mounted logical volume on a physical disk.
type VolumeInfo struct {
	DriveLetter *string
	MountPath   *string
	FileSystem  *string
	VolumeLabel *string
	TotalBytes  *uint64
	FreeBytes   *uint64
}

// StorageDeviceInfo is a BaseDeviceInfo joined with its mounted volumes,
// ordered by drive letter. Devices with no mounted volume carry an empty
// list.
type StorageDeviceInfo struct {
	Base    BaseDeviceInfo
	Volumes []VolumeInfo
}

// VetoType is the OS-reported class of resource that refused an eject.
// Values match the Windows PNP_VETO_TYPE enumeration.
type VetoType uint32

const (
	VetoTypeUnknown          VetoType = 0
	VetoLegacyDevice         VetoType = 1
	VetoPendingClose         VetoType = 2
	VetoWindowsApp           VetoType = 3
	VetoWindowsService       VetoType = 4
	VetoOutstandingOpen      VetoType = 5
	VetoDevice               VetoType = 6
	VetoDriver               VetoType = 7
	VetoIllegalDeviceRequest VetoType = 8
	VetoInsufficientPower    VetoType = 9
	VetoNonDisableable       VetoType = 10
	VetoLegacyDriver         VetoType = 11
	VetoInsufficientRights   VetoType = 12
)

var vetoTypeNames = map[VetoType]string{
	VetoTypeUnknown:          "Unknown",
	VetoLegacyDevice:         "LegacyDevice",
	VetoPendingClose:         "PendingClose",
	VetoWindowsApp:           "WindowsApp",
	VetoWindowsService:       "WindowsService",
	VetoOutstandingOpen:      "OutstandingOpen",
	VetoDevice:               "Device",
	VetoDriver:               "Driver",
	VetoIllegalDeviceRequest: "IllegalDeviceRequest",
	VetoInsufficientPower:    "InsufficientPower",
	VetoNonDisableable:       "NonDisableable",
	VetoLegacyDriver:         "LegacyDriver",
	VetoInsufficientRights:   "InsufficientRights",
}

func (v VetoType) String() string {
	if name, ok := vetoTypeNames[v]; ok {
		return name
	}
	return "Unknown"
}

// EjectResult reports the outcome of one eject request. AttemptedInstanceID
// is the node actually ejected, which may be an ancestor of the id the
// caller asked for. ConfigRet is the raw CONFIGRET status of the last
// attempt (zero on success). Veto fields are set only when the OS refused
// the removal because a resource was in use.
type EjectResult struct {
	Success             bool
	AttemptedInstanceID string
	ConfigRet           uint32
	VetoType            *VetoType
	VetoName            *string
}
