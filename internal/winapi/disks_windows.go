//go:build windows

package winapi

import (
	"fmt"
	"strings"

	"github.com/yusufpapurcu/wmi"

	"github.com/keketcl/umanager/internal/device"
)

type win32DiskDrive struct {
	DeviceID    string
	PNPDeviceID string
}

type win32DiskPartition struct {
	DeviceID string
}

type win32LogicalDisk struct {
	DeviceID   string
	FileSystem string
	VolumeName string
	Size       string
	FreeSpace  string
}

// diskDirectory implements device.DiskDirectory over the WMI disk
// association classes: Win32_DiskDrive joins to Win32_DiskPartition via
// Win32_DiskDriveToDiskPartition, and partitions join to Win32_LogicalDisk
// via Win32_LogicalDiskToPartition.
type diskDirectory struct {
	client *wmi.Client
}

// NewDiskDirectory returns the WMI-backed disk/volume adapter.
func NewDiskDirectory() device.DiskDirectory {
	return &diskDirectory{client: newWMIClient()}
}

func (d *diskDirectory) USBDiskDrives() ([]device.DiskDrive, error) {
	var drives []win32DiskDrive
	query := "SELECT DeviceID, PNPDeviceID FROM Win32_DiskDrive WHERE InterfaceType = 'USB'"
	if err := d.client.Query(query, &drives); err != nil {
		return nil, fmt.Errorf("query Win32_DiskDrive: %w", err)
	}

	out := make([]device.DiskDrive, 0, len(drives))
	for _, drive := range drives {
		if drive.PNPDeviceID == "" || drive.DeviceID == "" {
			continue
		}
		out = append(out, device.DiskDrive{
			InstanceID: normalizeInstanceID(drive.PNPDeviceID),
			DeviceID:   drive.DeviceID,
		})
	}
	return out, nil
}

func (d *diskDirectory) PartitionsOf(drive device.DiskDrive) ([]device.Partition, error) {
	var partitions []win32DiskPartition
	query := fmt.Sprintf(
		"ASSOCIATORS OF {Win32_DiskDrive.DeviceID='%s'} WHERE AssocClass = Win32_DiskDriveToDiskPartition",
		escapeWMI(drive.DeviceID),
	)
	if err := d.client.Query(query, &partitions); err != nil {
		return nil, fmt.Errorf("associate partitions of %s: %w", drive.DeviceID, err)
	}

	out := make([]device.Partition, 0, len(partitions))
	for _, p := range partitions {
		if p.DeviceID != "" {
			out = append(out, device.Partition{DeviceID: p.DeviceID})
		}
	}
	return out, nil
}

func (d *diskDirectory) LogicalVolumesOf(p device.Partition) ([]device.LogicalVolume, error) {
	var disks []win32LogicalDisk
	query := fmt.Sprintf(
		"ASSOCIATORS OF {Win32_DiskPartition.DeviceID='%s'} WHERE AssocClass = Win32_LogicalDiskToPartition",
		escapeWMI(p.DeviceID),
	)
	if err := d.client.Query(query, &disks); err != nil {
		return nil, fmt.Errorf("associate logical disks of %s: %w", p.DeviceID, err)
	}

	out := make([]device.LogicalVolume, 0, len(disks))
	for _, ld := range disks {
		out = append(out, device.LogicalVolume{
			DriveLetter: optional(ld.DeviceID),
			FileSystem:  optional(ld.FileSystem),
			Label:       optional(ld.VolumeName),
			Size:        optional(ld.Size),
			Free:        optional(ld.FreeSpace),
		})
	}
	return out, nil
}

// escapeWMI escapes backslashes and quotes for embedding in a WQL object
// path.
func escapeWMI(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
