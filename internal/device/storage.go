package device

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/keketcl/umanager/internal/usb"
)

// StorageService filters the base device cache down to mass-storage
// instances and joins each to its disk -> partition -> logical-volume
// chain. Storage data is always layered on a fresh base scan: Refresh
// forces the base service to refresh first.
type StorageService struct {
	base    *BaseService
	disks   DiskDirectory
	ejector *Ejector
	snap    *storageSnapshot
}

type storageSnapshot struct {
	ids     []usb.DeviceID
	volumes map[string][]usb.VolumeInfo // keyed by lowercased instance id
}

func NewStorageService(base *BaseService, disks DiskDirectory, ejector *Ejector) *StorageService {
	return &StorageService{base: base, disks: disks, ejector: ejector}
}

// Refresh rebuilds the storage snapshot on top of a fresh base scan.
func (s *StorageService) Refresh() error {
	if err := s.base.Refresh(); err != nil {
		return err
	}

	snap := &storageSnapshot{volumes: make(map[string][]usb.VolumeInfo)}

	diskVolumes := make(map[string][]usb.VolumeInfo)
	drives, err := s.disks.USBDiskDrives()
	if err != nil {
		return fmt.Errorf("enumerate usb disk drives: %w", err)
	}
	for _, drive := range drives {
		diskVolumes[strings.ToLower(drive.InstanceID)] = s.volumesForDisk(drive)
	}

	for _, rec := range s.base.Records() {
		if !IsUSBStorage(rec) {
			continue
		}
		id, err := usb.ParseDeviceID(rec.InstanceID)
		if err != nil {
			continue
		}
		key := strings.ToLower(id.InstanceID())
		snap.ids = append(snap.ids, id)
		if vols, ok := diskVolumes[key]; ok {
			snap.volumes[key] = vols
		} else {
			snap.volumes[key] = []usb.VolumeInfo{}
		}
	}
	usb.SortDeviceIDs(snap.ids)

	s.snap = snap
	return nil
}

// ListStorageDeviceIDs returns the cached storage device ids in
// case-insensitive order. Empty until the first Refresh.
func (s *StorageService) ListStorageDeviceIDs() []usb.DeviceID {
	if s.snap == nil {
		return nil
	}
	ids := make([]usb.DeviceID, len(s.snap.ids))
	copy(ids, s.snap.ids)
	return ids
}

func (s *StorageService) contains(id usb.DeviceID) bool {
	if s.snap == nil {
		return false
	}
	_, ok := s.snap.volumes[strings.ToLower(id.InstanceID())]
	return ok
}

// GetStorageDeviceInfo returns the base info joined with the device's
// volume list. ErrNotFound when the id is not a cached storage device.
func (s *StorageService) GetStorageDeviceInfo(id usb.DeviceID) (usb.StorageDeviceInfo, error) {
	if !s.contains(id) {
		return usb.StorageDeviceInfo{}, fmt.Errorf("%w: %s", ErrNotFound, id.InstanceID())
	}

	base, err := s.base.GetDeviceInfo(id)
	if err != nil {
		return usb.StorageDeviceInfo{}, err
	}

	volumes := s.snap.volumes[strings.ToLower(id.InstanceID())]
	out := make([]usb.VolumeInfo, len(volumes))
	copy(out, volumes)

	return usb.StorageDeviceInfo{Base: base, Volumes: out}, nil
}

// EjectDevice runs the eject engine for a cached storage device. On
// success the snapshot is refreshed so subsequent reads no longer see the
// removed device. An id absent from the cache fails fast with ErrNotFound
// before any OS call.
func (s *StorageService) EjectDevice(id usb.DeviceID) (usb.EjectResult, error) {
	if !s.contains(id) {
		return usb.EjectResult{}, fmt.Errorf("%w: %s", ErrNotFound, id.InstanceID())
	}

	result := s.ejector.Eject(id.InstanceID())
	if result.Success {
		if err := s.Refresh(); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *StorageService) volumesForDisk(drive DiskDrive) []usb.VolumeInfo {
	var volumes []usb.VolumeInfo

	partitions, err := s.disks.PartitionsOf(drive)
	if err != nil {
		partitions = nil
	}
	for _, part := range partitions {
		logical, err := s.disks.LogicalVolumesOf(part)
		if err != nil {
			continue
		}
		for _, lv := range logical {
			volumes = append(volumes, volumeInfo(lv))
		}
	}

	sort.Slice(volumes, func(i, j int) bool {
		return strings.ToLower(deref(volumes[i].DriveLetter)) < strings.ToLower(deref(volumes[j].DriveLetter))
	})
	return volumes
}

func volumeInfo(lv LogicalVolume) usb.VolumeInfo {
	info := usb.VolumeInfo{
		DriveLetter: lv.DriveLetter,
		FileSystem:  lv.FileSystem,
		VolumeLabel: lv.Label,
		TotalBytes:  parseByteCount(lv.Size),
		FreeBytes:   parseByteCount(lv.Free),
	}
	// A free count above the capacity is provider garbage.
	if info.TotalBytes != nil && info.FreeBytes != nil && *info.FreeBytes > *info.TotalBytes {
		info.FreeBytes = nil
	}
	if lv.DriveLetter != nil {
		mount := *lv.DriveLetter + `\`
		info.MountPath = &mount
	}
	return info
}

// parseByteCount parses the provider's decimal size string. Non-numeric
// input degrades to nil.
func parseByteCount(raw *string) *uint64 {
	if raw == nil {
		return nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
