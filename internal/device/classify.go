package device

import "strings"

// IsUSBCandidate reports whether a device record belongs to the USB class.
// The checks mirror how Windows tags USB hardware: either the instance id
// or the PnP class says USB outright, or one of the hardware/compatible
// ids carries a USB enumerator prefix.
func IsUSBCandidate(rec Record) bool {
	if strings.HasPrefix(rec.InstanceID, "USB") {
		return true
	}

	if rec.PNPClass != nil && strings.EqualFold(*rec.PNPClass, "USB") {
		return true
	}

	for _, hid := range rec.HardwareIDs {
		if strings.HasPrefix(hid, `USB\`) || strings.HasPrefix(hid, `USBSTOR\`) {
			return true
		}
	}

	for _, cid := range rec.CompatibleIDs {
		if strings.HasPrefix(cid, `USB\`) {
			return true
		}
	}

	return false
}

// IsUSBStorage reports whether a record is a USB mass-storage instance:
// its instance id or any hardware id starts with the USBSTOR enumerator.
func IsUSBStorage(rec Record) bool {
	if hasFoldPrefix(rec.InstanceID, `USBSTOR\`) {
		return true
	}
	for _, hid := range rec.HardwareIDs {
		if hasFoldPrefix(hid, `USBSTOR\`) {
			return true
		}
	}
	return false
}

func hasFoldPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
