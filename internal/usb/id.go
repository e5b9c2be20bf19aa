package usb

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DeviceID identifies one device node by its PnP instance id, e.g.
// "USB\VID_0781&PID_5567\AA11". Comparison is case-insensitive because
// Windows treats instance ids as case-preserving but case-insensitive.
type DeviceID struct {
	instanceID string
}

// ParseDeviceID normalizes a raw instance-id string into a DeviceID.
// Doubled backslashes (as produced by some WMI providers) are collapsed.
func ParseDeviceID(raw string) (DeviceID, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), `\\`, `\`)
	if normalized == "" {
		return DeviceID{}, fmt.Errorf("empty device instance id")
	}
	return DeviceID{instanceID: normalized}, nil
}

// MustDeviceID is ParseDeviceID for ids known to be well-formed.
func MustDeviceID(raw string) DeviceID {
	id, err := ParseDeviceID(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func (id DeviceID) InstanceID() string { return id.instanceID }

func (id DeviceID) String() string { return id.instanceID }

func (id DeviceID) Equal(other DeviceID) bool {
	return strings.EqualFold(id.instanceID, other.instanceID)
}

func (id DeviceID) Less(other DeviceID) bool {
	return strings.ToLower(id.instanceID) < strings.ToLower(other.instanceID)
}

// SortDeviceIDs orders ids case-insensitively in place.
func SortDeviceIDs(ids []DeviceID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].Less(ids[j]) })
}

var (
	vidPattern  = regexp.MustCompile(`(?i)VID_([0-9A-F]{4})`)
	pidPattern  = regexp.MustCompile(`(?i)PID_([0-9A-F]{4})`)
	portPattern = regexp.MustCompile(`Port_#(\d+)`)
	hubPattern  = regexp.MustCompile(`Hub_#(\d+)`)
)

// ParsedIDs holds the identifiers recoverable from an instance-id string.
// Fields are nil when the id does not carry the corresponding token.
type ParsedIDs struct {
	VendorID     *string
	ProductID    *string
	SerialNumber *string
}

// ParseInstanceIDs extracts vendor id, product id and serial number from an
// instance id. VID_/PID_ tokens are matched case-insensitively anywhere in
// the string and reported uppercased. The serial number is the last
// backslash-delimited segment, but only for ids of the usual
// class\details\serial shape (three or more segments). Malformed input
// yields nil fields, never an error.
func ParseInstanceIDs(instanceID string) ParsedIDs {
	var parsed ParsedIDs

	if m := vidPattern.FindStringSubmatch(instanceID); m != nil {
		parsed.VendorID = strptr(strings.ToUpper(m[1]))
	}
	if m := pidPattern.FindStringSubmatch(instanceID); m != nil {
		parsed.ProductID = strptr(strings.ToUpper(m[1]))
	}

	normalized := strings.ReplaceAll(instanceID, `\\`, `\`)
	parts := strings.Split(normalized, `\`)
	if len(parts) >= 3 && parts[len(parts)-1] != "" {
		parsed.SerialNumber = strptr(parts[len(parts)-1])
	}

	return parsed
}

// ParseBusPort extracts bus and port numbers from a location-information
// string such as "Port_#0004.Hub_#0001". The hub token maps to the bus
// number, the port token to the port number. Either may be absent.
func ParseBusPort(locationInfo string) (busNumber, portNumber *int) {
	if locationInfo == "" {
		return nil, nil
	}

	if m := hubPattern.FindStringSubmatch(locationInfo); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			busNumber = &n
		}
	}
	if m := portPattern.FindStringSubmatch(locationInfo); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			portNumber = &n
		}
	}

	return busNumber, portNumber
}

func strptr(s string) *string { return &s }
