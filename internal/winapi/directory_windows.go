//go:build windows

package winapi

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"

	"github.com/keketcl/umanager/internal/device"
)

// win32PnPEntity mirrors the Win32_PnPEntity WMI class fields the device
// directory needs. NULL values are left at the zero value.
type win32PnPEntity struct {
	PNPDeviceID  string
	Name         string
	Manufacturer string
	Description  string
	Caption      string
	Service      string
	PNPClass     string
	CompatibleID []string
	HardwareID   []string
}

// directory implements device.Directory over the WMI Win32_PnPEntity
// class. One wmi.Client is shared by every scan through this adapter.
type directory struct {
	client *wmi.Client
}

// NewDirectory returns the WMI-backed device directory adapter.
func NewDirectory() device.Directory {
	return &directory{client: newWMIClient()}
}

func newWMIClient() *wmi.Client {
	return &wmi.Client{
		NonePtrZero:        true,
		AllowMissingFields: true,
	}
}

func (d *directory) EnumeratePresent() ([]device.Record, error) {
	var entities []win32PnPEntity
	query := "SELECT PNPDeviceID, Name, Manufacturer, Description, Caption, Service, PNPClass, CompatibleID, HardwareID FROM Win32_PnPEntity"
	if err := d.client.Query(query, &entities); err != nil {
		return nil, fmt.Errorf("query Win32_PnPEntity: %w", err)
	}

	records := make([]device.Record, 0, len(entities))
	for _, e := range entities {
		if e.PNPDeviceID == "" {
			continue
		}
		records = append(records, device.Record{
			InstanceID:    e.PNPDeviceID,
			Name:          optional(e.Name),
			Manufacturer:  optional(e.Manufacturer),
			Description:   optional(e.Description),
			Caption:       optional(e.Caption),
			Service:       optional(e.Service),
			PNPClass:      optional(e.PNPClass),
			CompatibleIDs: e.CompatibleID,
			HardwareIDs:   e.HardwareID,
		})
	}
	return records, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
