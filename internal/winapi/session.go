// Package winapi holds the Windows-specific adapters behind the device
// service ports: WMI for the device and disk directories, cfgmgr32 for the
// node graph, setupapi for registry-backed properties. Other platforms get
// a descriptive error from Open.
package winapi

import "github.com/keketcl/umanager/internal/device"

// Session bundles the platform adapters the device services consume.
type Session struct {
	Directory device.Directory
	Graph     device.NodeGraph
	Store     device.PropertyStore
	Disks     device.DiskDirectory
}
