//go:build windows

package winapi

import (
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/keketcl/umanager/internal/device"
	"github.com/keketcl/umanager/internal/usb"
)

const (
	cmLocateDevnodeNormal = 0x00000000

	// Veto name buffer length, in UTF-16 units. MAX_PATH is enough for
	// the process or service names the PnP manager reports.
	vetoNameLen = 260
)

// nodeGraph implements device.NodeGraph over cfgmgr32.dll. The DLL procs
// are resolved once per adapter instance and reused for every call.
type nodeGraph struct {
	once sync.Once

	locateDevNode   *windows.LazyProc
	getParent       *windows.LazyProc
	getDeviceIDSize *windows.LazyProc
	getDeviceID     *windows.LazyProc
	requestEject    *windows.LazyProc
}

// NewNodeGraph returns the cfgmgr32-backed device topology adapter.
func NewNodeGraph() device.NodeGraph {
	return &nodeGraph{}
}

func (g *nodeGraph) init() {
	g.once.Do(func() {
		dll := windows.NewLazySystemDLL("cfgmgr32.dll")
		g.locateDevNode = dll.NewProc("CM_Locate_DevNodeW")
		g.getParent = dll.NewProc("CM_Get_Parent")
		g.getDeviceIDSize = dll.NewProc("CM_Get_Device_ID_Size")
		g.getDeviceID = dll.NewProc("CM_Get_Device_IDW")
		g.requestEject = dll.NewProc("CM_Request_Device_EjectW")
	})
}

func (g *nodeGraph) Locate(instanceID string) (device.Node, uint32) {
	g.init()

	idPtr, err := windows.UTF16PtrFromString(normalizeInstanceID(instanceID))
	if err != nil {
		return 0, uint32(windows.CR_INVALID_DEVICE_ID)
	}

	var devInst uint32
	ret, _, _ := g.locateDevNode.Call(
		uintptr(unsafe.Pointer(&devInst)),
		uintptr(unsafe.Pointer(idPtr)),
		cmLocateDevnodeNormal,
	)
	return device.Node(devInst), uint32(ret)
}

func (g *nodeGraph) ParentOf(n device.Node) (device.Node, bool) {
	g.init()

	var parent uint32
	ret, _, _ := g.getParent.Call(
		uintptr(unsafe.Pointer(&parent)),
		uintptr(n),
		0,
	)
	if ret != 0 {
		return 0, false
	}
	return device.Node(parent), true
}

func (g *nodeGraph) InstanceIDOf(n device.Node) (string, bool) {
	g.init()

	var size uint32
	ret, _, _ := g.getDeviceIDSize.Call(
		uintptr(unsafe.Pointer(&size)),
		uintptr(n),
		0,
	)
	if ret != 0 || size == 0 {
		return "", false
	}

	buf := make([]uint16, size+1)
	ret, _, _ = g.getDeviceID.Call(
		uintptr(n),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		0,
	)
	if ret != 0 {
		return "", false
	}
	return windows.UTF16ToString(buf), true
}

func (g *nodeGraph) RequestEject(n device.Node) device.EjectOutcome {
	g.init()

	var vetoType uint32
	var vetoName [vetoNameLen]uint16
	ret, _, _ := g.requestEject.Call(
		uintptr(n),
		uintptr(unsafe.Pointer(&vetoType)),
		uintptr(unsafe.Pointer(&vetoName[0])),
		vetoNameLen,
		0,
	)

	outcome := device.EjectOutcome{ConfigRet: uint32(ret)}
	if ret == 0 {
		return outcome
	}

	vt := usb.VetoType(vetoType)
	outcome.VetoType = &vt
	if name := windows.UTF16ToString(vetoName[:]); name != "" {
		outcome.VetoName = &name
	}
	return outcome
}

// normalizeInstanceID collapses the doubled backslashes some providers
// hand back in PNPDeviceID values.
func normalizeInstanceID(instanceID string) string {
	return strings.ReplaceAll(instanceID, `\\`, `\`)
}
