//go:build windows

package winapi

import (
	"strings"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/keketcl/umanager/internal/device"
)

const (
	digcfPresent    = 0x00000002
	digcfAllClasses = 0x00000004

	invalidHandle = ^uintptr(0)
)

type devInfoData struct {
	Size      uint32
	ClassGUID windows.GUID
	DevInst   uint32
	_         uintptr
}

// propertyStore implements device.PropertyStore over setupapi.dll by
// locating the device in a fresh present-device set and querying its
// registry-backed SPDRP property. Absence (on any failure) is reported as
// not-present, never as an error, matching how callers treat optional
// properties.
type propertyStore struct {
	once sync.Once

	getClassDevs        *windows.LazyProc
	enumDeviceInfo      *windows.LazyProc
	getDeviceInstanceID *windows.LazyProc
	getRegistryProperty *windows.LazyProc
	destroyDeviceInfo   *windows.LazyProc
}

// NewPropertyStore returns the setupapi-backed property adapter.
func NewPropertyStore() device.PropertyStore {
	return &propertyStore{}
}

func (s *propertyStore) init() {
	s.once.Do(func() {
		dll := windows.NewLazySystemDLL("setupapi.dll")
		s.getClassDevs = dll.NewProc("SetupDiGetClassDevsW")
		s.enumDeviceInfo = dll.NewProc("SetupDiEnumDeviceInfo")
		s.getDeviceInstanceID = dll.NewProc("SetupDiGetDeviceInstanceIdW")
		s.getRegistryProperty = dll.NewProc("SetupDiGetDeviceRegistryPropertyW")
		s.destroyDeviceInfo = dll.NewProc("SetupDiDestroyDeviceInfoList")
	})
}

func (s *propertyStore) ReadProperty(instanceID string, code device.PropertyCode) ([]byte, bool) {
	s.init()

	wanted := normalizeInstanceID(instanceID)

	hdevinfo, _, _ := s.getClassDevs.Call(0, 0, 0, digcfPresent|digcfAllClasses)
	if hdevinfo == 0 || hdevinfo == invalidHandle {
		return nil, false
	}
	defer s.destroyDeviceInfo.Call(hdevinfo)

	for index := uintptr(0); ; index++ {
		var data devInfoData
		data.Size = uint32(unsafe.Sizeof(data))
		ok, _, _ := s.enumDeviceInfo.Call(hdevinfo, index, uintptr(unsafe.Pointer(&data)))
		if ok == 0 {
			return nil, false
		}

		currentID, found := s.deviceInstanceID(hdevinfo, &data)
		if !found || !strings.EqualFold(currentID, wanted) {
			continue
		}

		return s.registryProperty(hdevinfo, &data, code)
	}
}

func (s *propertyStore) deviceInstanceID(hdevinfo uintptr, data *devInfoData) (string, bool) {
	var required uint32
	s.getDeviceInstanceID.Call(
		hdevinfo,
		uintptr(unsafe.Pointer(data)),
		0,
		0,
		uintptr(unsafe.Pointer(&required)),
	)
	if required == 0 {
		return "", false
	}

	buf := make([]uint16, required)
	ok, _, _ := s.getDeviceInstanceID.Call(
		hdevinfo,
		uintptr(unsafe.Pointer(data)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(required),
		uintptr(unsafe.Pointer(&required)),
	)
	if ok == 0 {
		return "", false
	}
	return windows.UTF16ToString(buf), true
}

func (s *propertyStore) registryProperty(hdevinfo uintptr, data *devInfoData, code device.PropertyCode) ([]byte, bool) {
	var dataType, required uint32
	s.getRegistryProperty.Call(
		hdevinfo,
		uintptr(unsafe.Pointer(data)),
		uintptr(code),
		uintptr(unsafe.Pointer(&dataType)),
		0,
		0,
		uintptr(unsafe.Pointer(&required)),
	)
	if required == 0 {
		return nil, false
	}

	buf := make([]byte, required)
	ok, _, _ := s.getRegistryProperty.Call(
		hdevinfo,
		uintptr(unsafe.Pointer(data)),
		uintptr(code),
		uintptr(unsafe.Pointer(&dataType)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		uintptr(unsafe.Pointer(&required)),
	)
	if ok == 0 {
		return nil, false
	}
	return buf, true
}
