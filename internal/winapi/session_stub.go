//go:build !windows

package winapi

import (
	"fmt"
	"runtime"

	"github.com/keketcl/umanager/internal/device"
)

// Open fails on non-Windows hosts: the device directory, node graph and
// volume associations all come from Windows-only facilities.
func Open() (*Session, error) {
	return nil, fmt.Errorf("USB device management is not supported on %s", runtime.GOOS)
}

// Services exists so callers compile on every platform; it is unreachable
// because Open never returns a Session here.
func (s *Session) Services(maxAncestorDepth int) (*device.BaseService, *device.StorageService) {
	return nil, nil
}
