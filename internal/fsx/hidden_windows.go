//go:build windows

package fsx

import "golang.org/x/sys/windows"

// isHidden checks the FILE_ATTRIBUTE_HIDDEN flag. Unreadable attributes
// count as not hidden.
func isHidden(path, _ string) bool {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return false
	}
	attrs, err := windows.GetFileAttributes(p)
	if err != nil {
		return false
	}
	return attrs&windows.FILE_ATTRIBUTE_HIDDEN != 0
}
