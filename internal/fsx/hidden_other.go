//go:build !windows

package fsx

import "strings"

func isHidden(_, name string) bool {
	return strings.HasPrefix(name, ".")
}
