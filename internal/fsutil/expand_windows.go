//go:build windows

package fsutil

import "golang.org/x/sys/windows/registry"

// expandVars resolves %VAR% references the way REG_EXPAND_SZ values are
// resolved by the system. Unexpandable input is returned unchanged.
func expandVars(path string) string {
	expanded, err := registry.ExpandString(path)
	if err != nil {
		return path
	}
	return expanded
}
