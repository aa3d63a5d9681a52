//go:build !windows

package fsutil

func expandVars(path string) string {
	return path
}
