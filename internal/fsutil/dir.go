// Package fsutil holds the filesystem predicates used while editing PATH.
package fsutil

import (
	"github.com/spf13/afero"
)

// Checker answers whether a PATH entry names an existing directory.
type Checker struct {
	fs     afero.Fs
	expand func(string) string
}

// NewChecker creates a Checker backed by fs.
func NewChecker(fs afero.Fs) *Checker {
	return &Checker{fs: fs, expand: expandVars}
}

// NewOSChecker creates a Checker for the real filesystem.
func NewOSChecker() *Checker {
	return NewChecker(afero.NewOsFs())
}

// DirExists reports whether path is an existing directory. Any failure to
// confirm it (missing, not a directory, permission denied) counts as false.
func (c *Checker) DirExists(path string) bool {
	if path == "" {
		return false
	}
	ok, err := afero.DirExists(c.fs, c.expand(path))
	return err == nil && ok
}
