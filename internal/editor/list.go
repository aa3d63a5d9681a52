// Package editor implements the PATH list editing operations: load, reorder,
// insert, remove, clean up and serialize. The presentation layer tracks the
// selection and calls these in response to user gestures.
package editor

import (
	"slices"
	"strings"
)

// PathList is an ordered list of PATH entries. Order is search precedence.
type PathList []string

// Load splits raw on sep without trimming. An empty raw value yields a
// single empty entry.
func Load(raw string, sep rune) PathList {
	return PathList(strings.Split(raw, string(sep)))
}

// Serialize joins the entries with sep.
func (l PathList) Serialize(sep rune) string {
	return strings.Join(l, string(sep))
}

// Clone returns an independent copy.
func (l PathList) Clone() PathList {
	return slices.Clone(l)
}

// Swap exchanges two entries. Both indices must be in range.
func (l PathList) Swap(i, j int) {
	l[i], l[j] = l[j], l[i]
}

// MoveUp swaps index with the entry above it. It reports false, leaving the
// list untouched, when there is nothing above.
func (l PathList) MoveUp(index int) bool {
	if index <= 0 || index >= len(l) {
		return false
	}
	l.Swap(index, index-1)
	return true
}

// MoveDown swaps index with the entry below it.
func (l PathList) MoveDown(index int) bool {
	if index < 0 || index >= len(l)-1 {
		return false
	}
	l.Swap(index, index+1)
	return true
}

// Insert appends path. Any string is accepted.
func (l *PathList) Insert(path string) {
	*l = append(*l, path)
}

// RemoveAt deletes the entry at index. Later entries shift down by one.
func (l *PathList) RemoveAt(index int) {
	*l = slices.Delete(*l, index, index+1)
}

// SelectionAfterRemove is the index to select once an entry at index has
// been removed from a list now holding newLen entries; -1 means none.
func SelectionAfterRemove(index, newLen int) int {
	if newLen == 0 {
		return -1
	}
	return min(index, newLen-1)
}
