package editor

import (
	"fmt"

	"editpath/internal/model"
)

// DirChecker is the filesystem predicate used by CleanUp and Inspect.
type DirChecker interface {
	DirExists(path string) bool
}

// DirCheckerFunc adapts a function to DirChecker.
type DirCheckerFunc func(path string) bool

func (f DirCheckerFunc) DirExists(path string) bool { return f(path) }

// Reason explains why CleanUp dropped an entry.
type Reason string

const (
	ReasonMissing   Reason = "missing"
	ReasonDuplicate Reason = "duplicate"
)

// Removal records one entry dropped by CleanUp. Index is the entry's position
// before the clean up started.
type Removal struct {
	Index  int
	Value  string
	Reason Reason
}

// CleanUp removes every entry that is not an existing directory or whose
// text already appeared earlier in the list. Every value is marked seen
// whether or not it was kept, so the first occurrence of a string survives
// only if it exists and later occurrences never survive.
func (l *PathList) CleanUp(checker DirChecker) []Removal {
	seen := make(map[string]bool, len(*l))
	retained := make(PathList, 0, len(*l))
	var removed []Removal

	for i, p := range *l {
		switch {
		case seen[p]:
			removed = append(removed, Removal{Index: i, Value: p, Reason: ReasonDuplicate})
		case !checker.DirExists(p):
			removed = append(removed, Removal{Index: i, Value: p, Reason: ReasonMissing})
		default:
			retained = append(retained, p)
		}
		seen[p] = true
	}

	*l = retained
	return removed
}

// Inspect annotates each entry with its existence and duplicate status
// without changing the list.
func (l PathList) Inspect(checker DirChecker) []model.PathEntry {
	first := make(map[string]int, len(l))
	entries := make([]model.PathEntry, len(l))

	for i, p := range l {
		e := model.PathEntry{
			Index:       i,
			Value:       p,
			Exists:      checker.DirExists(p),
			DuplicateOf: -1,
		}
		if firstIdx, ok := first[p]; ok {
			e.IsDuplicate = true
			e.DuplicateOf = firstIdx
			e.Remediation = fmt.Sprintf("Duplicate of entry %d; clean up removes this copy.", firstIdx+1)
		} else {
			first[p] = i
			if !e.Exists {
				e.Remediation = "Directory does not exist; clean up removes it."
			}
		}
		entries[i] = e
	}
	return entries
}
