package model

// PathEntry is a single directory in the PATH list annotated for display.
// It is derived from the list on demand and never persisted.
type PathEntry struct {
	Index       int    `json:"index"`       // Position in the list (0 = highest precedence)
	Value       string `json:"value"`       // The directory exactly as stored
	Exists      bool   `json:"exists"`      // Whether the value names an existing directory
	IsDuplicate bool   `json:"duplicate"`   // True if an earlier entry has the same text
	DuplicateOf int    `json:"duplicateOf"` // Index of the first occurrence, -1 if unique
	Remediation string `json:"remediation,omitempty"`
}

// Status returns the icon that best describes the entry.
// A duplicate is shown as such even when it is also missing.
func (e PathEntry) Status() string {
	switch {
	case e.IsDuplicate:
		return IconDuplicate
	case !e.Exists:
		return IconMissing
	default:
		return IconOK
	}
}

// Summary counts problems across a set of entries.
type Summary struct {
	Total      int `json:"total"`
	Missing    int `json:"missing"`
	Duplicates int `json:"duplicates"`
}

// Summarize tallies entries by status.
func Summarize(entries []PathEntry) Summary {
	s := Summary{Total: len(entries)}
	for _, e := range entries {
		if e.IsDuplicate {
			s.Duplicates++
		}
		if !e.Exists {
			s.Missing++
		}
	}
	return s
}

// Clean reports whether nothing would be removed by clean up.
func (s Summary) Clean() bool {
	return s.Missing == 0 && s.Duplicates == 0
}
