// Package report renders the annotated PATH list for --list and --json.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"editpath/internal/editor"
	"editpath/internal/model"
)

// Document is the --json payload.
type Document struct {
	Version   string            `json:"version"`
	Store     string            `json:"store"`
	Separator string            `json:"separator"`
	Entries   []model.PathEntry `json:"entries"`
	Summary   model.Summary     `json:"summary"`
	CleanUp   []RemovalJSON     `json:"cleanUp"`
}

// RemovalJSON is an entry clean up would remove.
type RemovalJSON struct {
	Index  int    `json:"index"`
	Value  string `json:"value"`
	Reason string `json:"reason"`
}

// Build assembles the document for list without modifying it.
func Build(store string, sep rune, list editor.PathList, checker editor.DirChecker) Document {
	entries := list.Inspect(checker)
	preview := list.Clone()

	removals := []RemovalJSON{}
	for _, r := range preview.CleanUp(checker) {
		removals = append(removals, RemovalJSON{Index: r.Index, Value: r.Value, Reason: string(r.Reason)})
	}

	return Document{
		Version:   model.Version,
		Store:     store,
		Separator: string(sep),
		Entries:   entries,
		Summary:   model.Summarize(entries),
		CleanUp:   removals,
	}
}

// WriteJSON encodes doc with indentation.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// GenerateReport renders doc as plain text. verbose adds remediation advice.
func GenerateReport(doc Document, verbose bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "editpath %s\n", doc.Version)
	fmt.Fprintf(&b, "Store: %s\n\n", doc.Store)

	for _, e := range doc.Entries {
		value := e.Value
		if value == "" {
			value = "(empty)"
		}
		line := fmt.Sprintf("%3d. %s %s", e.Index+1, e.Status(), value)
		switch {
		case e.IsDuplicate:
			line += fmt.Sprintf(" (duplicate of %d)", e.DuplicateOf+1)
		case !e.Exists:
			line += " (missing)"
		}
		b.WriteString(line + "\n")
		if verbose && e.Remediation != "" {
			fmt.Fprintf(&b, "       %s\n", e.Remediation)
		}
	}

	s := doc.Summary
	fmt.Fprintf(&b, "\n%d entries, %d missing, %d duplicates\n", s.Total, s.Missing, s.Duplicates)
	if s.Clean() {
		b.WriteString("Nothing to clean up.\n")
	} else {
		fmt.Fprintf(&b, "Clean up would remove %d entries.\n", len(doc.CleanUp))
	}
	return b.String()
}
