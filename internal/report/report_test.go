package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"editpath/internal/editor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var checker = editor.DirCheckerFunc(func(p string) bool {
	return p == `C:\A` || p == `C:\B`
})

func TestBuild(t *testing.T) {
	list := editor.PathList{`C:\A`, `C:\B`, `C:\A`, `C:\Missing`}

	doc := Build("memory", ';', list, checker)

	assert.Equal(t, "memory", doc.Store)
	assert.Equal(t, ";", doc.Separator)
	require.Len(t, doc.Entries, 4)
	assert.Equal(t, 4, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Missing)
	assert.Equal(t, 1, doc.Summary.Duplicates)
	assert.Equal(t, []RemovalJSON{
		{Index: 2, Value: `C:\A`, Reason: "duplicate"},
		{Index: 3, Value: `C:\Missing`, Reason: "missing"},
	}, doc.CleanUp)
	assert.Equal(t, editor.PathList{`C:\A`, `C:\B`, `C:\A`, `C:\Missing`}, list)
}

func TestGenerateReport(t *testing.T) {
	doc := Build("memory", ';', editor.PathList{`C:\A`, `C:\A`, `C:\Gone`, ""}, checker)

	out := GenerateReport(doc, false)
	assert.Contains(t, out, "Store: memory")
	assert.Contains(t, out, `  2. ≈ C:\A (duplicate of 1)`)
	assert.Contains(t, out, `  3. ✗ C:\Gone (missing)`)
	assert.Contains(t, out, "(empty)")
	assert.Contains(t, out, "4 entries, 2 missing, 1 duplicates")
	assert.Contains(t, out, "Clean up would remove 3 entries.")
	assert.NotContains(t, out, "clean up removes it")

	verbose := GenerateReport(doc, true)
	assert.Contains(t, verbose, "Directory does not exist; clean up removes it.")
}

func TestGenerateReport_Clean(t *testing.T) {
	doc := Build("memory", ';', editor.PathList{`C:\A`, `C:\B`}, checker)
	assert.Contains(t, GenerateReport(doc, false), "Nothing to clean up.")
}

func TestWriteJSON(t *testing.T) {
	doc := Build("memory", ';', editor.PathList{`C:\A`}, checker)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "memory", decoded["store"])
	assert.Len(t, decoded["entries"], 1)
	assert.Empty(t, decoded["cleanUp"])
}
