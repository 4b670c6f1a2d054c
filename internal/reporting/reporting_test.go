package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/filter"
)

func run(id string, results ...audit.Result) *audit.Run {
	r := &audit.Run{ID: id, Product: "mail", Locale: "de", Results: results}
	for _, res := range results {
		switch res.Level {
		case filter.Error:
			r.Summary.Errors++
		case filter.Report:
			r.Summary.Reports++
		}
	}
	return r
}

var (
	missingTitle = audit.Result{Kind: audit.MissingEntity, Module: "mail", Path: "defines.inc", Entity: "MOZ_LANG_TITLE", Level: filter.Error, Rule: "default"}
	obsoleteDTD  = audit.Result{Kind: audit.ObsoleteFile, Module: "mail", Path: "old.dtd", Level: filter.Report, Rule: "default"}
	missingIntl  = audit.Result{Kind: audit.MissingFile, Module: "toolkit", Path: "intl.properties", Level: filter.Error, Rule: "default"}
)

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	p, err := WriteJSON("run-1", dir, run("run-1", missingTitle))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run-1.json"), p)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	var back audit.Run
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "run-1", back.ID)
	require.Len(t, back.Results, 1)
	assert.Equal(t, filter.Error, back.Results[0].Level)
	assert.Contains(t, string(b), `"level": "error"`)
	assert.Contains(t, string(b), `"passed": false`)
	assert.Less(t, strings.Index(string(b), `"summary"`), strings.Index(string(b), `"results"`))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteJSONCleanRun(t *testing.T) {
	dir := t.TempDir()
	p, err := WriteJSON("clean", dir, run("clean"))
	require.NoError(t, err)
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"passed": true`)
	assert.Contains(t, string(b), `"results": []`)
}

func TestWriteHTML(t *testing.T) {
	dir := t.TempDir()
	r := run("run-<1>", missingTitle, obsoleteDTD)
	p, err := WriteHTML("run-1", dir, r)
	require.NoError(t, err)

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, "1 blocking error(s)")
	assert.Contains(t, s, "MOZ_LANG_TITLE")
	assert.Contains(t, s, "old.dtd")
	assert.True(t, strings.Index(s, "<h2>Errors</h2>") < strings.Index(s, "<h2>Reports</h2>"))

	var sb strings.Builder
	require.NoError(t, renderHTML(&sb, "clean", run("clean")))
	assert.Contains(t, sb.String(), "No blocking errors.")
	assert.Contains(t, sb.String(), "Nothing to report.")
}

func TestDiff(t *testing.T) {
	downgraded := obsoleteDTD
	downgraded.Level = filter.Error
	base := run("a", missingTitle, obsoleteDTD)
	head := run("b", downgraded, missingIntl)

	d := Diff("a", "b", base, head)
	assert.Equal(t, DiffSummary{NewCount: 1, ResolvedCount: 1, ChangedCount: 1}, d.Summary)
	require.Len(t, d.New, 1)
	assert.Equal(t, missingIntl.Key(), d.New[0].Key)
	require.Len(t, d.Resolved, 1)
	assert.Equal(t, missingTitle.Key(), d.Resolved[0].Key)
	require.Len(t, d.Changed, 1)
	assert.Equal(t, filter.Report, d.Changed[0].Base)
	assert.Equal(t, filter.Error, d.Changed[0].Head)

	dir := filepath.Join(t.TempDir(), "nested")
	p, err := WriteDiffJSON("a", "b", dir, base, head)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "diff_a__b.json"), p)
	_, err = os.Stat(p)
	require.NoError(t, err)
}
