package reporting

import (
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/filter"
)

func WriteHTML(runID, outDir string, run *audit.Run) (string, error) {
	path := filepath.Join(outDir, runID+".html")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := renderHTML(f, runID, run); err != nil {
		return "", err
	}
	return path, nil
}

func renderHTML(w io.Writer, runID string, run *audit.Run) error {
	s := run.Summary

	// Head + styles
	fmt.Fprintf(w, "<!doctype html><html><head><meta charset='utf-8'><title>%s</title>", html.EscapeString(runID))
	fmt.Fprint(w, "<style>body{font-family:system-ui,Arial,sans-serif;padding:20px;line-height:1.4} table{border-collapse:collapse;margin:8px 0} td,th{border:1px solid #ddd;padding:6px} h1,h2{margin:6px 0 4px} .dim{color:#666} .mono{font-family:ui-monospace,Menlo,Consolas,monospace} .fail{color:#b00} .pass{color:#070}</style>")
	fmt.Fprint(w, "</head><body>")

	// Title + summary
	fmt.Fprintf(w, "<h1>l10nfilter report – <span class='mono'>%s</span></h1>", html.EscapeString(runID))
	fmt.Fprintf(w, "<p>Product: <b>%s</b> &nbsp; Locale: <b>%s</b></p>", html.EscapeString(run.Product), html.EscapeString(run.Locale))
	if run.Passed() {
		fmt.Fprint(w, "<p class='pass'>No blocking errors.</p>")
	} else {
		fmt.Fprintf(w, "<p class='fail'>%d blocking error(s).</p>", s.Errors)
	}
	fmt.Fprintf(w, "<p>Files: %d &nbsp; Entities: %d &nbsp; Errors: %d &nbsp; Reports: %d</p>", s.Files, s.Entities, s.Errors, s.Reports)
	fmt.Fprintf(w, "<p class='dim'>Ignored by filter: %d &nbsp; Waived: %d</p>", s.Ignored, s.Waived)
	if run.Reference != "" || run.Source != "" {
		fmt.Fprintf(w, "<p class='dim mono'>%s → %s</p>", html.EscapeString(run.Reference), html.EscapeString(run.Source))
	}

	section(w, "Errors", run.Results, filter.Error, "No blocking errors.")
	section(w, "Reports", run.Results, filter.Report, "Nothing to report.")

	_, err := fmt.Fprint(w, "</body></html>")
	return err
}

func section(w io.Writer, title string, results []audit.Result, level filter.Verdict, empty string) {
	fmt.Fprintf(w, "<h2>%s</h2>", title)
	n := 0
	for _, r := range results {
		if r.Level != level {
			continue
		}
		if n == 0 {
			fmt.Fprint(w, "<table><tr><th>Kind</th><th>Module</th><th>Path</th><th>Entity</th><th>Rule</th></tr>")
		}
		n++
		fmt.Fprintf(w, "<tr><td>%s</td><td>%s</td><td class='mono'>%s</td><td class='mono'>%s</td><td class='dim'>%s</td></tr>",
			html.EscapeString(string(r.Kind)),
			html.EscapeString(r.Module),
			html.EscapeString(r.Path),
			html.EscapeString(r.Entity),
			html.EscapeString(r.Rule),
		)
	}
	if n > 0 {
		fmt.Fprint(w, "</table>")
		return
	}
	fmt.Fprintf(w, "<p class='dim'>%s</p>", empty)
}
