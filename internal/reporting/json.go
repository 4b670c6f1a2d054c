package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/codewithboateng/l10nfilter/internal/audit"
)

// runReport is the on-disk shape of a run: verdict and counts first, then
// the results. Field names match audit.Run so the file decodes back into one.
type runReport struct {
	ID        string         `json:"id"`
	Version   string         `json:"version,omitempty"`
	Product   string         `json:"product"`
	Locale    string         `json:"locale,omitempty"`
	StartedAt time.Time      `json:"started_at"`
	Passed    bool           `json:"passed"`
	Summary   audit.Summary  `json:"summary"`
	Reference string         `json:"reference,omitempty"`
	Source    string         `json:"source,omitempty"`
	Results   []audit.Result `json:"results"`
}

// WriteJSON writes <outDir>/<runID>.json. The file is renamed into place so
// a watcher or web server never sees a partial report.
func WriteJSON(runID, outDir string, run *audit.Run) (string, error) {
	rep := runReport{
		ID:        run.ID,
		Version:   run.Version,
		Product:   run.Product,
		Locale:    run.Locale,
		StartedAt: run.StartedAt,
		Passed:    run.Passed(),
		Summary:   run.Summary,
		Reference: run.Reference,
		Source:    run.Source,
		Results:   run.Results,
	}
	if rep.Results == nil {
		rep.Results = []audit.Result{}
	}

	path := filepath.Join(outDir, runID+".json")
	tmp, err := os.CreateTemp(outDir, "."+runID+"-*.json")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", err
	}
	return path, nil
}
