package reporting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/filter"
)

type DiffPayload struct {
	BaseID   string        `json:"base_id"`
	HeadID   string        `json:"head_id"`
	Summary  DiffSummary   `json:"summary"`
	New      []DiffResult  `json:"new"`
	Resolved []DiffResult  `json:"resolved"`
	Changed  []DiffChanged `json:"changed"`
}

type DiffSummary struct {
	NewCount      int `json:"new"`
	ResolvedCount int `json:"resolved"`
	ChangedCount  int `json:"changed"`
}

type DiffResult struct {
	Key   string         `json:"key"`
	Kind  audit.Kind     `json:"kind"`
	Level filter.Verdict `json:"level"`
	Rule  string         `json:"rule,omitempty"`
}

type DiffChanged struct {
	Key  string         `json:"key"`
	Base filter.Verdict `json:"base_level"`
	Head filter.Verdict `json:"head_level"`
}

// Diff compares two runs result by result.
func Diff(baseID, headID string, base, head *audit.Run) DiffPayload {
	bm := map[string]audit.Result{}
	hm := map[string]audit.Result{}
	for _, r := range base.Results {
		bm[r.Key()] = r
	}
	for _, r := range head.Results {
		hm[r.Key()] = r
	}

	added := []DiffResult{}
	resolved := []DiffResult{}
	changed := []DiffChanged{}

	for k, hr := range hm {
		br, ok := bm[k]
		if !ok {
			added = append(added, asDiff(hr))
			continue
		}
		if br.Level != hr.Level {
			changed = append(changed, DiffChanged{Key: k, Base: br.Level, Head: hr.Level})
		}
	}
	for k, br := range bm {
		if _, ok := hm[k]; !ok {
			resolved = append(resolved, asDiff(br))
		}
	}

	sort.Slice(added, func(i, j int) bool { return added[i].Key < added[j].Key })
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].Key < resolved[j].Key })
	sort.Slice(changed, func(i, j int) bool { return changed[i].Key < changed[j].Key })

	return DiffPayload{
		BaseID: baseID, HeadID: headID,
		Summary: DiffSummary{
			NewCount:      len(added),
			ResolvedCount: len(resolved),
			ChangedCount:  len(changed),
		},
		New:      added,
		Resolved: resolved,
		Changed:  changed,
	}
}

func WriteDiffJSON(baseID, headID, outDir string, base, head *audit.Run) (string, error) {
	path := filepath.Join(outDir, "diff_"+baseID+"__"+headID+".json")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(Diff(baseID, headID, base, head), "", "  ")
	if err != nil {
		return "", err
	}
	return path, os.WriteFile(path, b, 0o644)
}

func asDiff(r audit.Result) DiffResult {
	return DiffResult{Key: r.Key(), Kind: r.Kind, Level: r.Level, Rule: r.Rule}
}
