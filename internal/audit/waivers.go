package audit

import "strings"

// ApplyWaivers filters out results that match any waiver for this run.
// Returns (kept, waivedCount)
func ApplyWaivers(run *Run, in []Result, waivers []Waiver) ([]Result, int) {
	if len(waivers) == 0 || len(in) == 0 {
		return in, 0
	}
	var out []Result
	waived := 0
nextResult:
	for _, r := range in {
		for _, w := range waivers {
			if w.Product != "" && !strings.EqualFold(w.Product, run.Product) {
				continue
			}
			if w.Locale != "" && !strings.EqualFold(w.Locale, run.Locale) {
				continue
			}
			if w.Module != "" && w.Module != r.Module {
				continue
			}
			if w.Path != "" && w.Path != r.Path {
				continue
			}
			if w.Entity != "" && !strings.Contains(r.Entity, w.Entity) {
				continue
			}
			waived++
			continue nextResult
		}
		out = append(out, r)
	}
	return out, waived
}
