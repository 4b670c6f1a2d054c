package fuzz

import (
	"testing"

	"github.com/codewithboateng/l10nfilter/internal/filter"
)

// Classification is total: any input yields one of the three verdicts and
// repeated calls agree.
func FuzzClassifyTotal(f *testing.F) {
	seeds := []struct {
		module, path, entity string
		hasEntity            bool
	}{
		{"mail", "chrome/messenger-region/region.properties", "browser.search.order.3", true},
		{"suite", ".hgtags", "", false},
		{"calendar", "chrome/calendar/timezones.properties", "", true},
		{"", "", "", false},
		{"extensions/spellcheck", "hunspell/\x00.dic", "\xff", true},
	}
	for _, s := range seeds {
		f.Add(s.module, s.path, s.entity, s.hasEntity)
	}
	f.Fuzz(func(t *testing.T, module, path, entity string, hasEntity bool) {
		c := filter.FileCandidate(module, path)
		if hasEntity {
			c = filter.EntityCandidate(module, path, entity)
		}
		for _, product := range filter.Products() {
			v1, err := filter.Classify(product, c)
			if err != nil {
				t.Fatalf("%s: %v", product, err)
			}
			v2, _ := filter.Classify(product, c)
			if v1 != v2 {
				t.Fatalf("%s: not idempotent: %v then %v", product, v1, v2)
			}
			if v1 != filter.Ignore && v1 != filter.Report && v1 != filter.Error {
				t.Fatalf("%s: verdict out of range: %d", product, v1)
			}
		}
	})
}
