package golden

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/filter"
	"github.com/codewithboateng/l10nfilter/internal/localetree"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// auditStrings builds both trees on disk and runs a full comparison.
func auditStrings(t *testing.T, product, locale string, ref, l10n map[string]string, waivers ...audit.Waiver) audit.Run {
	t.Helper()
	dir := t.TempDir()
	refDir, l10nDir := filepath.Join(dir, "en-US"), filepath.Join(dir, locale)
	writeTree(t, refDir, ref)
	writeTree(t, l10nDir, l10n)

	table, ok := filter.Get(product)
	if !ok {
		t.Fatalf("unknown product %s", product)
	}
	rt, _ := localetree.Parse(refDir, localetree.Options{})
	lt, _ := localetree.Parse(l10nDir, localetree.Options{})
	run, err := audit.Compare(context.Background(), table, rt, lt, audit.Options{
		Locale:  locale,
		Workers: 2,
		Waivers: waivers,
	})
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	return run
}
