package golden

import (
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/codewithboateng/l10nfilter/internal/audit"
)

var update = flag.Bool("update", false, "update golden snapshot")

const goldenFile = "testdata/expected.json"

var suiteReference = map[string]string{
	"suite/chrome/common/region.properties": `browser.search.order.1=Google
browser.contentHandlers.types.0.uri=https://example.org/?q=%s
gecko.handlerService.schemes.mailto.0.name=Mail
browser.startup.homepage=https://www.seamonkey-project.org/
`,
	"suite/chrome/mailnews/region.properties": `mail.addr_book.mapit_url.5.name=Map 5
mail.addr_book.mapit_url.6.name=Map 6
mailnews.localizedRe=RE
`,
	"suite/chrome/common/about.dtd": `<!ENTITY about.title "About">
<!ENTITY about.version "Version">
`,
	"suite/defines.inc": `#define MOZ_LANGPACK_CREATOR mozilla.org
#define MOZ_LANGPACK_CONTRIBUTORS <em:contributor>Joe</em:contributor>
`,
	"suite/chrome/common/help/images/overview.png": "PNG",
	"suite/searchplugins/google.xml":               "<SearchPlugin/>",
	"suite/chrome/common/profile.properties":       "profile.title=Profile\n",
	"extensions/spellcheck/hunspell/en-US.dic":     "1\nword\n",
	"browser/chrome/browser/browser.properties":    "browser.title=Browser\n",
}

var suiteLocalized = map[string]string{
	"suite/chrome/common/region.properties":   "# nothing localized yet\n",
	"suite/chrome/mailnews/region.properties": "# nothing localized yet\n",
	"suite/chrome/common/about.dtd": `<!ENTITY about.title "Informazioni">
<!ENTITY about.version "Versione">
<!-- <!ENTITY about.comment "commented out"> -->
<!ENTITY about.old "Vecchio">
`,
	"suite/defines.inc":                  "#define MOZ_LANGPACK_CREATOR mozilla.it\n",
	"suite/chrome/common/old.properties": "old.key=x\n",
	"suite/chrome/common/about.dtd.orig": "<!ENTITY about.title \"About\">\n",
}

type snapshot struct {
	Product string         `json:"product"`
	Locale  string         `json:"locale"`
	Passed  bool           `json:"passed"`
	Summary audit.Summary  `json:"summary"`
	Results []audit.Result `json:"results"`
}

func TestGolden_SuiteSnapshot(t *testing.T) {
	run := auditStrings(t, "suite", "it", suiteReference, suiteLocalized, audit.Waiver{
		Product: "suite",
		Path:    "chrome/common/profile.properties",
		Reason:  "file lands next release",
	})

	got := snapshot{
		Product: run.Product,
		Locale:  run.Locale,
		Passed:  run.Passed(),
		Summary: run.Summary,
		Results: run.Results,
	}

	if *update {
		b, err := json.MarshalIndent(got, "", "  ")
		if err != nil {
			t.Fatalf("marshal got: %v", err)
		}
		if err := os.MkdirAll(filepath.Dir(goldenFile), 0o755); err != nil {
			t.Fatalf("mkdir golden dir: %v", err)
		}
		if err := os.WriteFile(goldenFile, append(b, '\n'), 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
		t.Logf("updated %s", goldenFile)
		return
	}

	raw, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("read golden (%s): %v\nRun with: go test ./test/golden -run TestGolden_SuiteSnapshot -args -update", goldenFile, err)
	}
	var want snapshot
	if err := json.Unmarshal(raw, &want); err != nil {
		t.Fatalf("decode golden: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s\nTip: update with\n  go test ./test/golden -run TestGolden_SuiteSnapshot -count=1 -args -update", diff)
	}
}
