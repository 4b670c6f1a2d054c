package filterdsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithboateng/l10nfilter/internal/filter"
)

const samplePack = `
products:
  - product: dsl-mail
    vocabulary: tokens
    modules: [mail, toolkit]
    rules:
      - name: contributors
        modules: [mail]
        scope: entity
        path: defines.inc
        entity: MOZ_LANGPACK_CONTRIBUTORS
        verdict: ignore
      - name: search-order
        modules: [mail]
        scope: entity
        path: chrome/messenger-region/region.properties
        entity_regex: 'browser\.search\.order\.[1-9]'
        verdict: ignore
      - name: searchplugins
        scope: file
        path_regex: 'searchplugins/.+\.xml'
        verdict: ignore
  - product: dsl-chat
    vocabulary: boolean
    default: report
    modules: [chat]
`

func TestParse(t *testing.T) {
	tables, err := Parse([]byte(samplePack))
	require.NoError(t, err)
	require.Len(t, tables, 2)

	mail := tables[0]
	assert.Equal(t, "dsl-mail", mail.Product)
	assert.Equal(t, filter.VocabTokens, mail.Vocabulary)
	assert.Equal(t, filter.Error, mail.Default)
	require.Len(t, mail.Rules, 3)

	const region = "chrome/messenger-region/region.properties"
	assert.Equal(t, filter.Ignore, mail.Classify(filter.EntityCandidate("mail", "defines.inc", "MOZ_LANGPACK_CONTRIBUTORS")))
	assert.Equal(t, filter.Ignore, mail.Classify(filter.EntityCandidate("mail", region, "browser.search.order.3")))
	assert.Equal(t, filter.Error, mail.Classify(filter.EntityCandidate("mail", region, "browser.search.order.0")))
	assert.Equal(t, filter.Ignore, mail.Classify(filter.FileCandidate("toolkit", "searchplugins/a.xml")))
	assert.Equal(t, filter.Ignore, mail.Classify(filter.FileCandidate("calendar", "x")))

	chat := tables[1]
	assert.Equal(t, filter.VocabBoolean, chat.Vocabulary)
	assert.Equal(t, filter.Report, chat.Classify(filter.FileCandidate("chat", "x.ftl")))
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":       "products: [",
		"no modules":     "products:\n  - product: p\n",
		"bad verdict":    "products:\n  - product: p\n    modules: [m]\n    rules:\n      - name: r\n        verdict: maybe\n",
		"no verdict":     "products:\n  - product: p\n    modules: [m]\n    rules:\n      - name: r\n",
		"bad scope":      "products:\n  - product: p\n    modules: [m]\n    rules:\n      - name: r\n        scope: dir\n        verdict: ignore\n",
		"bad regex":      "products:\n  - product: p\n    modules: [m]\n    rules:\n      - name: r\n        path_regex: '('\n        verdict: ignore\n",
		"both forms":     "products:\n  - product: p\n    modules: [m]\n    rules:\n      - name: r\n        path: a\n        path_regex: a\n        verdict: ignore\n",
		"bad vocabulary": "products:\n  - product: p\n    vocabulary: xml\n    modules: [m]\n",
		"foreign module": "products:\n  - product: p\n    modules: [m]\n    rules:\n      - name: r\n        modules: [x]\n        verdict: ignore\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadAndRegister(t *testing.T) {
	p := filepath.Join(t.TempDir(), "pack.yaml")
	require.NoError(t, os.WriteFile(p, []byte(samplePack), 0o644))

	n, err := LoadAndRegister(p)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	v, err := filter.Classify("dsl-chat", filter.EntityCandidate("chat", "a.ftl", "b"))
	require.NoError(t, err)
	assert.Equal(t, filter.Report, v)

	_, err = LoadAndRegister(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
