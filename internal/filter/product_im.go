package filter

// The chat filter historically answers with booleans instead of tokens.
func init() {
	Register(imTable())
}

func imTable() *Table {
	return &Table{
		Product:    "im",
		Vocabulary: VocabBoolean,
		Modules: []string{
			"netwerk", "dom", "toolkit", "security/manager",
			"im", "chat", "extensions/spellcheck",
		},
		Rules: []Rule{
			{
				Name:    "spellcheck-files",
				Modules: []string{"extensions/spellcheck"},
				Scope:   FileLevel,
				Verdict: Ignore,
			},
			{
				Name:    "searchplugins",
				Modules: []string{"im"},
				Scope:   FileLevel,
				Path:    MustRegex(`searchplugins/.+\.xml`),
				Verdict: Ignore,
			},
			{
				Name:    "langpack-contributors",
				Modules: []string{"im"},
				Scope:   EntityLevel,
				Path:    Equals("defines.inc"),
				Entity:  Equals("MOZ_LANGPACK_CONTRIBUTORS"),
				Verdict: Ignore,
			},
			{
				Name:    "region-search-order",
				Modules: []string{"im"},
				Scope:   EntityLevel,
				Path:    Equals("chrome/browser-region/region.properties"),
				Entity:  MustRegex(`browser\.search\.order\.[1-9]`),
				Verdict: Ignore,
			},
		},
		Default: Error,
	}
}
