package filter

func init() {
	Register(mailTable())
}

func mailTable() *Table {
	return &Table{
		Product:    "mail",
		Vocabulary: VocabTokens,
		Modules: []string{
			"netwerk", "dom", "toolkit", "security/manager",
			"devtools/client", "devtools/shared", "devtools/startup",
			"mail", "chat", "editor/ui", "extensions/spellcheck",
			"other-licenses/branding/thunderbird",
		},
		Rules: []Rule{
			{
				Name:    "spellcheck-dictionaries",
				Modules: []string{"extensions/spellcheck"},
				Verdict: Ignore,
			},
			{
				Name:    "branding-trademark",
				Modules: []string{"other-licenses/branding/thunderbird"},
				Scope:   EntityLevel,
				Path:    MustRegex(`brand\.(dtd|properties|ftl)$`),
				Entity:  MustRegex(`trademarkInfo`),
				Verdict: Ignore,
			},
			{
				Name:    "langpack-contributors",
				Modules: []string{"mail"},
				Scope:   EntityLevel,
				Path:    Equals("defines.inc"),
				Entity:  Equals("MOZ_LANGPACK_CONTRIBUTORS"),
				Verdict: Ignore,
			},
			{
				Name:    "searchplugins",
				Modules: []string{"mail"},
				Path:    MustRegex(`searchplugins/.+\.xml`),
				Verdict: Ignore,
			},
			{
				Name:    "region-search-order",
				Modules: []string{"mail"},
				Scope:   EntityLevel,
				Path:    Equals("chrome/messenger-region/region.properties"),
				Entity:  MustRegex(`browser\.search\.order\.[1-9]`),
				Verdict: Ignore,
			},
		},
		Default: Error,
	}
}
