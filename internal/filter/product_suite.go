package filter

func init() {
	Register(suiteTable())
}

func suiteTable() *Table {
	const (
		commonRegion   = "chrome/common/region.properties"
		mailnewsRegion = "chrome/mailnews/region.properties"
	)
	suite := []string{"suite"}
	return &Table{
		Product:    "suite",
		Vocabulary: VocabTokens,
		Modules: []string{
			"netwerk", "dom", "toolkit", "security/manager",
			"editor/ui", "suite", "extensions/spellcheck",
		},
		Rules: []Rule{
			// Editor backups, hidden files and patch rejects.
			{Name: "hidden-files", Path: MustRegex(`\..*`), Verdict: Ignore},
			{Name: "backup-files", Path: MustRegex(`.*~`), Verdict: Ignore},
			{Name: "patch-rejects", Path: MustRegex(`.*\.(orig|rej)`), Verdict: Ignore},
			{
				Name:    "spellcheck-dictionaries",
				Modules: []string{"extensions/spellcheck"},
				Verdict: Ignore,
			},
			{
				Name:    "searchplugins",
				Modules: suite,
				Scope:   FileLevel,
				Path:    MustRegex(`searchplugins/.+\.xml`),
				Verdict: Ignore,
			},
			{
				Name:    "help-images",
				Modules: suite,
				Scope:   FileLevel,
				Path:    MustRegex(`chrome/common/help/images/[A-Za-z_-]+\.[a-z]+`),
				Verdict: Ignore,
			},
			{
				Name:    "langpack-contributors",
				Modules: suite,
				Scope:   EntityLevel,
				Path:    Equals("defines.inc"),
				Entity:  Equals("MOZ_LANGPACK_CONTRIBUTORS"),
				Verdict: Ignore,
			},
			{
				Name:    "region-search-order",
				Modules: suite,
				Scope:   EntityLevel,
				Path:    Equals(commonRegion),
				Entity:  MustRegex(`browser\.search\.order\.[1-9]`),
				Verdict: Ignore,
			},
			{
				Name:    "region-content-handlers",
				Modules: suite,
				Scope:   EntityLevel,
				Path:    Equals(commonRegion),
				Entity:  MustRegex(`browser\.contentHandlers\.types\.[0-5]`),
				Verdict: Ignore,
			},
			{
				Name:    "region-handler-schemes",
				Modules: suite,
				Scope:   EntityLevel,
				Path:    Equals(commonRegion),
				Entity:  MustRegex(`gecko\.handlerService\.(schemes\.|defaultHandlersVersion)`),
				Verdict: Ignore,
			},
			{
				Name:    "mailnews-mapit-urls",
				Modules: suite,
				Scope:   EntityLevel,
				Path:    Equals(mailnewsRegion),
				Entity:  MustRegex(`mail\.addr_book\.mapit_url\.[1-5]`),
				Verdict: Ignore,
			},
			{
				Name:    "mailnews-optional",
				Modules: suite,
				Scope:   EntityLevel,
				Path:    Equals(mailnewsRegion),
				Entity:  MustRegex(`mailnews\.(messageid_browser\.url|localizedRe)`),
				Verdict: Ignore,
			},
		},
		Default: Error,
	}
}
