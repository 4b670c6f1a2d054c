package filter

func init() {
	Register(calendarTable())
}

func calendarTable() *Table {
	return &Table{
		Product:    "calendar",
		Vocabulary: VocabTokens,
		Modules:    []string{"calendar"},
		Rules: []Rule{
			// Timezone names may be left untranslated.
			{
				Name:    "timezones",
				Path:    Equals("chrome/calendar/timezones.properties"),
				Verdict: Report,
			},
			{
				Name:    "compiled-timezones",
				Scope:   FileLevel,
				Path:    MustRegex(`timezones/.+\.(json|sqlite)$`),
				Verdict: Ignore,
			},
			{
				Name:    "langpack-contributors",
				Scope:   EntityLevel,
				Path:    Equals("defines.inc"),
				Entity:  Equals("MOZ_LANGPACK_CONTRIBUTORS"),
				Verdict: Ignore,
			},
			{
				Name:    "event-dialog-nounclass",
				Scope:   EntityLevel,
				Path:    Equals("chrome/calendar/calendar-event-dialog.properties"),
				Entity:  MustRegex(`.*Nounclass[1-9]`),
				Verdict: Ignore,
			},
			{
				Name:    "extract-patterns",
				Scope:   EntityLevel,
				Path:    Equals("chrome/calendar/calendar-extract.properties"),
				Verdict: Report,
			},
		},
		Default: Error,
	}
}
