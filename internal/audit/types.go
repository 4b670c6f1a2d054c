package audit

import (
	"time"

	"github.com/codewithboateng/l10nfilter/internal/filter"
)

const Version = "1.0"

// Kind says what kind of mismatch a result describes.
type Kind string

const (
	MissingFile    Kind = "missing-file"
	ObsoleteFile   Kind = "obsolete-file"
	MissingEntity  Kind = "missing-entity"
	ObsoleteEntity Kind = "obsolete-entity"
)

func (k Kind) obsolete() bool { return k == ObsoleteFile || k == ObsoleteEntity }

type Run struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Version   string    `json:"version,omitempty"`
	Product   string    `json:"product"`
	Locale    string    `json:"locale,omitempty"`
	Reference string    `json:"reference,omitempty"`
	Source    string    `json:"source,omitempty"`

	Results []Result `json:"results,omitempty"`
	Summary Summary  `json:"summary"`
}

type Result struct {
	Kind   Kind           `json:"kind"`
	Module string         `json:"module"`
	Path   string         `json:"path"`
	Entity string         `json:"entity,omitempty"`
	Level  filter.Verdict `json:"level"`
	Rule   string         `json:"rule,omitempty"`
}

// Key identifies a result across runs.
func (r Result) Key() string {
	return string(r.Kind) + "|" + r.Module + "|" + r.Path + "|" + r.Entity
}

type Summary struct {
	Files    int `json:"files"`
	Entities int `json:"entities"`
	Errors   int `json:"errors"`
	Reports  int `json:"reports"`
	Ignored  int `json:"ignored"`
	Waived   int `json:"waived"`
}

// Passed reports whether no build-blocking result remains.
func (r *Run) Passed() bool { return r.Summary.Errors == 0 }

// Waiver accepts known mismatches. Empty fields match anything; Entity is a
// substring match.
type Waiver struct {
	Product string `yaml:"product" json:"product,omitempty"`
	Locale  string `yaml:"locale" json:"locale,omitempty"`
	Module  string `yaml:"module" json:"module,omitempty"`
	Path    string `yaml:"path" json:"path,omitempty"`
	Entity  string `yaml:"entity" json:"entity,omitempty"`
	Reason  string `yaml:"reason" json:"reason"`
}
