package filter

import (
	"errors"
	"fmt"
	"strings"
)

// Table is the complete, immutable rule set for one product line.
type Table struct {
	Product    string
	Vocabulary Vocabulary
	Modules    []string // allowlist; anything else is out of scope
	Rules      []Rule   // first match wins
	Default    Verdict
}

// Decision is a verdict together with the rule that produced it.
type Decision struct {
	Verdict Verdict `json:"verdict"`
	Rule    string  `json:"rule"`
}

const (
	DecidedByScope   = "scope"
	DecidedByDefault = "default"
)

func (t *Table) Allows(module string) bool { return contains(t.Modules, module) }

func (t *Table) Classify(c Candidate) Verdict { return t.Explain(c).Verdict }

// Explain runs the decision chain: the allowlist first, then the rules in
// order, then the table default.
func (t *Table) Explain(c Candidate) Decision {
	if !t.Allows(c.Module) {
		return Decision{Verdict: Ignore, Rule: DecidedByScope}
	}
	for i := range t.Rules {
		if t.Rules[i].matches(c) {
			return Decision{Verdict: t.Rules[i].Verdict, Rule: t.Rules[i].Name}
		}
	}
	return Decision{Verdict: t.Default, Rule: DecidedByDefault}
}

// Render classifies c and renders the verdict in the product's vocabulary.
func (t *Table) Render(c Candidate) any { return t.Vocabulary.Render(t.Classify(c)) }

// Validate checks tables that come from configuration rather than code.
func (t *Table) Validate() error {
	if strings.TrimSpace(t.Product) == "" {
		return errors.New("product name is required")
	}
	if len(t.Modules) == 0 {
		return fmt.Errorf("product %q: module allowlist is empty", t.Product)
	}
	if t.Default < Ignore || t.Default > Error {
		return fmt.Errorf("product %q: invalid default verdict", t.Product)
	}
	seen := map[string]bool{}
	for i, r := range t.Rules {
		if r.Name == "" {
			return fmt.Errorf("product %q: rule #%d has no name", t.Product, i+1)
		}
		if seen[r.Name] {
			return fmt.Errorf("product %q: duplicate rule name %q", t.Product, r.Name)
		}
		seen[r.Name] = true
		if r.Verdict < Ignore || r.Verdict > Error {
			return fmt.Errorf("product %q: rule %q: invalid verdict", t.Product, r.Name)
		}
		for _, m := range r.Modules {
			if !t.Allows(m) {
				return fmt.Errorf("product %q: rule %q names module %q outside the allowlist", t.Product, r.Name, m)
			}
		}
		if r.Scope == FileLevel && !r.Entity.IsZero() {
			return fmt.Errorf("product %q: rule %q: file-level rule cannot match entities", t.Product, r.Name)
		}
	}
	return nil
}
