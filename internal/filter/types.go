package filter

import (
	"fmt"
	"regexp"
)

// Scope limits a rule to whole-file checks, entity checks, or both.
type Scope int

const (
	AnyLevel Scope = iota
	FileLevel
	EntityLevel
)

func (s Scope) String() string {
	switch s {
	case FileLevel:
		return "file"
	case EntityLevel:
		return "entity"
	}
	return "any"
}

func ParseScope(s string) (Scope, error) {
	switch s {
	case "", "any":
		return AnyLevel, nil
	case "file":
		return FileLevel, nil
	case "entity":
		return EntityLevel, nil
	}
	return AnyLevel, fmt.Errorf("unknown scope %q", s)
}

// Pattern matches a path or entity either by equality or by a regular
// expression anchored at the start of the string (but not at its end).
// The zero Pattern matches everything.
type Pattern struct {
	exact string
	re    *regexp.Regexp
	set   bool
}

func Equals(s string) Pattern { return Pattern{exact: s, set: true} }

func Regex(expr string) (Pattern, error) {
	re, err := regexp.Compile(`^(?:` + expr + `)`)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{re: re, set: true}, nil
}

func MustRegex(expr string) Pattern {
	p, err := Regex(expr)
	if err != nil {
		panic(fmt.Sprintf("filter: bad pattern %q: %v", expr, err))
	}
	return p
}

func (p Pattern) IsZero() bool { return !p.set }

func (p Pattern) Match(s string) bool {
	if !p.set {
		return true
	}
	if p.re != nil {
		return p.re.MatchString(s)
	}
	return s == p.exact
}

func (p Pattern) String() string {
	switch {
	case !p.set:
		return "*"
	case p.re != nil:
		return "~" + p.re.String()
	}
	return "=" + p.exact
}

// Rule is one entry of a product's ordered decision chain.
type Rule struct {
	Name    string
	Modules []string // empty: any allowlisted module
	Scope   Scope
	Path    Pattern
	Entity  Pattern // only consulted for entity-level candidates
	Verdict Verdict
}

func (r Rule) matches(c Candidate) bool {
	switch r.Scope {
	case FileLevel:
		if c.HasEntity {
			return false
		}
	case EntityLevel:
		if !c.HasEntity {
			return false
		}
	}
	if len(r.Modules) > 0 && !contains(r.Modules, c.Module) {
		return false
	}
	if !r.Path.Match(c.Path) {
		return false
	}
	if c.HasEntity && !r.Entity.Match(c.Entity) {
		return false
	}
	if !c.HasEntity && !r.Entity.IsZero() {
		return false
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
