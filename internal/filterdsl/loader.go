package filterdsl

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/codewithboateng/l10nfilter/internal/filter"
)

type dslPack struct {
	Products []dslProduct `yaml:"products"`
}

type dslProduct struct {
	Product    string    `yaml:"product"`
	Vocabulary string    `yaml:"vocabulary"` // tokens|boolean
	Default    string    `yaml:"default"`    // ignore|report|error (default error)
	Modules    []string  `yaml:"modules"`
	Rules      []dslRule `yaml:"rules"`
}

type dslRule struct {
	Name        string   `yaml:"name"`
	Modules     []string `yaml:"modules"`
	Scope       string   `yaml:"scope"` // any|file|entity
	Path        string   `yaml:"path"`
	PathRegex   string   `yaml:"path_regex"`
	Entity      string   `yaml:"entity"`
	EntityRegex string   `yaml:"entity_regex"`
	Verdict     string   `yaml:"verdict"`
}

// Load reads a rule pack and compiles every product table in it.
func Load(path string) ([]*filter.Table, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule pack: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) ([]*filter.Table, error) {
	var pack dslPack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	out := make([]*filter.Table, 0, len(pack.Products))
	for _, p := range pack.Products {
		t, err := compile(p)
		if err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Product, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadAndRegister installs every table of the pack, replacing built-in
// tables for the same product.
func LoadAndRegister(path string) (int, error) {
	tables, err := Load(path)
	if err != nil {
		return 0, err
	}
	for _, t := range tables {
		filter.Register(t)
	}
	return len(tables), nil
}

func compile(p dslProduct) (*filter.Table, error) {
	voc, err := filter.ParseVocabulary(p.Vocabulary)
	if err != nil {
		return nil, err
	}
	def := filter.Error
	if strings.TrimSpace(p.Default) != "" {
		if def, err = filter.ParseVerdict(p.Default); err != nil {
			return nil, fmt.Errorf("default: %w", err)
		}
	}
	t := &filter.Table{
		Product:    strings.TrimSpace(p.Product),
		Vocabulary: voc,
		Modules:    trimAll(p.Modules),
		Default:    def,
	}
	for _, r := range p.Rules {
		cr, err := compileRule(r)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		t.Rules = append(t.Rules, cr)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func compileRule(r dslRule) (filter.Rule, error) {
	if r.Verdict == "" {
		return filter.Rule{}, fmt.Errorf("missing verdict")
	}
	v, err := filter.ParseVerdict(r.Verdict)
	if err != nil {
		return filter.Rule{}, err
	}
	scope, err := filter.ParseScope(strings.ToLower(strings.TrimSpace(r.Scope)))
	if err != nil {
		return filter.Rule{}, err
	}
	path, err := pattern(r.Path, r.PathRegex)
	if err != nil {
		return filter.Rule{}, fmt.Errorf("path: %w", err)
	}
	entity, err := pattern(r.Entity, r.EntityRegex)
	if err != nil {
		return filter.Rule{}, fmt.Errorf("entity: %w", err)
	}
	return filter.Rule{
		Name:    strings.TrimSpace(r.Name),
		Modules: trimAll(r.Modules),
		Scope:   scope,
		Path:    path,
		Entity:  entity,
		Verdict: v,
	}, nil
}

func pattern(exact, expr string) (filter.Pattern, error) {
	switch {
	case exact != "" && expr != "":
		return filter.Pattern{}, fmt.Errorf("exact value and regex are mutually exclusive")
	case expr != "":
		return filter.Regex(expr)
	case exact != "":
		return filter.Equals(exact), nil
	}
	return filter.Pattern{}, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
