package filter

import (
	"path"
	"strings"
)

// Candidate is one (module, path, entity) triple handed to a filter.
// A candidate without an entity is a whole-file check (missing or obsolete
// file); an empty entity key is still an entity-level check.
type Candidate struct {
	Module    string `json:"module"`
	Path      string `json:"path"`
	Entity    string `json:"entity,omitempty"`
	HasEntity bool   `json:"has_entity"`
}

func FileCandidate(module, path string) Candidate {
	return Candidate{Module: module, Path: path}
}

func EntityCandidate(module, path, entity string) Candidate {
	return Candidate{Module: module, Path: path, Entity: entity, HasEntity: true}
}

// Key identifies the candidate in reports and diffs.
func (c Candidate) Key() string {
	k := c.Module + "|" + c.Path
	if c.HasEntity {
		k += "|" + c.Entity
	}
	return k
}

// NormalizePath turns a tree-relative path into the forward-slash form the
// filter tables are written against.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), "\\", "/")
	if p == "" {
		return ""
	}
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// SplitModule strips the longest matching module prefix from rel.
// Module names may themselves contain slashes ("security/manager").
func SplitModule(rel string, modules []string) (module, path string, ok bool) {
	rel = NormalizePath(rel)
	best := -1
	for i, m := range modules {
		if !strings.HasPrefix(rel, m+"/") {
			continue
		}
		if best == -1 || len(m) > len(modules[best]) {
			best = i
		}
	}
	if best == -1 {
		return "", rel, false
	}
	m := modules[best]
	return m, rel[len(m)+1:], true
}
