package localetree

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one file of a locale tree. Entities is nil for formats we do not
// parse, which makes the file a whole-file check only.
type File struct {
	Path     string   `json:"path"` // slash-separated, relative to the tree root
	Entities []string `json:"entities,omitempty"`
	Parsed   bool     `json:"parsed"`
}

type Tree struct {
	Root  string           `json:"root"`
	Files map[string]*File `json:"files"`
}

type Options struct {
	// Exclude holds doublestar globs matched against tree-relative paths.
	Exclude []string
}

type Diagnostics struct {
	Warnings []string
}

// Paths returns the tree's file paths in sorted order.
func (t Tree) Paths() []string {
	out := make([]string, 0, len(t.Files))
	for p := range t.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// CheckRoot reports an error unless root is an existing, readable
// directory. Parse only warns about a missing root.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("locale tree %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("locale tree %s: not a directory", root)
	}
	d, err := os.Open(root)
	if err != nil {
		return fmt.Errorf("locale tree %s: %w", root, err)
	}
	defer d.Close()
	if _, err := d.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("locale tree %s: %w", root, err)
	}
	return nil
}

func Parse(root string, opts Options) (Tree, Diagnostics) {
	tree := Tree{Root: filepath.Clean(root), Files: map[string]*File{}}
	diags := Diagnostics{}

	err := filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			diags.Warnings = append(diags.Warnings, err.Error())
			return nil
		}
		rel, rerr := filepath.Rel(root, p)
		if rerr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if d.Name() == ".hg" || d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if excluded(rel, opts.Exclude) {
			return nil
		}
		f := &File{Path: rel}
		if parse := parserFor(rel); parse != nil {
			ents, perr := parseFile(p, parse)
			if perr != nil {
				diags.Warnings = append(diags.Warnings, rel+": "+perr.Error())
			} else {
				f.Entities = ents
				f.Parsed = true
			}
		}
		tree.Files[rel] = f
		return nil
	})
	if err != nil {
		diags.Warnings = append(diags.Warnings, err.Error())
	}
	if len(tree.Files) == 0 {
		diags.Warnings = append(diags.Warnings, "no files found under "+tree.Root)
	}
	return tree, diags
}

func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

func parserFor(rel string) entityParser {
	switch strings.ToLower(filepath.Ext(rel)) {
	case ".properties":
		return parseProperties
	case ".dtd":
		return parseDTD
	case ".ftl":
		return parseFTL
	case ".inc":
		return parseDefines
	case ".ini":
		return parseINI
	}
	return nil
}

func parseFile(p string, parse entityParser) ([]string, error) {
	b, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	return dedupe(parse(string(b))), nil
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
