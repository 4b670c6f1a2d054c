package audit

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codewithboateng/l10nfilter/internal/filter"
	"github.com/codewithboateng/l10nfilter/internal/localetree"
	"github.com/codewithboateng/l10nfilter/internal/metrics"
)

type Options struct {
	Locale  string
	Workers int
	Waivers []Waiver
	Logger  *slog.Logger
}

type fileOutcome struct {
	results  []Result
	entities int
	ignored  int
}

// Compare checks a localized tree against the reference tree, asking the
// product table about every missing or obsolete file and entity.
func Compare(ctx context.Context, table *filter.Table, ref, l10n localetree.Tree, opts Options) (Run, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	run := Run{
		ID:        "run-" + uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Version:   Version,
		Product:   table.Product,
		Locale:    opts.Locale,
		Reference: ref.Root,
		Source:    l10n.Root,
	}

	paths := unionPaths(ref, l10n)

	var (
		mu       sync.Mutex
		results  []Result
		summary  Summary
		outcomes = make(chan fileOutcome)
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for o := range outcomes {
			mu.Lock()
			results = append(results, o.results...)
			summary.Entities += o.entities
			summary.Ignored += o.ignored
			mu.Unlock()
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, p := range paths {
		if err := gctx.Err(); err != nil {
			break
		}
		module, rel, ok := filter.SplitModule(p, table.Modules)
		if !ok {
			mu.Lock()
			summary.Ignored++
			mu.Unlock()
			metrics.ObserveVerdict(table.Product, filter.Ignore)
			continue
		}
		mu.Lock()
		summary.Files++
		mu.Unlock()
		rf, lf := ref.Files[p], l10n.Files[p]
		g.Go(func() error {
			o := compareFile(table, module, rel, rf, lf)
			select {
			case outcomes <- o:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}
	werr := g.Wait()
	close(outcomes)
	<-done
	if werr == nil {
		werr = ctx.Err()
	}
	if werr != nil {
		return Run{}, fmt.Errorf("compare %s: %w", table.Product, werr)
	}

	for _, r := range results {
		metrics.ObserveVerdict(table.Product, r.Level)
	}
	kept, waived := ApplyWaivers(&run, results, opts.Waivers)
	summary.Waived = waived
	for _, r := range kept {
		switch r.Level {
		case filter.Error:
			summary.Errors++
		case filter.Report:
			summary.Reports++
		}
	}
	sortResults(kept)
	run.Results = kept
	run.Summary = summary
	metrics.ObserveRun(table.Product, run.Passed())

	logger.Info("audit complete",
		"run", run.ID,
		"product", run.Product,
		"locale", run.Locale,
		"files", summary.Files,
		"errors", summary.Errors,
		"reports", summary.Reports,
		"ignored", summary.Ignored,
		"waived", summary.Waived,
	)
	return run, nil
}

func compareFile(table *filter.Table, module, rel string, rf, lf *localetree.File) fileOutcome {
	var o fileOutcome
	classify := func(kind Kind, c filter.Candidate) {
		d := table.Explain(c)
		level := d.Verdict
		if kind.obsolete() && level > filter.Report {
			level = filter.Report
		}
		if level == filter.Ignore {
			o.ignored++
			metrics.ObserveVerdict(table.Product, filter.Ignore)
			return
		}
		o.results = append(o.results, Result{
			Kind:   kind,
			Module: c.Module,
			Path:   c.Path,
			Entity: c.Entity,
			Level:  level,
			Rule:   d.Rule,
		})
	}

	switch {
	case rf != nil && lf == nil:
		classify(MissingFile, filter.FileCandidate(module, rel))
		return o
	case rf == nil && lf != nil:
		classify(ObsoleteFile, filter.FileCandidate(module, rel))
		return o
	case rf == nil:
		return o
	}

	o.entities = len(rf.Entities)
	if !rf.Parsed || !lf.Parsed {
		return o
	}
	have := make(map[string]struct{}, len(lf.Entities))
	for _, e := range lf.Entities {
		have[e] = struct{}{}
	}
	want := make(map[string]struct{}, len(rf.Entities))
	for _, e := range rf.Entities {
		want[e] = struct{}{}
		if _, ok := have[e]; !ok {
			classify(MissingEntity, filter.EntityCandidate(module, rel, e))
		}
	}
	for _, e := range lf.Entities {
		if _, ok := want[e]; !ok {
			classify(ObsoleteEntity, filter.EntityCandidate(module, rel, e))
		}
	}
	return o
}

func unionPaths(a, b localetree.Tree) []string {
	seen := make(map[string]struct{}, len(a.Files)+len(b.Files))
	for p := range a.Files {
		seen[p] = struct{}{}
	}
	for p := range b.Files {
		seen[p] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// sortResults orders by level (errors first), then module, path, entity, kind.
func sortResults(rs []Result) {
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.Level != b.Level {
			return a.Level > b.Level
		}
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Entity != b.Entity {
			return a.Entity < b.Entity
		}
		return a.Kind < b.Kind
	})
}
