package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/filter"
	"github.com/codewithboateng/l10nfilter/internal/localetree"
	"github.com/codewithboateng/l10nfilter/internal/reporting"
	"github.com/codewithboateng/l10nfilter/internal/watch"
)

type auditFlags struct {
	product   string
	reference string
	localeDir string
	locale    string
	outDir    string
	workers   int
	exclude   []string
	watch     bool
}

func auditCmd(g *globals) *cobra.Command {
	f := &auditFlags{}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Compare a localization against the reference tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.resolve(g)
			if f.reference == "" || f.localeDir == "" {
				return fmt.Errorf("audit: --reference and --locale-dir (or audit.reference/audit.locale in config) are required")
			}
			t, ok := filter.Get(f.product)
			if !ok {
				return fmt.Errorf("%w: %q", filter.ErrUnknownProduct, f.product)
			}
			if err := os.MkdirAll(f.outDir, 0o755); err != nil {
				return fmt.Errorf("audit: cannot create out dir: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			run, err := g.runAudit(ctx, cmd, t, f)
			if err != nil {
				return err
			}
			if !f.watch {
				if !run.Passed() {
					return errAuditFailed
				}
				return nil
			}

			w, err := watch.New(watch.Config{
				Roots:       []string{f.reference, f.localeDir},
				ExcludeDirs: []string{".hg", ".git"},
			}, g.logger)
			if err != nil {
				return fmt.Errorf("audit: watch: %w", err)
			}
			return w.Run(ctx, func(ctx context.Context, changed []string) {
				g.logger.Info("tree changed, re-auditing", "files", len(changed))
				if _, err := g.runAudit(ctx, cmd, t, f); err != nil && ctx.Err() == nil {
					g.logger.Error("audit failed", "err", err)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&f.product, "product", "p", "", "Product line (mail, calendar, im, suite)")
	cmd.Flags().StringVar(&f.reference, "reference", "", "Reference (en-US) tree")
	cmd.Flags().StringVar(&f.localeDir, "locale-dir", "", "Localized tree")
	cmd.Flags().StringVarP(&f.locale, "locale", "l", "", "Locale code, e.g. de")
	cmd.Flags().StringVar(&f.outDir, "out", "", "Output directory for reports")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Parallel file comparisons (0 = GOMAXPROCS)")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "Glob of tree paths to skip (repeatable)")
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "Re-run the audit whenever either tree changes")
	return cmd
}

// resolve fills unset flags from config.
func (f *auditFlags) resolve(g *globals) {
	c := g.cfg.Audit
	f.product = firstNonEmpty(f.product, c.Product)
	f.reference = firstNonEmpty(f.reference, c.Reference)
	f.localeDir = firstNonEmpty(f.localeDir, c.Locale)
	f.locale = firstNonEmpty(f.locale, c.Code)
	f.outDir = firstNonEmpty(f.outDir, g.cfg.Reporting.OutDir)
	if f.workers == 0 {
		f.workers = c.Workers
	}
	if len(f.exclude) == 0 {
		f.exclude = c.Exclude
	}
	if f.locale == "" && f.localeDir != "" {
		f.locale = filepath.Base(filepath.Clean(f.localeDir))
	}
}

func (g *globals) runAudit(ctx context.Context, cmd *cobra.Command, t *filter.Table, f *auditFlags) (audit.Run, error) {
	for _, root := range []string{f.reference, f.localeDir} {
		if err := localetree.CheckRoot(root); err != nil {
			return audit.Run{}, fmt.Errorf("audit: %w", err)
		}
	}
	opts := localetree.Options{Exclude: f.exclude}
	ref, rdiags := localetree.Parse(f.reference, opts)
	l10n, ldiags := localetree.Parse(f.localeDir, opts)
	if warns := append(rdiags.Warnings, ldiags.Warnings...); len(warns) > 0 {
		g.logger.Warn("parse warnings", "warnings", warns)
	}

	db, err := g.openDB()
	if err != nil {
		return audit.Run{}, err
	}
	defer db.Close()

	waivers := append([]audit.Waiver(nil), g.cfg.Waivers...)
	stored, err := db.ActiveWaivers()
	if err != nil {
		return audit.Run{}, fmt.Errorf("load waivers: %w", err)
	}
	waivers = append(waivers, stored...)

	run, err := audit.Compare(ctx, t, ref, l10n, audit.Options{
		Locale:  f.locale,
		Workers: f.workers,
		Waivers: waivers,
		Logger:  g.logger,
	})
	if err != nil {
		return audit.Run{}, err
	}
	if err := db.SaveRun(&run); err != nil {
		return audit.Run{}, fmt.Errorf("db save run: %w", err)
	}

	jsonPath, err := reporting.WriteJSON(run.ID, f.outDir, &run)
	if err != nil {
		return audit.Run{}, err
	}
	htmlPath, err := reporting.WriteHTML(run.ID, f.outDir, &run)
	if err != nil {
		return audit.Run{}, err
	}
	status := "PASS"
	if !run.Passed() {
		status = "FAIL"
	}
	fmt.Fprintf(cmd.OutOrStdout(),
		"Audit %s\n  Run: %s\n  Product: %s  Locale: %s\n  Errors: %d  Reports: %d  Ignored: %d  Waived: %d\n  JSON: %s\n  HTML: %s\n  DB: %s\n",
		status, run.ID, run.Product, run.Locale,
		run.Summary.Errors, run.Summary.Reports, run.Summary.Ignored, run.Summary.Waived,
		jsonPath, htmlPath, filepath.Clean(g.dbPath))
	return run, nil
}
