package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/codewithboateng/l10nfilter/internal/filter"
	"github.com/codewithboateng/l10nfilter/internal/metrics"
)

func classifyCmd(g *globals) *cobra.Command {
	var product, module, path, entity string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify one file or entity for a product",
		Example: `  l10nfilter classify --product mail --module mail --path chrome/messenger-region/region.properties --entity browser.search.order.3
  l10nfilter classify --product suite --path suite/chrome/common/help/images/foo.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name := firstNonEmpty(product, g.cfg.Audit.Product)
			t, ok := filter.Get(name)
			if !ok {
				return fmt.Errorf("%w: %q", filter.ErrUnknownProduct, name)
			}
			p := filter.NormalizePath(path)
			if module == "" {
				// Tree-relative path: strip the longest known module prefix.
				m, rel, ok := filter.SplitModule(p, t.Modules)
				if !ok {
					return fmt.Errorf("no %s module owns %q; pass --module", t.Product, p)
				}
				module, p = m, rel
			}
			c := filter.FileCandidate(module, p)
			if cmd.Flags().Changed("entity") {
				c = filter.EntityCandidate(module, p, entity)
			}
			d := t.Explain(c)
			metrics.ObserveVerdict(t.Product, d.Verdict)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"product":   t.Product,
					"candidate": c,
					"verdict":   d.Verdict,
					"value":     t.Vocabulary.Render(d.Verdict),
					"rule":      d.Rule,
				})
			}
			fmt.Fprintf(out, "%v\t(%s, rule %s)\n", t.Vocabulary.Render(d.Verdict), d.Verdict, d.Rule)
			return nil
		},
	}
	cmd.Flags().StringVarP(&product, "product", "p", "", "Product line (mail, calendar, im, suite)")
	cmd.Flags().StringVarP(&module, "module", "m", "", "Source module; derived from --path when empty")
	cmd.Flags().StringVar(&path, "path", "", "File path relative to the module")
	cmd.Flags().StringVarP(&entity, "entity", "e", "", "Entity key; presence makes this an entity-level check")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decision as JSON")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func rulesCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules [product...]",
		Short: "Print product filter tables in evaluation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			tables := filter.List()
			if len(args) > 0 {
				tables = tables[:0:0]
				for _, name := range args {
					t, ok := filter.Get(name)
					if !ok {
						return fmt.Errorf("%w: %q", filter.ErrUnknownProduct, name)
					}
					tables = append(tables, t)
				}
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, t := range tables {
				fmt.Fprintf(tw, "%s\tvocabulary=%s\tdefault=%s\n", t.Product, t.Vocabulary, t.Default)
				fmt.Fprintf(tw, "  modules\t%v\n", t.Modules)
				for i, r := range t.Rules {
					mods := "*"
					if len(r.Modules) > 0 {
						mods = fmt.Sprint(r.Modules)
					}
					fmt.Fprintf(tw, "  %d. %s\t%s\t%s\tpath=%s\tentity=%s\t-> %s\n",
						i+1, r.Name, mods, r.Scope, r.Path, r.Entity, r.Verdict)
				}
				fmt.Fprintln(tw)
			}
			return tw.Flush()
		},
	}
	return cmd
}
