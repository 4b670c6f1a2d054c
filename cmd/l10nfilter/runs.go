package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/reporting"
)

func reportCmd(g *globals) *cobra.Command {
	var runID, outDir string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Re-render JSON and HTML reports for a stored run",
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir = firstNonEmpty(outDir, g.cfg.Reporting.OutDir)
			db, err := g.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			var run audit.Run
			if runID == "" || runID == "latest" {
				run, err = db.LoadLatestRun()
			} else {
				run, err = db.LoadRun(runID)
			}
			if err != nil {
				return fmt.Errorf("load run: %w", err)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("cannot create out dir: %w", err)
			}
			jsonPath, err := reporting.WriteJSON(run.ID, outDir, &run)
			if err != nil {
				return err
			}
			htmlPath, err := reporting.WriteHTML(run.ID, outDir, &run)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report OK\n  Run: %s\n  JSON: %s\n  HTML: %s\n", run.ID, jsonPath, htmlPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "Run ID (default: latest)")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	return cmd
}

func diffCmd(g *globals) *cobra.Command {
	var base, head, outDir string
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare two stored runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			outDir = firstNonEmpty(outDir, g.cfg.Reporting.OutDir)
			db, err := g.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			br, err := db.LoadRun(base)
			if err != nil {
				return fmt.Errorf("load base run: %w", err)
			}
			hr, err := db.LoadRun(head)
			if err != nil {
				return fmt.Errorf("load head run: %w", err)
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("cannot create out dir: %w", err)
			}
			path, err := reporting.WriteDiffJSON(base, head, outDir, &br, &hr)
			if err != nil {
				return err
			}
			d := reporting.Diff(base, head, &br, &hr)
			fmt.Fprintf(cmd.OutOrStdout(), "Diff OK\n  New: %d  Resolved: %d  Changed: %d\n  %s\n",
				d.Summary.NewCount, d.Summary.ResolvedCount, d.Summary.ChangedCount, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "Base run ID")
	cmd.Flags().StringVar(&head, "head", "", "Head run ID")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("head")
	return cmd
}
