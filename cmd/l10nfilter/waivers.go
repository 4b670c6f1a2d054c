package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/codewithboateng/l10nfilter/internal/audit"
)

const defaultWaiverTTL = 90 * 24 * time.Hour

func waiversCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "waivers",
		Short: "Manage stored waivers",
	}
	cmd.AddCommand(waiverAddCmd(g), waiverListCmd(g), waiverRevokeCmd(g))
	return cmd
}

func waiverAddCmd(g *globals) *cobra.Command {
	var (
		w       audit.Waiver
		by      string
		expires string
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Waive matching audit results",
		RunE: func(cmd *cobra.Command, args []string) error {
			exp, err := parseExpiry(expires, time.Now().UTC())
			if err != nil {
				return err
			}
			if by == "" {
				by = os.Getenv("USER")
			}
			db, err := g.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			id, err := db.CreateWaiver(w, by, exp)
			if err != nil {
				return fmt.Errorf("create waiver: %w", err)
			}
			g.logger.Info("waiver created", "id", id, "product", w.Product, "path", w.Path, "entity", w.Entity)
			fmt.Fprintf(cmd.OutOrStdout(), "Waiver %d created, expires %s\n", id, exp.Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&w.Product, "product", "", "Product the waiver applies to (empty: any)")
	cmd.Flags().StringVar(&w.Locale, "locale", "", "Locale code (empty: any)")
	cmd.Flags().StringVar(&w.Module, "module", "", "Module (empty: any)")
	cmd.Flags().StringVar(&w.Path, "path", "", "Path within the module (empty: any)")
	cmd.Flags().StringVar(&w.Entity, "entity", "", "Substring of the entity key (empty: any)")
	cmd.Flags().StringVar(&w.Reason, "reason", "", "Why the results are acceptable")
	cmd.Flags().StringVar(&by, "by", "", "Who created the waiver (default $USER)")
	cmd.Flags().StringVar(&expires, "expires", "", "Expiry as RFC 3339 date/time or duration like 720h (default 90 days)")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

// parseExpiry accepts a duration, an RFC 3339 timestamp or a plain date.
func parseExpiry(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return now.Add(defaultWaiverTTL), nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return time.Time{}, fmt.Errorf("expiry duration must be positive: %s", s)
		}
		return now.Add(d), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid expiry %q", s)
}

func waiverListCmd(g *globals) *cobra.Command {
	var active bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored waivers",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := g.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			ws, err := db.ListWaivers(active)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPRODUCT\tLOCALE\tMODULE\tPATH\tENTITY\tEXPIRES\tSTATE\tREASON")
			for _, w := range ws {
				state := "active"
				switch {
				case w.RevokedAt != nil:
					state = "revoked"
				case !w.ExpiresAt.After(time.Now()):
					state = "expired"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					w.ID, dash(w.Product), dash(w.Locale), dash(w.Module), dash(w.Path), dash(w.Entity),
					w.ExpiresAt.Format(time.DateOnly), state, w.Reason)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&active, "active", false, "Only unexpired, unrevoked waivers")
	return cmd
}

func waiverRevokeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "revoke <id>",
		Short: "Revoke a stored waiver",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid waiver id %q", args[0])
			}
			db, err := g.openDB()
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.RevokeWaiver(id); err != nil {
				return fmt.Errorf("revoke waiver: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Waiver %d revoked\n", id)
			return nil
		},
	}
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
