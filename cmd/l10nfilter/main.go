package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codewithboateng/l10nfilter/internal/audit"
	"github.com/codewithboateng/l10nfilter/internal/filterdsl"
	"github.com/codewithboateng/l10nfilter/internal/shared"
	"github.com/codewithboateng/l10nfilter/internal/storage"
)

const appName = "l10nfilter"

// errAuditFailed makes the process exit 1 after a run that still has errors.
var errAuditFailed = errors.New("audit has errors")

func main() {
	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errAuditFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// globals are the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	dbPath     string
	rulePack   string

	cfg    shared.Config
	logger *slog.Logger
}

func rootCmd() *cobra.Command {
	g := &globals{}
	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Locale filter for Thunderbird and SeaMonkey localizations",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup()
		},
	}
	cmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Path to YAML config (optional)")
	cmd.PersistentFlags().StringVar(&g.dbPath, "db", "", "SQLite database path")
	cmd.PersistentFlags().StringVar(&g.rulePack, "rules", "", "YAML rule pack replacing built-in product tables")

	cmd.AddCommand(
		classifyCmd(g),
		auditCmd(g),
		reportCmd(g),
		diffCmd(g),
		rulesCmd(g),
		waiversCmd(g),
		serveCmd(g),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (run format %s)\n", appName, audit.Version)
			},
		},
	)
	return cmd
}

// setup resolves configuration with precedence flags > config > defaults and
// installs the logger and any rule pack.
func (g *globals) setup() error {
	cfg, err := shared.LoadConfig(g.configPath)
	if err != nil {
		return err
	}
	g.cfg = cfg
	g.logger = shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if g.dbPath == "" {
		g.dbPath = cfg.Database.DSN
	}
	if g.rulePack == "" {
		g.rulePack = cfg.Filters.Pack
	}
	if g.rulePack != "" {
		n, err := filterdsl.LoadAndRegister(g.rulePack)
		if err != nil {
			return err
		}
		g.logger.Debug("rule pack loaded", "path", g.rulePack, "products", n)
	}
	return nil
}

func (g *globals) openDB() (*storage.DB, error) {
	db, err := storage.OpenSQLite(g.dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.CreateSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db schema: %w", err)
	}
	return db, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
