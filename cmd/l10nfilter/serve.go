package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codewithboateng/l10nfilter/internal/api"
)

func serveCmd(g *globals) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only classification and runs API",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr = firstNonEmpty(addr, g.cfg.Server.Addr)
			db, err := g.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			s := &api.Server{DB: db, Logger: g.logger, AllowedOrigins: g.cfg.Server.AllowedOrigins}
			srv := &http.Server{
				Addr:              addr,
				Handler:           s.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				g.logger.Info("api listening", "addr", addr, "db", g.dbPath)
				errc <- srv.ListenAndServe()
			}()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			g.logger.Info("api shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	return cmd
}
