// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/internmatch/internal/secrets"
	"github.com/pdiddy/internmatch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve recommendations over HTTP",
	Long: `Serve starts the JSON HTTP API. The model bundle is loaded at startup when
present; otherwise the catalog store is fitted on the first request.

The refit endpoint is enabled when an admin token is configured
(server.admin_token or .secrets/admin-token).`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	cfg.Server.AdminToken = secrets.Resolve(cfg.Server.AdminToken, loadedSecrets, secrets.AdminToken)
	if cfg.Server.AdminToken == "" {
		appLog.Info("admin token not configured, refit endpoint disabled")
	}

	eng, store, err := openEngine(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !eng.Ready() {
		if _, err := eng.Refit(ctx); err != nil {
			appLog.Warn("initial fit failed, will retry on first request", zap.Error(err))
		}
	}

	srv := server.New(server.Options{
		Config:       cfg.Server,
		Engine:       eng,
		Logger:       appLog,
		ModelVersion: cfg.Artifacts.ModelVersion,
	})
	return srv.Run(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default: server.addr)")

	rootCmd.AddCommand(serveCmd)
}
