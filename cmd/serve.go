/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/bootstrap/logging"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/errs"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/httpapi"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the reliability HTTP API",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = services.App.Config.Server.Addr
		}

		if err := services.App.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		cfg := services.App.Config.Reliability
		if cfg.ProfileFile != "" && cfg.WatchProfile {
			go func() {
				if err := services.Reliability.WatchProfile(ctx, cfg.ProfileFile, logging.Logger(ctx)); err != nil && !errors.Is(err, context.Canceled) {
					logging.Warn(ctx, "profile watcher stopped", slog.Any("err", errs.Loggable(err)))
				}
			}()
		}

		server := &http.Server{
			Addr:              addr,
			Handler:           httpapi.NewRouter(services.Reliability, services.Taxonomy),
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()

		logging.Info(ctx, "http server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error(ctx, "http server failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "serve http")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address, overrides server.addr from config")
}
