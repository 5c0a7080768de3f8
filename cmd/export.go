/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/bootstrap/logging"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/errs"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export reliability data as JSON or YAML",
}

var exportFailuresCmd = &cobra.Command{
	Use:   "failures",
	Short: "Export the organization's failure records",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		records, err := services.Reliability.ListFailures(ctx, orgFlag, ports.FailureFilter{})
		if err != nil {
			logging.Error(ctx, "export failures failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "export failures")
		}
		return renderExport(cmd, records)
	}),
}

var exportAnalysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Export the organization's root cause analyses",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		analyses, err := services.Reliability.ListAnalyses(ctx, orgFlag)
		if err != nil {
			logging.Error(ctx, "export analyses failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "export analyses")
		}
		return renderExport(cmd, analyses)
	}),
}

func renderExport(cmd *cobra.Command, payload any) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return errs.Wrap(encoder.Encode(payload), "encode json export")
	case "yaml", "yml":
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		defer encoder.Close()
		return errs.Wrap(encoder.Encode(payload), "encode yaml export")
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportFailuresCmd)
	exportCmd.AddCommand(exportAnalysesCmd)

	exportCmd.PersistentFlags().String("format", "json", "Output format: json or yaml")
}
