/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/bootstrap/logging"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/errs"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Failure statistics grouped by code, equipment, or fleet",
}

var statsCodesCmd = &cobra.Command{
	Use:   "codes",
	Short: "Failure totals grouped by failure code",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		stats, err := services.Reliability.FailureCodeStats(ctx, orgFlag)
		if err != nil {
			logging.Error(ctx, "code stats failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "code stats")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tFAILURES\tDOWNTIME\tCOST")
		for _, entry := range stats {
			fmt.Fprintf(w, "%s\t%d\t%.1fh\t%.2f\n",
				entry.FailureCode, entry.FailureCount, entry.TotalDowntimeHours, entry.TotalCost)
		}
		return errs.Wrap(w.Flush(), "flush code stats")
	}),
}

var statsEquipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "Failure totals grouped by equipment unit",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		stats, err := services.Reliability.EquipmentStats(ctx, orgFlag)
		if err != nil {
			logging.Error(ctx, "equipment stats failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "equipment stats")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "EQUIPMENT\tFAILURES\tDOWNTIME\tCOST\tTOP CODE")
		for _, entry := range stats {
			fmt.Fprintf(w, "%s\t%d\t%.1fh\t%.2f\t%s\n",
				entry.EquipmentID, entry.FailureCount, entry.TotalDowntimeHours, entry.TotalCost, entry.TopFailureCode)
		}
		return errs.Wrap(w.Flush(), "flush equipment stats")
	}),
}

var statsOverviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Fleet overview with top performers and units needing attention",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		overview, err := services.Reliability.FleetOverview(ctx, orgFlag)
		if err != nil {
			logging.Error(ctx, "fleet overview failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "fleet overview")
		}
		if overview == nil {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no failure data recorded"); err != nil {
				return errs.Wrap(err, "write overview output")
			}
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "equipment: %d units, failures: %d, downtime: %.1fh, cost: %.2f\n\n",
			overview.EquipmentCount, overview.TotalFailures, overview.TotalDowntimeHours, overview.TotalCost)

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TOP PERFORMERS\tAVAILABILITY\tFAILURES")
		for _, unit := range overview.TopPerformers {
			fmt.Fprintf(w, "%s\t%.1f%%\t%d\n", unit.EquipmentID, unit.AvailabilityPct, unit.FailureCount)
		}
		fmt.Fprintln(w, "\t\t")
		fmt.Fprintln(w, "NEEDS ATTENTION\tAVAILABILITY\tFAILURES")
		for _, unit := range overview.NeedsAttention {
			fmt.Fprintf(w, "%s\t%.1f%%\t%d\n", unit.EquipmentID, unit.AvailabilityPct, unit.FailureCount)
		}
		return errs.Wrap(w.Flush(), "flush overview output")
	}),
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsCodesCmd)
	statsCmd.AddCommand(statsEquipmentCmd)
	statsCmd.AddCommand(statsOverviewCmd)
}
