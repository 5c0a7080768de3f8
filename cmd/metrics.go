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

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Reliability metrics over the rolling yearly window",
}

var metricsEquipmentCmd = &cobra.Command{
	Use:   "equipment <equipment-id>",
	Short: "MTBF, MTTR, and availability for one equipment unit",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		metrics, err := services.Reliability.EquipmentMetrics(ctx, orgFlag, cmd.Flags().Arg(0))
		if err != nil {
			logging.Error(ctx, "equipment metrics failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "equipment metrics")
		}
		if metrics == nil {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no failure data recorded"); err != nil {
				return errs.Wrap(err, "write metrics output")
			}
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "equipment:     %s\n", metrics.EquipmentID)
		fmt.Fprintf(out, "failures:      %d\n", metrics.FailureCount)
		fmt.Fprintf(out, "mtbf:          %.0fh (%.0fd)\n", metrics.MTBFHours, metrics.MTBFDays)
		fmt.Fprintf(out, "mttr:          %.1fh\n", metrics.MTTRHours)
		fmt.Fprintf(out, "availability:  %.1f%%\n", metrics.AvailabilityPct)
		fmt.Fprintf(out, "downtime:      %.1fh total\n", metrics.TotalDowntimeHours)
		fmt.Fprintf(out, "cost:          %.2f total\n", metrics.TotalCost)
		return nil
	}),
}

var metricsFleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Pooled fleet-level reliability metrics",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		metrics, err := services.Reliability.FleetMetrics(ctx, orgFlag)
		if err != nil {
			logging.Error(ctx, "fleet metrics failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "fleet metrics")
		}
		if metrics == nil {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), "no failure data recorded"); err != nil {
				return errs.Wrap(err, "write metrics output")
			}
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "equipment:         %d units\n", metrics.EquipmentCount)
		fmt.Fprintf(out, "failures:          %d\n", metrics.TotalFailures)
		fmt.Fprintf(out, "avg mtbf:          %.0fh\n", metrics.AvgMTBFHours)
		fmt.Fprintf(out, "avg mttr:          %.1fh\n", metrics.AvgMTTRHours)
		fmt.Fprintf(out, "avg availability:  %.1f%%\n", metrics.AvgAvailabilityPct)
		fmt.Fprintf(out, "downtime:          %.1fh total\n", metrics.TotalDowntimeHours)
		fmt.Fprintf(out, "cost:              %.2f total\n", metrics.TotalCost)
		return nil
	}),
}

var metricsTrendCmd = &cobra.Command{
	Use:   "trend <equipment-id>",
	Short: "Monthly failure trend for one equipment unit",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		months, _ := cmd.Flags().GetInt("months")
		points, err := services.Reliability.MonthlyTrend(ctx, orgFlag, cmd.Flags().Arg(0), months)
		if err != nil {
			logging.Error(ctx, "monthly trend failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "monthly trend")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MONTH\tFAILURES\tMTBF\tMTTR\tAVAILABILITY")
		for _, point := range points {
			fmt.Fprintf(w, "%s\t%d\t%.0fh\t%.1fh\t%.1f%%\n",
				point.Month, point.FailureCount, point.MTBFHours, point.MTTRHours, point.AvailabilityPct)
		}
		return errs.Wrap(w.Flush(), "flush trend output")
	}),
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.AddCommand(metricsEquipmentCmd)
	metricsCmd.AddCommand(metricsFleetCmd)
	metricsCmd.AddCommand(metricsTrendCmd)

	metricsTrendCmd.Flags().Int("months", 0, "Trailing window in months (default 6)")
}
