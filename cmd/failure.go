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
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/reliability"
)

var failureCmd = &cobra.Command{
	Use:   "failure",
	Short: "Report and manage equipment failure records",
}

var failureReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Report a new equipment failure",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		equipment, _ := cmd.Flags().GetString("equipment")
		equipmentName, _ := cmd.Flags().GetString("equipment-name")
		code, _ := cmd.Flags().GetString("code")
		date, _ := cmd.Flags().GetString("date")
		reporter, _ := cmd.Flags().GetString("reporter")
		description, _ := cmd.Flags().GetString("description")
		downtime, _ := cmd.Flags().GetFloat64("downtime")
		repair, _ := cmd.Flags().GetFloat64("repair")
		partsCost, _ := cmd.Flags().GetFloat64("parts-cost")
		laborCost, _ := cmd.Flags().GetFloat64("labor-cost")
		previous, _ := cmd.Flags().GetString("previous")
		workOrder, _ := cmd.Flags().GetString("work-order")

		created, err := services.Reliability.ReportFailure(ctx, reliability.ReportFailureInput{
			OrgID:             orgFlag,
			WorkOrderNumber:   workOrder,
			EquipmentID:       equipment,
			EquipmentName:     equipmentName,
			FailureCodeID:     code,
			FailureDate:       date,
			ReportedBy:        reporter,
			Description:       description,
			DowntimeHours:     downtime,
			RepairHours:       repair,
			PartsCost:         partsCost,
			LaborCost:         laborCost,
			PreviousFailureID: previous,
		})
		if err != nil {
			logging.Error(ctx, "report failure failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "report failure")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "reported failure: %s equipment=%s code=%s\n", created.FailureRecordID, created.EquipmentID, created.FailureCode); err != nil {
			return errs.Wrap(err, "write report output")
		}
		return nil
	}),
}

var failureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List failure records, newest first",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		equipment, _ := cmd.Flags().GetString("equipment")
		code, _ := cmd.Flags().GetString("code")
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		limit, _ := cmd.Flags().GetInt("limit")
		recurringOnly, _ := cmd.Flags().GetBool("recurring")

		filter := ports.FailureFilter{
			EquipmentID:   equipment,
			FailureCodeID: code,
			From:          from,
			To:            to,
			Limit:         limit,
		}
		if recurringOnly {
			recurring := true
			filter.Recurring = &recurring
		}

		records, err := services.Reliability.ListFailures(ctx, orgFlag, filter)
		if err != nil {
			logging.Error(ctx, "list failures failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list failures")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEQUIPMENT\tCODE\tDATE\tDOWNTIME\tRECURRING")
		for _, rec := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\t%t\n",
				rec.FailureRecordID, rec.EquipmentID, rec.FailureCode, rec.FailureDate, rec.DowntimeHours, rec.IsRecurring)
		}
		return errs.Wrap(w.Flush(), "flush failure list")
	}),
}

var failureShowCmd = &cobra.Command{
	Use:   "show <failure-record-id>",
	Short: "Show one failure record",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		record, err := services.Reliability.GetFailure(ctx, orgFlag, cmd.Flags().Arg(0))
		if err != nil {
			logging.Error(ctx, "get failure failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "get failure")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id:           %s\n", record.FailureRecordID)
		fmt.Fprintf(out, "equipment:    %s (%s)\n", record.EquipmentID, record.EquipmentName)
		fmt.Fprintf(out, "code:         %s\n", record.FailureCode)
		fmt.Fprintf(out, "date:         %s\n", record.FailureDate)
		fmt.Fprintf(out, "reported by:  %s\n", record.ReportedBy)
		fmt.Fprintf(out, "downtime:     %.1fh repair: %.1fh\n", record.DowntimeHours, record.RepairHours)
		fmt.Fprintf(out, "cost:         parts %.2f labor %.2f\n", record.PartsCost, record.LaborCost)
		fmt.Fprintf(out, "recurring:    %t\n", record.IsRecurring)
		if record.PreviousFailureID != "" {
			fmt.Fprintf(out, "previous:     %s\n", record.PreviousFailureID)
		}
		if record.Description != "" {
			fmt.Fprintf(out, "description:  %s\n", record.Description)
		}
		return nil
	}),
}

var failureAmendCmd = &cobra.Command{
	Use:   "amend <failure-record-id>",
	Short: "Amend fields on an existing failure record",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		input := reliability.AmendFailureInput{
			OrgID:           orgFlag,
			FailureRecordID: cmd.Flags().Arg(0),
		}
		if cmd.Flags().Changed("description") {
			v, _ := cmd.Flags().GetString("description")
			input.Description = &v
		}
		if cmd.Flags().Changed("downtime") {
			v, _ := cmd.Flags().GetFloat64("downtime")
			input.DowntimeHours = &v
		}
		if cmd.Flags().Changed("repair") {
			v, _ := cmd.Flags().GetFloat64("repair")
			input.RepairHours = &v
		}
		if cmd.Flags().Changed("parts-cost") {
			v, _ := cmd.Flags().GetFloat64("parts-cost")
			input.PartsCost = &v
		}
		if cmd.Flags().Changed("labor-cost") {
			v, _ := cmd.Flags().GetFloat64("labor-cost")
			input.LaborCost = &v
		}
		if cmd.Flags().Changed("root-cause") {
			v, _ := cmd.Flags().GetString("root-cause")
			input.RootCauseID = &v
		}
		if cmd.Flags().Changed("action-taken") {
			v, _ := cmd.Flags().GetString("action-taken")
			input.ActionTakenID = &v
		}

		updated, err := services.Reliability.AmendFailure(ctx, input)
		if err != nil {
			logging.Error(ctx, "amend failure failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "amend failure")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "amended failure: %s\n", updated.FailureRecordID); err != nil {
			return errs.Wrap(err, "write amend output")
		}
		return nil
	}),
}

var failureDeleteCmd = &cobra.Command{
	Use:   "delete <failure-record-id>",
	Short: "Delete a failure record",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		force, _ := cmd.Flags().GetBool("force")
		if err := services.Reliability.DeleteFailure(ctx, orgFlag, cmd.Flags().Arg(0), force); err != nil {
			logging.Error(ctx, "delete failure failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "delete failure")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted failure: %s\n", cmd.Flags().Arg(0)); err != nil {
			return errs.Wrap(err, "write delete output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(failureCmd)
	failureCmd.AddCommand(failureReportCmd)
	failureCmd.AddCommand(failureListCmd)
	failureCmd.AddCommand(failureShowCmd)
	failureCmd.AddCommand(failureAmendCmd)
	failureCmd.AddCommand(failureDeleteCmd)

	failureReportCmd.Flags().String("equipment", "", "Equipment id")
	failureReportCmd.Flags().String("equipment-name", "", "Equipment display name")
	failureReportCmd.Flags().String("code", "", "Failure code id")
	failureReportCmd.Flags().String("date", "", "Failure date (RFC 3339 or YYYY-MM-DD)")
	failureReportCmd.Flags().String("reporter", "", "Reporter user id")
	failureReportCmd.Flags().String("description", "", "Failure description")
	failureReportCmd.Flags().Float64("downtime", 0, "Downtime hours")
	failureReportCmd.Flags().Float64("repair", 0, "Repair hours")
	failureReportCmd.Flags().Float64("parts-cost", 0, "Parts cost")
	failureReportCmd.Flags().Float64("labor-cost", 0, "Labor cost")
	failureReportCmd.Flags().String("previous", "", "Previous failure record id for recurrences")
	failureReportCmd.Flags().String("work-order", "", "Originating work order number")

	failureListCmd.Flags().String("equipment", "", "Filter by equipment id")
	failureListCmd.Flags().String("code", "", "Filter by failure code id")
	failureListCmd.Flags().String("from", "", "Earliest failure date")
	failureListCmd.Flags().String("to", "", "Latest failure date")
	failureListCmd.Flags().Int("limit", 0, "Maximum rows")
	failureListCmd.Flags().Bool("recurring", false, "Only recurring failures")

	failureAmendCmd.Flags().String("description", "", "New description")
	failureAmendCmd.Flags().Float64("downtime", 0, "New downtime hours")
	failureAmendCmd.Flags().Float64("repair", 0, "New repair hours")
	failureAmendCmd.Flags().Float64("parts-cost", 0, "New parts cost")
	failureAmendCmd.Flags().Float64("labor-cost", 0, "New labor cost")
	failureAmendCmd.Flags().String("root-cause", "", "Root cause id")
	failureAmendCmd.Flags().String("action-taken", "", "Action taken id")

	failureDeleteCmd.Flags().Bool("force", false, "Cascade delete over attached analyses")
}
