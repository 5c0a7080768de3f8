/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/bootstrap/logging"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/errs"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/ports"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/reliability"
)

var rcaCmd = &cobra.Command{
	Use:   "rca",
	Short: "Root cause analysis workflow",
}

var rcaStartCmd = &cobra.Command{
	Use:   "start <failure-record-id>",
	Short: "Open a draft analysis against a failure record",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		performedBy, _ := cmd.Flags().GetString("performed-by")
		problem, _ := cmd.Flags().GetString("problem")
		category, _ := cmd.Flags().GetString("category")
		verification, _ := cmd.Flags().GetBool("verification")
		corrective, _ := cmd.Flags().GetStringSlice("corrective")
		preventive, _ := cmd.Flags().GetStringSlice("preventive")

		analysis, err := services.Reliability.StartAnalysis(ctx, reliability.StartAnalysisInput{
			OrgID:                orgFlag,
			FailureRecordID:      cmd.Flags().Arg(0),
			PerformedBy:          performedBy,
			ProblemStatement:     problem,
			RootCauseCategory:    category,
			CorrectiveActions:    actionInputs(corrective),
			PreventiveActions:    actionInputs(preventive),
			VerificationRequired: verification,
		})
		if err != nil {
			logging.Error(ctx, "start analysis failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "start analysis")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "started analysis: %s status=%s\n", analysis.AnalysisID, analysis.Status); err != nil {
			return errs.Wrap(err, "write start output")
		}
		return nil
	}),
}

var rcaBeginCmd = &cobra.Command{
	Use:   "begin <analysis-id>",
	Short: "Move a draft analysis into in_progress",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		return transitionRca(cmd, services, "begin analysis", func() (ports.Analysis, error) {
			return services.Reliability.BeginAnalysis(cmd.Context(), orgFlag, cmd.Flags().Arg(0))
		})
	}),
}

var rcaCompleteCmd = &cobra.Command{
	Use:   "complete <analysis-id>",
	Short: "Complete an in_progress analysis",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		return transitionRca(cmd, services, "complete analysis", func() (ports.Analysis, error) {
			return services.Reliability.CompleteAnalysis(cmd.Context(), orgFlag, cmd.Flags().Arg(0))
		})
	}),
}

var rcaVerifyCmd = &cobra.Command{
	Use:   "verify <analysis-id>",
	Short: "Verify a completed analysis",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		verifiedBy, _ := cmd.Flags().GetString("verified-by")
		return transitionRca(cmd, services, "verify analysis", func() (ports.Analysis, error) {
			return services.Reliability.VerifyAnalysis(cmd.Context(), orgFlag, cmd.Flags().Arg(0), verifiedBy)
		})
	}),
}

var rcaCompleteItemCmd = &cobra.Command{
	Use:   "complete-item <analysis-id>",
	Short: "Mark one corrective or preventive action completed",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		list, _ := cmd.Flags().GetString("list")
		index, _ := cmd.Flags().GetInt("index")
		return transitionRca(cmd, services, "complete action item", func() (ports.Analysis, error) {
			return services.Reliability.CompleteActionItem(cmd.Context(), orgFlag, cmd.Flags().Arg(0), list, index)
		})
	}),
}

var rcaShowCmd = &cobra.Command{
	Use:   "show <analysis-id>",
	Short: "Show one analysis",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		analysis, err := services.Reliability.GetAnalysis(ctx, orgFlag, cmd.Flags().Arg(0))
		if err != nil {
			logging.Error(ctx, "get analysis failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "get analysis")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "id:         %s\n", analysis.AnalysisID)
		fmt.Fprintf(out, "record:     %s\n", analysis.FailureRecordID)
		fmt.Fprintf(out, "equipment:  %s (%s)\n", analysis.EquipmentID, analysis.EquipmentName)
		fmt.Fprintf(out, "status:     %s\n", analysis.Status)
		fmt.Fprintf(out, "performer:  %s\n", analysis.PerformedBy)
		if analysis.ProblemStatement != "" {
			fmt.Fprintf(out, "problem:    %s\n", analysis.ProblemStatement)
		}
		if analysis.VerifiedBy != "" {
			fmt.Fprintf(out, "verified:   %s at %s\n", analysis.VerifiedBy, analysis.VerificationDate)
		}
		printActionItems(out, "corrective", analysis.CorrectiveActions)
		printActionItems(out, "preventive", analysis.PreventiveActions)
		return nil
	}),
}

var rcaListCmd = &cobra.Command{
	Use:   "list",
	Short: "List analyses, newest first",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		record, _ := cmd.Flags().GetString("record")
		var analyses []ports.Analysis
		var err error
		if record != "" {
			analyses, err = services.Reliability.ListAnalysesForFailure(ctx, orgFlag, record)
		} else {
			analyses, err = services.Reliability.ListAnalyses(ctx, orgFlag)
		}
		if err != nil {
			logging.Error(ctx, "list analyses failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list analyses")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tRECORD\tEQUIPMENT\tSTATUS\tPERFORMER")
		for _, analysis := range analyses {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				analysis.AnalysisID, analysis.FailureRecordID, analysis.EquipmentID, analysis.Status, analysis.PerformedBy)
		}
		return errs.Wrap(w.Flush(), "flush analysis list")
	}),
}

func transitionRca(cmd *cobra.Command, services appServices, action string, fn func() (ports.Analysis, error)) error {
	ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

	analysis, err := fn()
	if err != nil {
		logging.Error(ctx, action+" failed", slog.Any("err", errs.Loggable(err)))
		return errs.Wrap(err, action)
	}

	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "analysis %s status=%s\n", analysis.AnalysisID, analysis.Status); err != nil {
		return errs.Wrap(err, "write rca output")
	}
	return nil
}

func actionInputs(actions []string) []reliability.ActionItemInput {
	if len(actions) == 0 {
		return nil
	}
	items := make([]reliability.ActionItemInput, 0, len(actions))
	for _, action := range actions {
		items = append(items, reliability.ActionItemInput{Action: action})
	}
	return items
}

func printActionItems(out io.Writer, kind string, items []ports.ActionItem) {
	for i, item := range items {
		fmt.Fprintf(out, "%s[%d]:  %s (%s", kind, i, item.Action, item.Status)
		if item.CompletedDate != "" {
			fmt.Fprintf(out, " at %s", item.CompletedDate)
		}
		fmt.Fprintln(out, ")")
	}
}

func init() {
	rootCmd.AddCommand(rcaCmd)
	rcaCmd.AddCommand(rcaStartCmd)
	rcaCmd.AddCommand(rcaBeginCmd)
	rcaCmd.AddCommand(rcaCompleteCmd)
	rcaCmd.AddCommand(rcaVerifyCmd)
	rcaCmd.AddCommand(rcaCompleteItemCmd)
	rcaCmd.AddCommand(rcaShowCmd)
	rcaCmd.AddCommand(rcaListCmd)

	rcaStartCmd.Flags().String("performed-by", "", "Analyst user id")
	rcaStartCmd.Flags().String("problem", "", "Problem statement")
	rcaStartCmd.Flags().String("category", "", "Root cause category")
	rcaStartCmd.Flags().Bool("verification", false, "Require verification before closure")
	rcaStartCmd.Flags().StringSlice("corrective", nil, "Corrective action descriptions")
	rcaStartCmd.Flags().StringSlice("preventive", nil, "Preventive action descriptions")

	rcaVerifyCmd.Flags().String("verified-by", "", "Verifier user id")

	rcaCompleteItemCmd.Flags().String("list", "corrective", "Action list: corrective or preventive")
	rcaCompleteItemCmd.Flags().Int("index", 0, "Zero-based item index")

	rcaListCmd.Flags().String("record", "", "Filter by failure record id")
}
