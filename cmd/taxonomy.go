/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/bootstrap/logging"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/errs"
	"github.com/tulkenz-ims/rork-tulkenz-erp-clone-sub016/internal/usecase/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Manage failure code, root cause, and action catalogs",
}

var taxonomyCodeCreateCmd = &cobra.Command{
	Use:   "code-create",
	Short: "Register a new failure code",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		code, _ := cmd.Flags().GetString("code")
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")
		category, _ := cmd.Flags().GetString("category")
		severity, _ := cmd.Flags().GetString("severity")
		mttr, _ := cmd.Flags().GetFloat64("mttr")

		created, err := services.Taxonomy.CreateFailureCode(ctx, taxonomy.CreateFailureCodeInput{
			OrgID:       orgFlag,
			Code:        code,
			Name:        name,
			Description: description,
			Category:    category,
			Severity:    severity,
			MTTRHours:   mttr,
		})
		if err != nil {
			logging.Error(ctx, "create failure code failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create failure code")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "created failure code: %s (%s)\n", created.Code, created.FailureCodeID); err != nil {
			return errs.Wrap(err, "write code-create output")
		}
		return nil
	}),
}

var taxonomyCodeListCmd = &cobra.Command{
	Use:   "code-list",
	Short: "List failure codes",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		all, _ := cmd.Flags().GetBool("all")
		codes, err := services.Taxonomy.ListFailureCodes(ctx, orgFlag, !all)
		if err != nil {
			logging.Error(ctx, "list failure codes failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list failure codes")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCODE\tNAME\tCATEGORY\tSEVERITY\tACTIVE")
		for _, code := range codes {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\n",
				code.FailureCodeID, code.Code, code.Name, code.Category, code.Severity, code.IsActive)
		}
		return errs.Wrap(w.Flush(), "flush code list")
	}),
}

var taxonomyCodeDeactivateCmd = &cobra.Command{
	Use:   "code-deactivate <failure-code-id>",
	Short: "Retire a failure code from new reports",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		if err := services.Taxonomy.DeactivateFailureCode(ctx, orgFlag, cmd.Flags().Arg(0)); err != nil {
			logging.Error(ctx, "deactivate failure code failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "deactivate failure code")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "deactivated failure code: %s\n", cmd.Flags().Arg(0)); err != nil {
			return errs.Wrap(err, "write code-deactivate output")
		}
		return nil
	}),
}

var taxonomyCodeDeleteCmd = &cobra.Command{
	Use:   "code-delete <failure-code-id>",
	Short: "Delete a failure code from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		force, _ := cmd.Flags().GetBool("force")
		if err := services.Taxonomy.DeleteFailureCode(ctx, orgFlag, cmd.Flags().Arg(0), force); err != nil {
			logging.Error(ctx, "delete failure code failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "delete failure code")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted failure code: %s\n", cmd.Flags().Arg(0)); err != nil {
			return errs.Wrap(err, "write code-delete output")
		}
		return nil
	}),
}

var taxonomyCauseCreateCmd = &cobra.Command{
	Use:   "cause-create",
	Short: "Register a canonical root cause",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		code, _ := cmd.Flags().GetString("code")
		name, _ := cmd.Flags().GetString("name")
		category, _ := cmd.Flags().GetString("category")

		created, err := services.Taxonomy.CreateRootCause(ctx, taxonomy.CreateRootCauseInput{
			OrgID:    orgFlag,
			Code:     code,
			Name:     name,
			Category: category,
		})
		if err != nil {
			logging.Error(ctx, "create root cause failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create root cause")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "created root cause: %s (%s)\n", created.Code, created.RootCauseID); err != nil {
			return errs.Wrap(err, "write cause-create output")
		}
		return nil
	}),
}

var taxonomyActionCreateCmd = &cobra.Command{
	Use:   "action-create",
	Short: "Register a canonical repair action",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		code, _ := cmd.Flags().GetString("code")
		name, _ := cmd.Flags().GetString("name")
		category, _ := cmd.Flags().GetString("category")

		created, err := services.Taxonomy.CreateActionTaken(ctx, taxonomy.CreateActionTakenInput{
			OrgID:    orgFlag,
			Code:     code,
			Name:     name,
			Category: category,
		})
		if err != nil {
			logging.Error(ctx, "create action taken failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "create action taken")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "created action taken: %s (%s)\n", created.Code, created.ActionTakenID); err != nil {
			return errs.Wrap(err, "write action-create output")
		}
		return nil
	}),
}

var taxonomyVocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Show the closed vocabularies",
	RunE: withApp(func(cmd *cobra.Command, services appServices) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "failure categories:     %s\n", strings.Join(services.Taxonomy.FailureCategories(), ", "))
		fmt.Fprintf(out, "severities:             %s\n", strings.Join(services.Taxonomy.Severities(), ", "))
		fmt.Fprintf(out, "root cause categories:  %s\n", strings.Join(services.Taxonomy.RootCauseCategories(), ", "))
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
	taxonomyCmd.AddCommand(taxonomyCodeCreateCmd)
	taxonomyCmd.AddCommand(taxonomyCodeListCmd)
	taxonomyCmd.AddCommand(taxonomyCodeDeactivateCmd)
	taxonomyCmd.AddCommand(taxonomyCodeDeleteCmd)
	taxonomyCmd.AddCommand(taxonomyCauseCreateCmd)
	taxonomyCmd.AddCommand(taxonomyActionCreateCmd)
	taxonomyCmd.AddCommand(taxonomyVocabCmd)

	taxonomyCodeCreateCmd.Flags().String("code", "", "Short code, unique per organization")
	taxonomyCodeCreateCmd.Flags().String("name", "", "Display name")
	taxonomyCodeCreateCmd.Flags().String("description", "", "Description")
	taxonomyCodeCreateCmd.Flags().String("category", "", "Failure category")
	taxonomyCodeCreateCmd.Flags().String("severity", "", "Severity")
	taxonomyCodeCreateCmd.Flags().Float64("mttr", 0, "Expected repair hours")

	taxonomyCodeListCmd.Flags().Bool("all", false, "Include inactive codes")
	taxonomyCodeDeleteCmd.Flags().Bool("force", false, "Delete even when referenced by failure records")

	taxonomyCauseCreateCmd.Flags().String("code", "", "Short code")
	taxonomyCauseCreateCmd.Flags().String("name", "", "Display name")
	taxonomyCauseCreateCmd.Flags().String("category", "", "Root cause category")

	taxonomyActionCreateCmd.Flags().String("code", "", "Short code")
	taxonomyActionCreateCmd.Flags().String("name", "", "Display name")
	taxonomyActionCreateCmd.Flags().String("category", "", "Free-form grouping")
}
