package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglabs/coaflow/internal/cli"
	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/review"
)

func reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review and correct extracted fields for a document",
		RunE:  runReview,
	}

	cmd.Flags().StringP("document", "d", "", "Document id")
	_ = viper.BindPFlag("review.document", cmd.Flags().Lookup("document"))

	return cmd
}

func runReview(cmd *cobra.Command, _ []string) error {
	documentID := viper.GetString("review.document")
	if documentID == "" {
		return surface(common.Precondition("document id is required; pass --document"), "missing selection")
	}

	eng, cleanup, err := buildEngine(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()

	fields, err := eng.Fields(ctx, documentID)
	if err != nil {
		return surface(err, "failed to load extracted fields")
	}
	if len(fields) == 0 {
		fmt.Fprintln(os.Stdout, cli.FormatWarning("No extracted fields found; run 'coaflow process' first."))
		return nil
	}

	store := review.NewStore(fields)

	// Standalone review has no template selection; labels fall back to
	// raw field names.
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	if err := prompter.ReviewFields(ctx, store, nil); err != nil {
		return surface(err, "review aborted")
	}

	if !store.Dirty() {
		fmt.Fprintln(os.Stdout, cli.FormatSuccess("No changes staged."))
		return nil
	}

	if err := eng.SaveFields(ctx, store); err != nil {
		return surface(err, "failed to save corrections")
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess("Corrections saved."))
	return nil
}
