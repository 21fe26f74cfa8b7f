package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglabs/coaflow/internal/cli"
	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/confidence"
	"github.com/reglabs/coaflow/internal/review"
)

func processCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Upload and process a COA document",
		Long: `Upload a certificate-of-analysis document, run extraction on it, and
store the extracted fields locally. With --review, walk the fields
interactively and save corrections before finishing.`,
		RunE: runProcess,
	}

	cmd.Flags().StringP("compound", "c", "", "Compound id or code")
	cmd.Flags().StringP("template", "t", "", "Template id or region")
	cmd.Flags().StringP("file", "f", "", "Path to the document to upload")
	cmd.Flags().Bool("review", false, "Review extracted fields interactively")

	_ = viper.BindPFlag("process.compound", cmd.Flags().Lookup("compound"))
	_ = viper.BindPFlag("process.template", cmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("process.file", cmd.Flags().Lookup("file"))
	_ = viper.BindPFlag("process.review", cmd.Flags().Lookup("review"))

	return cmd
}

func runProcess(cmd *cobra.Command, _ []string) error {
	compoundArg := viper.GetString("process.compound")
	templateArg := viper.GetString("process.template")
	filePath := viper.GetString("process.file")
	interactive := viper.GetBool("process.review")

	if compoundArg == "" {
		return surface(common.Precondition("compound is required; pass --compound"), "missing selection")
	}
	if templateArg == "" {
		return surface(common.Precondition("template is required; pass --template"), "missing selection")
	}
	if filePath == "" {
		return surface(common.Precondition("a document file is required; pass --file"), "missing selection")
	}

	eng, cleanup, err := buildEngine(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()

	compounds, err := eng.Compounds(ctx)
	if err != nil {
		return surface(err, "failed to list compounds")
	}
	compound, err := findCompound(compounds, compoundArg)
	if err != nil {
		return surface(err, "unknown compound")
	}

	templates, err := eng.Templates(ctx, compound.ID)
	if err != nil {
		return surface(err, "failed to list templates")
	}
	template, err := findTemplate(templates, templateArg)
	if err != nil {
		return surface(err, "unknown template")
	}

	file, err := os.Open(filePath)
	if err != nil {
		return common.NewUserError("cannot open document file", err)
	}
	defer func() { _ = file.Close() }()

	sess := review.NewSession().
		WithCompound(*compound).
		WithTemplate(*template)

	bar := cli.NewSpinner(os.Stderr, "Processing document...")
	sess, err = eng.ProcessDocument(ctx, sess, file, filepath.Base(filePath))
	_ = bar.Finish()
	if err != nil {
		return surface(err, "failed to process document")
	}

	if sess.Document == nil {
		fmt.Fprintln(os.Stdout, cli.FormatWarning("Processing result was superseded by a newer selection."))
		return nil
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf("Processed %s (document %s)", sess.Document.Filename, sess.Document.ID)))

	store := sess.Store()
	flagged := 0
	for _, field := range store.Fields() {
		tier := confidence.Classify(field.ConfidenceScore)
		marker := "  "
		if tier.NeedsReview() {
			marker = cli.ErrorStyle.Render(cli.FlagIcon) + " "
			flagged++
		}
		fmt.Fprintf(os.Stdout, "%s%-24s %s  %s\n",
			marker, field.FieldName,
			cli.TierStyle(tier).Render(field.FieldValue),
			cli.FormatConfidence(field.ConfidenceScore))
	}
	if flagged > 0 {
		fmt.Fprintln(os.Stdout, cli.FormatWarning(fmt.Sprintf("%d field(s) flagged for review", flagged)))
	}

	if !interactive {
		return nil
	}

	prompter := cli.NewPrompter(os.Stdin, os.Stdout)
	if err := prompter.ReviewFields(ctx, store, template.FieldMapping); err != nil {
		return surface(err, "review aborted")
	}

	if err := eng.SaveFields(ctx, store); err != nil {
		return surface(err, "failed to save corrections")
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess("Corrections saved."))
	return nil
}
