package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglabs/coaflow/internal/cli"
	"github.com/reglabs/coaflow/internal/common"
)

func batchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batches",
		Short: "Synthesize batch report tables for a compound",
		Long: `Run the extraction backend over every document it holds for a compound
and template, then synthesize the standardized report tables: the main
batch table, its continuation, and the latest-batch summary. Batches
appear in the order the backend returns them; the summary takes the
final batch of that sequence.`,
		RunE: runBatches,
	}

	cmd.Flags().StringP("compound", "c", "", "Compound id or code")
	cmd.Flags().StringP("template", "t", "", "Template id or region")
	cmd.Flags().Bool("insert", false, "Insert the rendered tables into the authoring document")

	_ = viper.BindPFlag("batches.compound", cmd.Flags().Lookup("compound"))
	_ = viper.BindPFlag("batches.template", cmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("batches.insert", cmd.Flags().Lookup("insert"))

	return cmd
}

func runBatches(cmd *cobra.Command, _ []string) error {
	compoundArg := viper.GetString("batches.compound")
	templateArg := viper.GetString("batches.template")
	insert := viper.GetBool("batches.insert")

	if compoundArg == "" {
		return surface(common.Precondition("compound is required; pass --compound"), "missing selection")
	}
	if templateArg == "" {
		return surface(common.Precondition("template is required; pass --template"), "missing selection")
	}

	eng, cleanup, err := buildEngine(cmd.Context(), insert)
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

	bar := cli.NewSpinner(os.Stderr, "Processing batch directory...")
	tables, err := eng.BatchTables(ctx, compound.ID, template.ID)
	_ = bar.Finish()
	if err != nil {
		return surface(err, "failed to synthesize batch tables")
	}

	for _, table := range tables {
		fmt.Fprintln(os.Stdout, cli.RenderSynthesizedTable(table))
	}

	if !insert {
		return nil
	}

	if err := eng.InsertTables(ctx, tables); err != nil {
		return surface(err, "failed to insert tables")
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess("Tables inserted into the document."))
	return nil
}
