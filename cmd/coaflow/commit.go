package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglabs/coaflow/internal/cli"
	"github.com/reglabs/coaflow/internal/common"
	"github.com/reglabs/coaflow/internal/model"
	"github.com/reglabs/coaflow/internal/service"
)

func commitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Commit finalized table data into the authoring document",
		Long: `Fetch the finalized table data for a document from the backend, render
it with confidence styling, and insert it into the authoring document.
With --compound and --template, the template's content replaces the
current selection first and its field mapping supplies the display
names. The insertion is all-or-nothing: on any failure the document is
left unchanged.`,
		RunE: runCommit,
	}

	cmd.Flags().StringP("document", "d", "", "Document id")
	cmd.Flags().StringP("compound", "c", "", "Compound id or code")
	cmd.Flags().StringP("template", "t", "", "Template id or region")
	_ = viper.BindPFlag("commit.document", cmd.Flags().Lookup("document"))
	_ = viper.BindPFlag("commit.compound", cmd.Flags().Lookup("compound"))
	_ = viper.BindPFlag("commit.template", cmd.Flags().Lookup("template"))

	return cmd
}

func runCommit(cmd *cobra.Command, _ []string) error {
	documentID := viper.GetString("commit.document")
	compoundArg := viper.GetString("commit.compound")
	templateArg := viper.GetString("commit.template")

	eng, cleanup, err := buildEngine(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := cmd.Context()

	var template *model.Template
	if templateArg != "" {
		if compoundArg == "" {
			return surface(common.Precondition("compound is required with --template; pass --compound"), "missing selection")
		}

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
		template, err = findTemplate(templates, templateArg)
		if err != nil {
			return surface(err, "unknown template")
		}
	}

	// The engine never retries on its own; transient transport
	// timeouts are retried here, at the caller.
	err = common.WithRetry(ctx, func() error {
		return eng.Commit(ctx, documentID, template)
	}, service.RetryOptions{MaxAttempts: 3})
	if err != nil {
		return surface(err, "commit failed")
	}

	fmt.Fprintln(os.Stdout, cli.FormatSuccess(fmt.Sprintf("Committed document %s into the authoring document.", documentID)))
	return nil
}
