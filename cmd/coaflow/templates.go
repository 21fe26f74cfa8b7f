package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reglabs/coaflow/internal/cli"
	"github.com/reglabs/coaflow/internal/common"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List report templates for a compound",
		RunE:  runTemplates,
	}

	cmd.Flags().StringP("compound", "c", "", "Compound id or code")
	_ = viper.BindPFlag("templates.compound", cmd.Flags().Lookup("compound"))

	return cmd
}

func runTemplates(cmd *cobra.Command, _ []string) error {
	compoundArg := viper.GetString("templates.compound")
	if compoundArg == "" {
		return surface(common.Precondition("compound is required; pass --compound"), "missing selection")
	}

	eng, cleanup, err := buildEngine(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer cleanup()

	compounds, err := eng.Compounds(cmd.Context())
	if err != nil {
		return surface(err, "failed to list compounds")
	}

	compound, err := findCompound(compounds, compoundArg)
	if err != nil {
		return surface(err, "unknown compound")
	}

	templates, err := eng.Templates(cmd.Context(), compound.ID)
	if err != nil {
		return surface(err, "failed to list templates")
	}

	if len(templates) == 0 {
		fmt.Fprintln(os.Stdout, cli.FormatWarning(fmt.Sprintf("No templates registered for %s.", compound.Name)))
		return nil
	}

	fmt.Fprintln(os.Stdout, cli.FormatTitle(fmt.Sprintf("Templates for %s", compound.Name)))
	for _, t := range templates {
		fmt.Fprintf(os.Stdout, "  %-12s %-4s\n", t.ID, t.Region)
	}

	return nil
}
