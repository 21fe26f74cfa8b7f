package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reglabs/coaflow/internal/cli"
)

func compoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compounds",
		Short: "List compounds known to the extraction backend",
		RunE:  runCompounds,
	}
}

func runCompounds(cmd *cobra.Command, _ []string) error {
	eng, cleanup, err := buildEngine(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer cleanup()

	compounds, err := eng.Compounds(cmd.Context())
	if err != nil {
		return surface(err, "failed to list compounds")
	}

	if len(compounds) == 0 {
		fmt.Fprintln(os.Stdout, cli.FormatWarning("The backend knows no compounds yet."))
		return nil
	}

	fmt.Fprintln(os.Stdout, cli.FormatTitle("Compounds"))
	for _, c := range compounds {
		fmt.Fprintf(os.Stdout, "  %-12s %-10s %s\n", c.ID, c.Code, c.Name)
	}

	return nil
}
