package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rcardenasv/brakepad-catalog/internal/display"
	"github.com/rcardenasv/brakepad-catalog/internal/filter"
)

var brandsCmd = &cobra.Command{
	Use:   "brands",
	Short: "List vehicle brands present in the catalog",
	Example: `  padcli brands
  padcli brands --catalog ./catalog.json --json`,
	RunE: runBrands,
}

func init() {
	rootCmd.AddCommand(brandsCmd)
}

func runBrands(cmd *cobra.Command, _ []string) error {
	catalog, _, err := resolveCatalog(cmd)
	if err != nil {
		return err
	}
	if len(catalog.Items) == 0 {
		return notFoundError(
			"catalog snapshot is empty",
			"Check the --catalog source.",
		)
	}

	brands := filter.Brands(catalog.Items)

	if flagJSON {
		return display.PrintFacetCountsJSON(cmd.OutOrStdout(), brands)
	}
	display.PrintFacetCounts(cmd.OutOrStdout(), "Vehicle brands in this catalog:", brands)
	return nil
}
