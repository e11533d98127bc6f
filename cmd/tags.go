package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rcardenasv/brakepad-catalog/internal/display"
	"github.com/rcardenasv/brakepad-catalog/internal/filter"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List brand tags derived from reference conventions",
	Long: "Brand tags are derived from part-number prefixes/suffixes and manufacturer\n" +
		"names (for example references ending in INC belong to the incolbest tag).",
	Example: `  padcli tags
  padcli tags --catalog ./catalog.json --json`,
	RunE: runTags,
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}

func runTags(cmd *cobra.Command, _ []string) error {
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

	counts := filter.TagCounts(catalog.Items)

	if flagJSON {
		return display.PrintFacetCountsJSON(cmd.OutOrStdout(), counts)
	}
	display.PrintFacetCounts(cmd.OutOrStdout(), "Brand tags in this catalog:", counts)
	return nil
}
