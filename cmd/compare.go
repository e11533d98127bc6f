package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
	"github.com/rcardenasv/brakepad-catalog/internal/display"
	"github.com/rcardenasv/brakepad-catalog/internal/filter"
)

var flagCompareJSONIndent bool

type compareEntry struct {
	Reference    string   `json:"reference"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Position     string   `json:"position,omitempty"`
	Width        string   `json:"width,omitempty"`
	Height       string   `json:"height,omitempty"`
	OEMCodes     []string `json:"oemCodes"`
	FMSICodes    []string `json:"fmsiCodes"`
	Tags         []string `json:"tags,omitempty"`
	Applications []string `json:"applications"`
	SharedOEM    []string `json:"sharedOemCodes,omitempty"`
}

var compareCmd = &cobra.Command{
	Use:   "compare REFERENCE REFERENCE...",
	Short: "Compare catalog references side by side",
	Example: `  padcli compare D1060 8020-D1060
  padcli compare D1060 D1061 --catalog ./catalog.json --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)
	compareCmd.Flags().BoolVar(&flagCompareJSONIndent, "indent", false, "Indent JSON output")
}

func runCompare(cmd *cobra.Command, args []string) error {
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

	var selected []api.CatalogItem
	var missing []string
	for _, arg := range args {
		item, ok := findByReference(catalog.Items, arg)
		if !ok {
			missing = append(missing, arg)
			continue
		}
		selected = append(selected, item)
	}

	if len(selected) == 0 {
		return notFoundError(
			fmt.Sprintf("none of the references %s are in the catalog", strings.Join(args, ", ")),
			"Use `padcli --query REF` to search for close matches.",
		)
	}

	shared := sharedOEMCodes(selected)
	entries := make([]compareEntry, 0, len(selected))
	for _, item := range selected {
		entries = append(entries, buildCompareEntry(item, shared))
	}

	if flagJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		if flagCompareJSONIndent {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(entries)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nComparing %d reference(s)\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", e.Reference)
		if e.Manufacturer != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   manufacturer: %s\n", e.Manufacturer)
		}
		if e.Position != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   position: %s\n", e.Position)
		}
		if e.Width != "" || e.Height != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "   size: %s x %s mm\n", emptyIf(e.Width, "?"), emptyIf(e.Height, "?"))
		}
		if len(e.OEMCodes) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "   oem: %s\n", strings.Join(e.OEMCodes, ", "))
		}
		if len(e.FMSICodes) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "   fmsi: %s\n", strings.Join(e.FMSICodes, ", "))
		}
		if len(e.Tags) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "   tags: %s\n", strings.Join(e.Tags, ", "))
		}
		for _, app := range e.Applications {
			fmt.Fprintf(cmd.OutOrStdout(), "   fits: %s\n", app)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if len(shared) > 0 && len(selected) > 1 {
		fmt.Fprintf(cmd.OutOrStdout(), "shared oem codes: %s\n", strings.Join(shared, ", "))
	}
	if len(missing) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "note: %s not found in catalog.\n", strings.Join(missing, ", "))
	}
	return nil
}

// findByReference matches a part number against primary, alternate, and WVA
// references.
func findByReference(items []api.CatalogItem, ref string) (api.CatalogItem, bool) {
	want := api.CleanReference(ref)
	if want == "" {
		return api.CatalogItem{}, false
	}
	for _, item := range items {
		if api.CleanReference(item.PrimaryRef) == want {
			return item, true
		}
		if api.CleanReference(item.WvaCode) == want {
			return item, true
		}
		for _, alt := range item.AlternateRefs {
			if api.CleanReference(alt) == want {
				return item, true
			}
		}
	}
	return api.CatalogItem{}, false
}

func sharedOEMCodes(items []api.CatalogItem) []string {
	if len(items) < 2 {
		return nil
	}

	counts := map[string]int{}
	for _, item := range items {
		seen := map[string]struct{}{}
		for _, code := range item.OEMCodes {
			key := api.CleanReference(code)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			counts[key]++
		}
	}

	var shared []string
	for _, code := range items[0].OEMCodes {
		if counts[api.CleanReference(code)] == len(items) {
			shared = append(shared, code)
		}
	}
	return shared
}

func buildCompareEntry(item api.CatalogItem, shared []string) compareEntry {
	apps := make([]string, 0, len(item.Applications))
	for _, app := range item.Applications {
		apps = append(apps, display.ApplicationLabel(app))
	}

	oem := item.OEMCodes
	if oem == nil {
		oem = []string{}
	}
	fmsi := item.FMSICodes
	if fmsi == nil {
		fmsi = []string{}
	}

	return compareEntry{
		Reference:    item.PrimaryRef,
		Manufacturer: item.Manufacturer,
		Position:     display.PositionLabel(item.Position),
		Width:        item.Dimensions.Width.String(),
		Height:       item.Dimensions.Height.String(),
		OEMCodes:     oem,
		FMSICodes:    fmsi,
		Tags:         filter.ItemTags(item),
		Applications: apps,
		SharedOEM:    shared,
	}
}

func emptyIf(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
