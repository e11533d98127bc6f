package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
	"github.com/rcardenasv/brakepad-catalog/internal/display"
	"github.com/rcardenasv/brakepad-catalog/internal/filter"
	"github.com/rcardenasv/brakepad-catalog/internal/link"
)

const catalogEnvVar = "PADCLI_CATALOG"

var (
	flagCatalog       string
	flagJSON          bool
	flagQuery         string
	flagBrand         string
	flagModel         string
	flagYear          string
	flagPosition      []string
	flagTags          []string
	flagOEM           string
	flagFMSI          string
	flagWidth         string
	flagHeight        string
	flagFavorites     bool
	flagFavoritesFile string
	flagNew           bool
	flagRank          bool
	flagFromLink      string
	flagLimit         int
)

var rootCmd = &cobra.Command{
	Use:   "padcli",
	Short: "Search the brake-pad reference catalog",
	Long: "CLI tool that searches a brake-pad reference catalog by part number, vehicle,\n" +
		"OEM/FMSI codes, and pad measurements.\n\n" +
		"Agent-friendly mode: minor syntax issues are auto-corrected when intent is clear " +
		"(for example: -brand Toyota, brand=Toyota, --bramd Toyota).",
	Example: `  padcli --brand Toyota --model Corolla
  padcli --query "d1060 akebono"
  padcli --width 131.5 --position front
  padcli --rank --query 10202
  padcli brands --catalog ./catalog.json
  padcli compare D1060 8020-D1060`,
	RunE: runSearch,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagCatalog, "catalog", "", "Catalog source: URL or local JSON file (default $"+catalogEnvVar+")")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")

	registerCatalogFilterFlags(rootCmd.Flags())
}

// Execute runs the root command.
func Execute() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	resetCLIState()

	normalizedArgs, notes := normalizeCLIArgs(args)
	for _, note := range notes {
		fmt.Fprintf(stderr, "note: %s\n", note)
	}

	if len(normalizedArgs) == 0 {
		if err := printQuickStart(stdout, !isTTY(stdout)); err != nil {
			cliErr := classifyCLIError(err)
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
			return cliErr.ExitCode
		}
		return ExitSuccess
	}

	if shouldAutoJSON(normalizedArgs, isTTY(stdout)) {
		normalizedArgs = append(normalizedArgs, "--json")
	}

	setCommandIO(rootCmd, stdout, stderr)
	rootCmd.SetArgs(normalizedArgs)

	if err := rootCmd.Execute(); err != nil {
		cliErr := classifyCLIError(err)
		if hasJSONPreference(normalizedArgs) {
			if jerr := printCLIErrorJSON(stderr, cliErr); jerr != nil {
				fmt.Fprintln(stderr, formatCLIErrorText(classifyCLIError(jerr)))
				return ExitInternal
			}
		} else {
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
		}
		return cliErr.ExitCode
	}
	return ExitSuccess
}

func setCommandIO(cmd *cobra.Command, stdout, stderr io.Writer) {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdout, stderr)
	}
}

func resetCLIState() {
	resetHelpFlags(rootCmd)
	flagCatalog = ""
	flagJSON = false
	flagQuery = ""
	flagBrand = ""
	flagModel = ""
	flagYear = ""
	flagPosition = nil
	flagTags = nil
	flagOEM = ""
	flagFMSI = ""
	flagWidth = ""
	flagHeight = ""
	flagFavorites = false
	flagFavoritesFile = ""
	flagNew = false
	flagRank = false
	flagFromLink = ""
	flagLimit = 0
	flagCompareJSONIndent = false
}

// resetHelpFlags clears cobra's sticky --help flag so Execute can run more
// than once per process.
func resetHelpFlags(cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
	for _, child := range cmd.Commands() {
		resetHelpFlags(child)
	}
}

func registerCatalogFilterFlags(f *pflag.FlagSet) {
	f.StringVarP(&flagQuery, "query", "q", "", "Free-text search across references, codes, and vehicles")
	f.StringVarP(&flagBrand, "brand", "b", "", "Filter by vehicle brand (exact, e.g. Toyota)")
	f.StringVarP(&flagModel, "model", "m", "", "Filter by vehicle model or series (substring, e.g. Frontier)")
	f.StringVarP(&flagYear, "year", "y", "", "Filter by model year (2- or 4-digit, matches editor ranges like 05-25)")
	f.StringSliceVarP(&flagPosition, "position", "p", nil, "Filter by axle: front, rear, or both (comma-separated)")
	f.StringSliceVar(&flagTags, "tag", nil, "Filter by brand tag: "+strings.Join(filter.TagIDs(), ", "))
	f.StringVar(&flagOEM, "oem", "", "Filter by OEM code (substring)")
	f.StringVar(&flagFMSI, "fmsi", "", "Filter by FMSI code (substring)")
	f.StringVarP(&flagWidth, "width", "w", "", "Filter by pad width in mm (±2 tolerance)")
	f.StringVar(&flagHeight, "height", "", "Filter by pad height in mm (±2 tolerance)")
	f.BoolVar(&flagFavorites, "favorites", false, "Show only favorited references")
	f.StringVar(&flagFavoritesFile, "favorites-file", "", "JSON file with favorited reference ids")
	f.BoolVar(&flagNew, "new", false, "Show only references added in the last 15 days")
	f.BoolVar(&flagRank, "rank", false, "Order by fuzzy relevance instead of reference number")
	f.StringVar(&flagFromLink, "from-link", "", "Load filters from a shared query string (?q=...&pos=front,rear)")
	f.IntVarP(&flagLimit, "limit", "n", 0, "Limit number of results (0 = all)")
}

// resolveCatalog loads the snapshot from --catalog, $PADCLI_CATALOG, or the
// default endpoint. A value starting with http(s) is fetched; anything else
// is read as a local JSON export.
func resolveCatalog(cmd *cobra.Command) (*api.CatalogResponse, string, error) {
	source := strings.TrimSpace(flagCatalog)
	if source == "" {
		source = strings.TrimSpace(os.Getenv(catalogEnvVar))
	}

	if source == "" {
		resp, err := api.NewClient().FetchCatalog(cmd.Context())
		if err != nil {
			return nil, "", upstreamError("fetching catalog", err)
		}
		return resp, "remote", nil
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		resp, err := api.NewClientWithBaseURL(source).FetchCatalog(cmd.Context())
		if err != nil {
			return nil, "", upstreamError("fetching catalog", err)
		}
		return resp, source, nil
	}

	resp, err := api.LoadCatalogFile(source)
	if err != nil {
		return nil, "", invalidArgsError(
			fmt.Sprintf("cannot read catalog file %s: %v", source, err),
			"padcli --catalog ./catalog.json",
			"padcli --catalog https://example.com/catalog.json",
		)
	}
	return resp, source, nil
}

// buildFilterOptions combines --from-link values with explicit flags;
// explicit flags win.
func buildFilterOptions() (filter.Options, error) {
	opts := filter.Options{}
	if flagFromLink != "" {
		decoded, err := link.Decode(flagFromLink)
		if err != nil {
			return filter.Options{}, invalidArgsError(
				err.Error(),
				`padcli --from-link "q=d1060&pos=front"`,
			)
		}
		opts = decoded
	}

	override := func(dst *string, value string) {
		if strings.TrimSpace(value) != "" {
			*dst = value
		}
	}
	override(&opts.Query, flagQuery)
	override(&opts.Brand, flagBrand)
	override(&opts.Model, flagModel)
	override(&opts.Year, flagYear)
	override(&opts.OEM, flagOEM)
	override(&opts.FMSI, flagFMSI)
	override(&opts.Width, flagWidth)
	override(&opts.Height, flagHeight)

	if len(flagPosition) > 0 {
		opts.Positions = filter.ParsePositionSelection(flagPosition)
	}
	opts.Tags = flagTags
	opts.FavoritesOnly = flagFavorites
	opts.NewOnly = flagNew
	opts.Limit = flagLimit
	return opts, nil
}

func buildFilterContext() (*filter.Context, error) {
	ctx := filter.NewContext()
	if flagFavoritesFile == "" {
		return ctx, nil
	}

	data, err := os.ReadFile(flagFavoritesFile)
	if err != nil {
		return nil, invalidArgsError(
			fmt.Sprintf("cannot read favorites file %s: %v", flagFavoritesFile, err),
			"padcli --favorites --favorites-file ~/.padcli/favorites.json",
		)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, invalidArgsError(
			fmt.Sprintf("favorites file %s: expected a JSON array of reference ids", flagFavoritesFile),
			`echo '["ref-001","ref-002"]' > favorites.json`,
		)
	}
	for _, id := range ids {
		ctx.Favorites[id] = struct{}{}
	}
	return ctx, nil
}

func runSearch(cmd *cobra.Command, _ []string) error {
	opts, err := buildFilterOptions()
	if err != nil {
		return err
	}
	ctx, err := buildFilterContext()
	if err != nil {
		return err
	}

	catalog, source, err := resolveCatalog(cmd)
	if err != nil {
		return err
	}
	if len(catalog.Items) == 0 {
		return notFoundError(
			"catalog snapshot is empty",
			"Check the --catalog source.",
		)
	}
	if !flagJSON {
		display.PrintCatalogContext(cmd.OutOrStdout(), source, catalog)
	}

	items := applySearch(catalog.Items, opts, ctx)
	if len(items) == 0 {
		return notFoundError(
			"no references match your filters",
			"Relax filters like --brand/--model/--query.",
		)
	}

	if flagJSON {
		return display.PrintItemsJSON(cmd.OutOrStdout(), items)
	}
	display.PrintItems(cmd.OutOrStdout(), items)
	display.PrintShareLink(cmd.OutOrStdout(), link.Encode(opts))
	return nil
}

// applySearch runs the boolean pipeline, or in rank mode the facet pipeline
// followed by fuzzy relevance ordering over the survivors.
func applySearch(items []api.CatalogItem, opts filter.Options, ctx *filter.Context) []api.CatalogItem {
	if !flagRank || strings.TrimSpace(opts.Query) == "" {
		return filter.Apply(items, opts, ctx)
	}

	facetsOnly := opts
	facetsOnly.Query = ""
	facetsOnly.Limit = 0

	ranked := filter.FuzzySearch(filter.Apply(items, facetsOnly, ctx), opts.Query)
	if opts.Limit > 0 && opts.Limit < len(ranked) {
		ranked = ranked[:opts.Limit]
	}
	return ranked
}
