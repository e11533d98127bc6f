package display

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
	"github.com/rcardenasv/brakepad-catalog/internal/filter"
)

// Styles for terminal output.
var (
	refStyle     = lipgloss.NewStyle().Bold(true)
	posTag       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5")) // magenta
	dimsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))            // green
	codeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))            // yellow
	dimStyle     = lipgloss.NewStyle().Faint(true)
	cyanStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// ItemJSON is the JSON output shape for a catalog item.
type ItemJSON struct {
	ID            string            `json:"id"`
	PrimaryRef    string            `json:"primaryReference"`
	AlternateRefs []string          `json:"alternateReferences"`
	OEMCodes      []string          `json:"oemCodes"`
	FMSICodes     []string          `json:"fmsiCodes"`
	WvaCode       string            `json:"wvaCode,omitempty"`
	Manufacturer  string            `json:"manufacturer,omitempty"`
	Position      string            `json:"position,omitempty"`
	Width         string            `json:"width,omitempty"`
	Height        string            `json:"height,omitempty"`
	Tags          []string          `json:"tags,omitempty"`
	Applications  []ApplicationJSON `json:"applications"`
}

// ApplicationJSON is the JSON output shape for a vehicle fitment.
type ApplicationJSON struct {
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	Series   string `json:"series,omitempty"`
	Year     string `json:"year,omitempty"`
	Position string `json:"position"`
}

// PrintItems renders a list of catalog items to the writer.
func PrintItems(w io.Writer, items []api.CatalogItem) {
	fmt.Fprintf(w, "\n%s — %s\n\n",
		headerStyle.Render("Brake pad references"),
		cyanStyle.Render(fmt.Sprintf("%d items", len(items))),
	)

	for _, item := range items {
		printItem(w, item)
		fmt.Fprintln(w)
	}
}

// PrintItemsJSON renders catalog items as JSON.
func PrintItemsJSON(w io.Writer, items []api.CatalogItem) error {
	out := make([]ItemJSON, 0, len(items))
	for _, item := range items {
		out = append(out, ToItemJSON(item))
	}
	return json.NewEncoder(w).Encode(out)
}

// PrintFacetCounts renders facet values and their item counts, most frequent
// first.
func PrintFacetCounts(w io.Writer, title string, counts map[string]int) {
	type facetCount struct {
		Name  string
		Count int
	}
	sorted := make([]facetCount, 0, len(counts))
	for k, v := range counts {
		sorted = append(sorted, facetCount{k, v})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Name < sorted[j].Name
	})

	fmt.Fprintf(w, "\n%s\n\n", refStyle.Render(title))
	for _, c := range sorted {
		fmt.Fprintf(w, "  %s: %d references\n", cyanStyle.Render(c.Name), c.Count)
	}
	fmt.Fprintln(w)
}

// PrintFacetCountsJSON renders facet counts as JSON.
func PrintFacetCountsJSON(w io.Writer, counts map[string]int) error {
	return json.NewEncoder(w).Encode(counts)
}

// PrintCatalogContext prints a dim line showing which snapshot is in use.
func PrintCatalogContext(w io.Writer, source string, resp *api.CatalogResponse) {
	label := fmt.Sprintf("Using catalog: %s (%d references)", source, len(resp.Items))
	if resp.UpdatedAt != "" {
		label += " — updated " + resp.UpdatedAt
	}
	fmt.Fprintf(w, "%s\n\n", dimStyle.Render(label))
}

// PrintShareLink prints the share-link line for the current search.
func PrintShareLink(w io.Writer, query string) {
	if query == "" {
		return
	}
	fmt.Fprintf(w, "%s\n", dimStyle.Render("share: ?"+query))
}

// PrintError prints a styled error message.
func PrintError(w io.Writer, msg string) {
	fmt.Fprintln(w, errorStyle.Render(msg))
}

// PrintWarning prints a styled warning message.
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintln(w, warningStyle.Render(msg))
}

func printItem(w io.Writer, item api.CatalogItem) {
	ref := strings.TrimSpace(item.PrimaryRef)
	if ref == "" {
		ref = "Unknown"
	}

	tag := ""
	if pos := PositionLabel(item.Position); pos != "" {
		tag = posTag.Render(pos) + " "
	}
	fmt.Fprintf(w, "  %s%s\n", tag, refStyle.Render(ref))

	var specs []string
	if dims := DimensionsLabel(item.Dimensions); dims != "" {
		specs = append(specs, dimsStyle.Render(dims))
	}
	if item.Manufacturer != "" {
		specs = append(specs, item.Manufacturer)
	}
	if len(specs) > 0 {
		fmt.Fprintf(w, "    %s\n", strings.Join(specs, " | "))
	}

	var codes []string
	if len(item.AlternateRefs) > 0 {
		codes = append(codes, "alt: "+strings.Join(item.AlternateRefs, ", "))
	}
	if len(item.OEMCodes) > 0 {
		codes = append(codes, "oem: "+strings.Join(item.OEMCodes, ", "))
	}
	if len(item.FMSICodes) > 0 {
		codes = append(codes, "fmsi: "+strings.Join(item.FMSICodes, ", "))
	}
	if item.WvaCode != "" {
		codes = append(codes, "wva: "+item.WvaCode)
	}
	if len(codes) > 0 {
		fmt.Fprintf(w, "    %s\n", codeStyle.Render(strings.Join(codes, " | ")))
	}

	for _, app := range item.Applications {
		fmt.Fprintf(w, "    %s\n", dimStyle.Render(ApplicationLabel(app)))
	}
}

// ToItemJSON converts a catalog item to its JSON output shape.
func ToItemJSON(item api.CatalogItem) ItemJSON {
	alternates := item.AlternateRefs
	if alternates == nil {
		alternates = []string{}
	}
	oem := item.OEMCodes
	if oem == nil {
		oem = []string{}
	}
	fmsi := item.FMSICodes
	if fmsi == nil {
		fmsi = []string{}
	}

	apps := make([]ApplicationJSON, 0, len(item.Applications))
	for _, app := range item.Applications {
		apps = append(apps, ApplicationJSON{
			Brand:    app.Brand,
			Model:    app.Model,
			Series:   app.Series,
			Year:     app.Year,
			Position: strings.ToLower(string(app.Position)),
		})
	}

	return ItemJSON{
		ID:            item.ID,
		PrimaryRef:    item.PrimaryRef,
		AlternateRefs: alternates,
		OEMCodes:      oem,
		FMSICodes:     fmsi,
		WvaCode:       item.WvaCode,
		Manufacturer:  item.Manufacturer,
		Position:      strings.ToLower(string(item.Position)),
		Width:         item.Dimensions.Width.String(),
		Height:        item.Dimensions.Height.String(),
		Tags:          filter.ItemTags(item),
		Applications:  apps,
	}
}

// PositionLabel renders a position value for display.
func PositionLabel(p api.Position) string {
	switch p {
	case api.PositionFront:
		return "FRONT"
	case api.PositionRear:
		return "REAR"
	case api.PositionBoth:
		return "FRONT+REAR"
	default:
		return ""
	}
}

// DimensionsLabel renders the measurement pair, skipping missing values.
func DimensionsLabel(d api.Dimensions) string {
	w := strings.TrimSpace(d.Width.String())
	h := strings.TrimSpace(d.Height.String())
	switch {
	case w != "" && h != "":
		return fmt.Sprintf("%s x %s mm", w, h)
	case w != "":
		return w + " mm wide"
	case h != "":
		return h + " mm tall"
	default:
		return ""
	}
}

// ApplicationLabel renders a fitment line: brand, model, series, year and
// axle.
func ApplicationLabel(app api.VehicleApplication) string {
	parts := []string{}
	if app.Brand != "" {
		parts = append(parts, app.Brand)
	}
	if app.Model != "" {
		parts = append(parts, app.Model)
	}
	if app.Series != "" {
		parts = append(parts, app.Series)
	}
	if app.Year != "" {
		parts = append(parts, app.Year)
	}
	label := strings.Join(parts, " ")
	if pos := PositionLabel(app.Position); pos != "" {
		label += " [" + pos + "]"
	}
	return label
}
