package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CatalogResponse is the top-level wholesale snapshot returned by the catalog
// endpoint. The client always receives the full current collection, never
// deltas.
type CatalogResponse struct {
	Items     []CatalogItem `json:"items"`
	UpdatedAt string        `json:"updatedAt"`
}

// CatalogItem represents a single brake-pad reference in the catalog.
type CatalogItem struct {
	ID            string               `json:"id"`
	PrimaryRef    string               `json:"primaryReference"`
	AlternateRefs []string             `json:"alternateReferences"`
	OEMCodes      []string             `json:"oemCodes"`
	FMSICodes     []string             `json:"fmsiCodes"`
	WvaCode       string               `json:"wvaCode"`
	Interchanges  []string             `json:"interchangeCodes"`
	Manufacturer  string               `json:"manufacturer"`
	Position      Position             `json:"position"`
	Applications  []VehicleApplication `json:"applications"`
	Dimensions    Dimensions           `json:"dimensions"`
	CreatedAt     int64                `json:"createdAt"` // epoch millis, 0 = unknown
}

// VehicleApplication is one vehicle fitment of a reference. Year is free-form
// text entered by catalog editors: "05", "2012", "05-25" and worse all occur.
type VehicleApplication struct {
	Brand    string   `json:"brand"`
	Model    string   `json:"model"`
	Series   string   `json:"series,omitempty"`
	Year     string   `json:"year"`
	Position Position `json:"position"`
}

// Dimensions holds the pad's physical measurements in millimeters.
type Dimensions struct {
	Width  FlexNumber `json:"width"`
	Height FlexNumber `json:"height"`
}

// Position is the axle a pad fits. PositionBoth is a declared union of front
// and rear, distinct from the zero value (unset).
type Position string

const (
	PositionUnset Position = ""
	PositionFront Position = "front"
	PositionRear  Position = "rear"
	PositionBoth  Position = "both"
)

// UnmarshalJSON accepts the position spellings seen in catalog exports
// case-insensitively and maps anything unrecognized to unset.
func (p *Position) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "front":
		*p = PositionFront
	case "rear":
		*p = PositionRear
	case "both":
		*p = PositionBoth
	default:
		*p = PositionUnset
	}
	return nil
}

// FlexNumber decodes a JSON number or a numeric string; catalog exports mix
// both for measurements. The raw text is kept so display output matches the
// source data.
type FlexNumber string

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*n = FlexNumber(strings.TrimSpace(v))
	case float64:
		*n = FlexNumber(strconv.FormatFloat(v, 'f', -1, 64))
	default:
		*n = ""
	}
	return nil
}

func (n FlexNumber) String() string { return string(n) }

// Float parses the measurement, tolerating a comma decimal separator
// ("3,5" means 3.5 in several source catalogs).
func (n FlexNumber) Float() (float64, bool) {
	s := strings.ReplaceAll(strings.TrimSpace(string(n)), ",", ".")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// CleanReference canonicalizes a part number for lookup: trimmed, uppercased.
func CleanReference(ref string) string {
	return strings.ToUpper(strings.TrimSpace(ref))
}
