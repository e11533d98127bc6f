package filter

import (
	"strings"

	"github.com/rcardenasv/brakepad-catalog/internal/api"
)

// tagRule derives a manufacturer tag from reference-number conventions: a
// token prefix/suffix check, with the manufacturer name as a fallback hint.
// The rules live in one table so every surface applies the same derivation.
//
// NOTE: the SP rule is a prefix check, matching the facet table that drives
// the user-facing filter. One sibling view of the source data applied it as
// a suffix; switching is a one-field rule change if catalog owners confirm
// the suffix reading.
type tagRule struct {
	id     string
	label  string
	prefix string
	suffix string
	hints  []string
}

var brandTagRules = []tagRule{
	{id: "incolbest", label: "Incolbest", suffix: "INC", hints: []string{"INCOLBEST"}},
	{id: "bex", label: "Bex", suffix: "BEX", hints: []string{"BEX"}},
	{id: "ktc", label: "KTC", prefix: "K", hints: []string{"KTC"}},
	{id: "brakepak", label: "Brake Pak", suffix: "BP", hints: []string{"BRAKE PAK", "BRAKEPAK"}},
	{id: "sp", label: "SP", prefix: "SP"},
}

// TagIDs lists the known brand-tag identifiers in display order.
func TagIDs() []string {
	ids := make([]string, 0, len(brandTagRules))
	for _, rule := range brandTagRules {
		ids = append(ids, rule.id)
	}
	return ids
}

// TagLabel returns the display label for a tag id, or the id itself when
// unknown.
func TagLabel(id string) string {
	for _, rule := range brandTagRules {
		if rule.id == id {
			return rule.label
		}
	}
	return id
}

func referenceTokenSeparator(r rune) bool {
	return r == ' ' || r == '\t' || r == ',' || r == '/' || r == '-'
}

// referenceTokens splits every reference-like string of the item into
// uppercase tokens, dropping anything of 2 characters or fewer.
func referenceTokens(item api.CatalogItem) []string {
	sources := make([]string, 0, 2+len(item.AlternateRefs)+len(item.Interchanges)+len(item.OEMCodes)+len(item.FMSICodes))
	sources = append(sources, item.PrimaryRef, item.WvaCode)
	sources = append(sources, item.AlternateRefs...)
	sources = append(sources, item.Interchanges...)
	sources = append(sources, item.OEMCodes...)
	sources = append(sources, item.FMSICodes...)

	var tokens []string
	for _, src := range sources {
		for _, tok := range strings.FieldsFunc(src, referenceTokenSeparator) {
			if len(tok) > 2 {
				tokens = append(tokens, strings.ToUpper(tok))
			}
		}
	}
	return tokens
}

func (r tagRule) matchesToken(token string) bool {
	if r.prefix != "" && strings.HasPrefix(token, r.prefix) {
		return true
	}
	if r.suffix != "" && strings.HasSuffix(token, r.suffix) {
		return true
	}
	return false
}

func (r tagRule) matchesManufacturer(manufacturer string) bool {
	if manufacturer == "" {
		return false
	}
	upper := strings.ToUpper(manufacturer)
	for _, hint := range r.hints {
		if strings.Contains(upper, hint) {
			return true
		}
	}
	return false
}

// ItemHasTag reports whether the item belongs to the given brand tag.
// Unknown tag ids never match.
func ItemHasTag(item api.CatalogItem, tagID string) bool {
	for _, rule := range brandTagRules {
		if rule.id != strings.ToLower(strings.TrimSpace(tagID)) {
			continue
		}
		if rule.matchesManufacturer(item.Manufacturer) {
			return true
		}
		for _, token := range referenceTokens(item) {
			if rule.matchesToken(token) {
				return true
			}
		}
		return false
	}
	return false
}

// ItemTags returns all brand tags the item belongs to, in rule order.
func ItemTags(item api.CatalogItem) []string {
	var tags []string
	for _, rule := range brandTagRules {
		if ItemHasTag(item, rule.id) {
			tags = append(tags, rule.id)
		}
	}
	return tags
}
