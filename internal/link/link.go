// Package link encodes filter state to and from the catalog app's URL
// query-string representation, so a padcli invocation and a browser session
// can share the same search.
package link

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/rcardenasv/brakepad-catalog/internal/filter"
)

// Encode serializes the shareable facets of the filter state as a URL query
// string. Inactive facets are omitted; position selections join with commas.
func Encode(opts filter.Options) string {
	values := url.Values{}
	set := func(key, value string) {
		if strings.TrimSpace(value) != "" {
			values.Set(key, strings.TrimSpace(value))
		}
	}

	set("q", opts.Query)
	set("brand", opts.Brand)
	set("model", opts.Model)
	set("year", opts.Year)
	set("w", opts.Width)
	set("h", opts.Height)
	if pos := encodePositions(opts.Positions); pos != "" {
		values.Set("pos", pos)
	}
	return values.Encode()
}

// Decode parses a shared query string (with or without a leading "?" or a
// full URL prefix) into filter options. Unknown parameters are ignored.
func Decode(raw string) (filter.Options, error) {
	raw = strings.TrimSpace(raw)
	if idx := strings.IndexByte(raw, '?'); idx >= 0 {
		raw = raw[idx+1:]
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return filter.Options{}, fmt.Errorf("parsing share link: %w", err)
	}

	opts := filter.Options{
		Query:  values.Get("q"),
		Brand:  values.Get("brand"),
		Model:  values.Get("model"),
		Year:   values.Get("year"),
		Width:  values.Get("w"),
		Height: values.Get("h"),
	}
	if pos := values.Get("pos"); pos != "" {
		opts.Positions = filter.ParsePositionSelection(strings.Split(pos, ","))
	}
	return opts, nil
}

func encodePositions(set filter.PositionSet) string {
	var parts []string
	if set.Front {
		parts = append(parts, "front")
	}
	if set.Rear {
		parts = append(parts, "rear")
	}
	return strings.Join(parts, ",")
}
