package harvest

import (
	"strings"
	"time"

	"github.com/earthmeta/lodserver/triplestore"
	"github.com/earthmeta/lodserver/vocabulary"
)

// oaiTimeLayout is the second-granularity UTC datestamp format the
// protocol mandates.
const oaiTimeLayout = "2006-01-02T15:04:05Z"

// Record is one harvestable resource as seen by the protocol: the
// header fields plus what the renderers need to produce metadata.
type Record struct {
	// Identifier is the record's subject URI.
	Identifier string
	// Datestamp is the coalesced best-available date, already
	// normalized to UTC second granularity. Never empty: records
	// without any date predicate carry the repository earliest
	// datestamp.
	Datestamp string
	// TypeURI is the record's harvestable RDF type.
	TypeURI string
	// Sets are the record's set memberships: one type: spec plus one
	// category: spec per theme.
	Sets []string
}

// recordFromBinding builds a Record from one row of the listing query.
func recordFromBinding(v vocabulary.Version, b triplestore.Binding, earliest string) Record {
	r := Record{
		Identifier: b.Get("s"),
		TypeURI:    b.Get("type"),
		Datestamp:  normalizeDatestamp(b.Get("ts"), earliest),
	}

	if local, ok := vocabulary.LocalNameByType(v, r.TypeURI); ok {
		r.Sets = append(r.Sets, TypeSetSpec(local))
	}
	for _, theme := range strings.Fields(b.Get("themes")) {
		r.Sets = append(r.Sets, CategorySetSpec(theme))
	}
	return r
}

// normalizeDatestamp coerces a stored date literal to the protocol's
// UTC second granularity, falling back to the repository earliest
// datestamp when absent or unparseable.
func normalizeDatestamp(raw, earliest string) string {
	if raw == "" {
		return earliest
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC().Format(oaiTimeLayout)
		}
	}
	return earliest
}

// parseHarvestDate validates a from/until argument. Both the date and
// the full second-granularity UTC forms are accepted; anything else is
// a badArgument. The returned bound is the full dateTime form used in
// query filters, with date-only values widened to the inclusive edge
// of the day.
func parseHarvestDate(arg, value string, until bool) (string, error) {
	if value == "" {
		return "", nil
	}
	if ts, err := time.Parse(oaiTimeLayout, value); err == nil {
		return ts.Format(oaiTimeLayout), nil
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		if until {
			return ts.Add(24*time.Hour - time.Second).Format(oaiTimeLayout), nil
		}
		return ts.Format(oaiTimeLayout), nil
	}
	return "", badArgument("%s %q is not a valid UTC datestamp", arg, value)
}
