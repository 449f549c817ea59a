// Package sparql generates the parameterized graph-pattern queries the
// harvesting engine runs against the triple-store collaborator.
//
// The package produces query text only; it never talks to a store.
// Type filtering, when no explicit type is requested, is a union over
// the fixed harvestable-type list; types outside that list are never
// harvestable no matter what the graph contains. Blank-node subjects
// are excluded from all top-level listings because only named
// resources are addressable records.
package sparql

import (
	"fmt"
	"strings"

	"github.com/earthmeta/lodserver/vocabulary"
)

// Filter narrows a record listing or count.
type Filter struct {
	// TypeURI restricts to one RDF type. Empty means the full
	// harvestable-type union.
	TypeURI string
	// CategoryURI restricts to records carrying the category as a
	// dcat:theme. Empty means no category filter.
	CategoryURI string
	// From and Until are inclusive ISO-8601 datestamp bounds; records
	// without any date predicate always pass.
	From  string
	Until string
}

const prologue = `PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX dct: <http://purl.org/dc/terms/>
PREFIX dcat: <http://www.w3.org/ns/dcat#>
PREFIX schema: <http://schema.org/>
PREFIX skos: <http://www.w3.org/2004/02/skos/core#>
PREFIX xsd: <http://www.w3.org/2001/XMLSchema#>
`

// recordProjection aggregates the pattern's per-solution variables
// down to one row per subject. A record carrying several harvestable
// types (V3 web services assert two) must still be one record, in the
// same subject space CountRecords counts.
const recordProjection = "SELECT ?s (SAMPLE(?t) AS ?type) (MIN(?d) AS ?ts) (GROUP_CONCAT(DISTINCT ?theme; separator=\" \") AS ?themes)\nWHERE {\n"

// ListRecords selects the page of records matching the filter, one
// row per subject, ordered by subject for stable pagination.
// Bindings: s, type, ts (optional), themes (space-joined, optional).
func ListRecords(v vocabulary.Version, f Filter, offset, limit int) string {
	var b strings.Builder
	b.WriteString(prologue)
	b.WriteString(recordProjection)
	b.WriteString(recordPattern(v, f))
	b.WriteString("}\nGROUP BY ?s\nORDER BY ?s\n")
	fmt.Fprintf(&b, "OFFSET %d\nLIMIT %d\n", offset, limit)
	return b.String()
}

// CountRecords counts all records matching the filter. Binding: n.
func CountRecords(v vocabulary.Version, f Filter) string {
	var b strings.Builder
	b.WriteString(prologue)
	b.WriteString("SELECT (COUNT(DISTINCT ?s) AS ?n)\nWHERE {\n")
	b.WriteString(recordPattern(v, f))
	b.WriteString("}\n")
	return b.String()
}

// GetRecordInfo fetches one record's type, datestamp and categories.
// Bindings: s, type, ts (optional), themes (optional).
func GetRecordInfo(v vocabulary.Version, uri string) string {
	var b strings.Builder
	b.WriteString(prologue)
	b.WriteString(recordProjection)
	fmt.Fprintf(&b, "  VALUES ?s { <%s> }\n", uri)
	b.WriteString(recordPattern(v, Filter{}))
	b.WriteString("}\nGROUP BY ?s\n")
	return b.String()
}

// recordPattern emits the shared WHERE body: type selection, isIRI
// guard, date coalescing and the optional filters. Inner variables ?t
// and ?d stay distinct from the projected aliases ?type and ?ts.
func recordPattern(v vocabulary.Version, f Filter) string {
	var b strings.Builder
	b.WriteString("  ?s rdf:type ?t .\n")
	b.WriteString("  FILTER(isIRI(?s))\n")

	if f.TypeURI != "" {
		fmt.Fprintf(&b, "  FILTER(?t = <%s>)\n", f.TypeURI)
	} else {
		parts := make([]string, 0)
		for _, ht := range vocabulary.HarvestableTypes(v) {
			parts = append(parts, fmt.Sprintf("?t = <%s>", ht.URI))
		}
		fmt.Fprintf(&b, "  FILTER(%s)\n", strings.Join(parts, " || "))
	}

	if f.CategoryURI != "" {
		fmt.Fprintf(&b, "  ?s dcat:theme <%s> .\n", f.CategoryURI)
	}
	b.WriteString("  OPTIONAL { ?s dcat:theme ?theme . }\n")

	for i, pred := range vocabulary.DatePredicates() {
		fmt.Fprintf(&b, "  OPTIONAL { ?s <%s> ?d%d . }\n", pred, i)
	}
	vars := make([]string, len(vocabulary.DatePredicates()))
	for i := range vars {
		vars[i] = fmt.Sprintf("?d%d", i)
	}
	fmt.Fprintf(&b, "  BIND(COALESCE(%s) AS ?d)\n", strings.Join(vars, ", "))

	if f.From != "" {
		fmt.Fprintf(&b, "  FILTER(!bound(?d) || ?d >= \"%s\"^^xsd:dateTime)\n", f.From)
	}
	if f.Until != "" {
		fmt.Fprintf(&b, "  FILTER(!bound(?d) || ?d <= \"%s\"^^xsd:dateTime)\n", f.Until)
	}
	return b.String()
}

// RecordProperties selects the record's direct predicate/object pairs
// for the Dublin Core and DCAT renderers. Bindings: p, o.
func RecordProperties(uri string) string {
	var b strings.Builder
	b.WriteString(prologue)
	fmt.Fprintf(&b, "SELECT ?p ?o\nWHERE {\n  <%s> ?p ?o .\n}\n", uri)
	return b.String()
}

// ConstructRecord builds the record's bounded metadata subgraph: the
// subject's direct triples plus two levels of attached blank-node
// structure. Deeper structure is deliberately not included.
func ConstructRecord(uri string) string {
	var b strings.Builder
	b.WriteString(prologue)
	b.WriteString("CONSTRUCT {\n")
	b.WriteString("  ?s ?p ?o .\n  ?o ?p1 ?o1 .\n  ?o1 ?p2 ?o2 .\n")
	b.WriteString("}\nWHERE {\n")
	fmt.Fprintf(&b, "  VALUES ?s { <%s> }\n", uri)
	b.WriteString("  ?s ?p ?o .\n")
	b.WriteString("  OPTIONAL {\n    FILTER(isBlank(?o))\n    ?o ?p1 ?o1 .\n")
	b.WriteString("    OPTIONAL {\n      FILTER(isBlank(?o1))\n      ?o1 ?p2 ?o2 .\n    }\n  }\n")
	b.WriteString("}\n")
	return b.String()
}

// ListTypes lists the distinct harvestable RDF types present with
// per-type record counts. Bindings: type, n.
func ListTypes(v vocabulary.Version) string {
	var b strings.Builder
	b.WriteString(prologue)
	b.WriteString("SELECT ?type (COUNT(DISTINCT ?s) AS ?n)\nWHERE {\n")
	b.WriteString("  ?s rdf:type ?type .\n")
	b.WriteString("  FILTER(isIRI(?s))\n")
	parts := make([]string, 0)
	for _, ht := range vocabulary.HarvestableTypes(v) {
		parts = append(parts, fmt.Sprintf("?type = <%s>", ht.URI))
	}
	fmt.Fprintf(&b, "  FILTER(%s)\n", strings.Join(parts, " || "))
	b.WriteString("}\nGROUP BY ?type\nORDER BY ?type\n")
	return b.String()
}

// ListCategories lists concept and concept-scheme resources with
// optional label and description. Bindings: s, label, desc.
func ListCategories() string {
	var b strings.Builder
	b.WriteString(prologue)
	b.WriteString("SELECT ?s ?label ?desc\nWHERE {\n")
	b.WriteString("  { ?s rdf:type skos:Concept . } UNION { ?s rdf:type skos:ConceptScheme . }\n")
	b.WriteString("  FILTER(isIRI(?s))\n")
	b.WriteString("  OPTIONAL { ?s skos:prefLabel ?label . }\n")
	b.WriteString("  OPTIONAL { ?s dct:title ?label . }\n")
	b.WriteString("  OPTIONAL { ?s skos:definition ?desc . }\n")
	b.WriteString("  OPTIONAL { ?s dct:description ?desc . }\n")
	b.WriteString("}\nORDER BY ?s\n")
	return b.String()
}
