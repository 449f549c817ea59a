// Package rdf provides the in-memory graph assembled by the mapping
// engine and its Turtle / JSON-LD serializers.
//
// A Graph is scoped to a single export invocation. It owns the
// namespace-prefix table for the selected vocabulary version and the
// resource cache that guarantees each entity URI maps to at most one
// node per export. Builder helpers silently no-op on blank input so
// mappers never emit empty-valued triples.
package rdf
