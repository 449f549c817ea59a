// Package vocabulary defines the namespace and term constants for the
// published metadata graph, together with the versioned prefix tables
// used by the mapping engine and the serializers.
//
// Two vocabulary versions coexist: V1 (the original DCAT-AP profile
// with its own extension namespace) and V3 (the revised profile that
// leans on dcat:DataService and schema.org terms). The version selects
// prefix bindings, mandatory-field rules in the mappers, and some of
// the emitted predicates; the constants here are shared raw material
// for both.
package vocabulary
