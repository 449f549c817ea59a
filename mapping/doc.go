// Package mapping converts typed domain entities into the RDF graph.
//
// A Registry holds one versioned mapping strategy per entity type and
// is the single dispatch point for the whole engine. Each strategy is
// a pair of pure functions (one per vocabulary version) that take the
// entity, the shared graph builder with its resource cache, and the
// resolver for weak references, and return a node or report the entity
// as not compliant for that version.
//
// Mandatory-field compliance per type and version:
//
//	Dataset              V1: title, description    V3: title
//	Distribution         V1: title                 V3: none
//	WebService           V1: name, description,
//	                         provider              V3: name
//	Operation            V1/V3: template
//	Organization         V1/V3: legal name
//	ContactPoint         V1: email                 V3: none
//	Person               V1: family name           V3: none
//	Facility             V1/V3: title
//	Equipment            V1/V3: name
//	Service              V1: name, description     V3: name
//	SoftwareApplication  V1/V3: name
//	SoftwareSourceCode   V1/V3: name
//	Category             V1/V3: name
//	CategoryScheme       V1/V3: title
//
// A non-compliant entity is skipped with a warning and the edge that
// would have attached it is dropped; the export never aborts for it.
package mapping
