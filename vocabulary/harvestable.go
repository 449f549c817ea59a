package vocabulary

// HarvestableType describes an RDF type enrolled in the harvesting
// protocol. Only named resources carrying one of these types are
// exposed as records; anything else in the graph is invisible to
// harvesters no matter how it got there.
type HarvestableType struct {
	// URI is the full type IRI as stored in the dataset.
	URI string
	// LocalName is the short name used in type: set specs.
	LocalName string
}

// HarvestableTypes returns the fixed, ordered list of harvestable RDF
// types for the given version. The list is closed: type filtering in
// generated queries is a union over exactly these IRIs.
func HarvestableTypes(v Version) []HarvestableType {
	return []HarvestableType{
		{URI: DCATDatasetClass, LocalName: "Dataset"},
		{URI: v.ExtTerm(ExtWebServiceClass), LocalName: "WebService"},
		{URI: DCATDataServiceClass, LocalName: "DataService"},
		{URI: SchemaOrganizationClass, LocalName: "Organization"},
		{URI: v.ExtTerm(ExtFacilityClass), LocalName: "Facility"},
		{URI: v.ExtTerm(ExtEquipmentClass), LocalName: "Equipment"},
		{URI: SchemaPersonClass, LocalName: "Person"},
		{URI: SchemaSoftwareAppClass, LocalName: "SoftwareApplication"},
		{URI: SchemaSoftwareSrcClass, LocalName: "SoftwareSourceCode"},
	}
}

// TypeByLocalName resolves a type: set-spec local name back to the
// full IRI. Unknown names return ok=false; the caller treats that as
// an empty selection, not a protocol error.
func TypeByLocalName(v Version, local string) (string, bool) {
	for _, ht := range HarvestableTypes(v) {
		if ht.LocalName == local {
			return ht.URI, true
		}
	}
	return "", false
}

// LocalNameByType is the inverse lookup, used when building set
// memberships for record headers.
func LocalNameByType(v Version, uri string) (string, bool) {
	for _, ht := range HarvestableTypes(v) {
		if ht.URI == uri {
			return ht.LocalName, true
		}
	}
	return "", false
}

// DatePredicates returns the datestamp coalescing order. A record's
// datestamp is the first bound value in this order; records with none
// of these predicates are treated as always in range by date filters.
func DatePredicates() []string {
	return []string{
		DCTModified,
		DCTIssued,
		DCTCreated,
		SchemaDateModified,
		SchemaDatePublished,
	}
}
