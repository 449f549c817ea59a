package vocabulary

// Base namespaces shared by both vocabulary versions.
const (
	RDF    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS   = "http://www.w3.org/2000/01/rdf-schema#"
	OWL    = "http://www.w3.org/2002/07/owl#"
	XSD    = "http://www.w3.org/2001/XMLSchema#"
	SKOS   = "http://www.w3.org/2004/02/skos/core#"
	DCT    = "http://purl.org/dc/terms/"
	DCAT   = "http://www.w3.org/ns/dcat#"
	FOAF   = "http://xmlns.com/foaf/0.1/"
	VCARD  = "http://www.w3.org/2006/vcard/ns#"
	Schema = "http://schema.org/"
	ADMS   = "http://www.w3.org/ns/adms#"
	LOCN   = "http://www.w3.org/ns/locn#"
	Hydra  = "http://www.w3.org/ns/hydra/core#"
	PROV   = "http://www.w3.org/ns/prov#"
	OAIDC  = "http://www.openarchives.org/OAI/2.0/oai_dc/"
	DCElem = "http://purl.org/dc/elements/1.1/"
)

// Extension namespaces. V1 and V3 publish the profile-specific terms
// under different base IRIs; both must stay stable because they are
// part of the harvested wire format.
const (
	EPOSV1 = "https://www.epos-eu.org/epos/dcat-ap#"
	EPOSV3 = "https://www.epos-eu.org/epos-dcat-ap#"
)

// RDF core terms.
const (
	RDFType   = RDF + "type"
	RDFSLabel = RDFS + "label"
)

// Dublin Core terms used across mappers and the harvesting engine.
const (
	DCTTitle                = DCT + "title"
	DCTDescription          = DCT + "description"
	DCTIdentifier           = DCT + "identifier"
	DCTType                 = DCT + "type"
	DCTIssued               = DCT + "issued"
	DCTModified             = DCT + "modified"
	DCTCreated              = DCT + "created"
	DCTPublisher            = DCT + "publisher"
	DCTCreator              = DCT + "creator"
	DCTLicense              = DCT + "license"
	DCTFormat               = DCT + "format"
	DCTSpatial              = DCT + "spatial"
	DCTTemporal             = DCT + "temporal"
	DCTConformsTo           = DCT + "conformsTo"
	DCTAccessRights         = DCT + "accessRights"
	DCTAccrualPeriodicity   = DCT + "accrualPeriodicity"
	DCTIsPartOf             = DCT + "isPartOf"
	DCTHasVersion           = DCT + "hasVersion"
	DCTPeriodOfTimeClass    = DCT + "PeriodOfTime"
	DCTLocationClass        = DCT + "Location"
	DCTRightsStatementClass = DCT + "RightsStatement"
)

// DCAT terms.
const (
	DCATDatasetClass      = DCAT + "Dataset"
	DCATDistributionClass = DCAT + "Distribution"
	DCATDataServiceClass  = DCAT + "DataService"
	DCATCatalogClass      = DCAT + "Catalog"
	DCATDistribution      = DCAT + "distribution"
	DCATContactPoint      = DCAT + "contactPoint"
	DCATAccessURL         = DCAT + "accessURL"
	DCATDownloadURL       = DCAT + "downloadURL"
	DCATEndpointURL       = DCAT + "endpointURL"
	DCATEndpointDesc      = DCAT + "endpointDescription"
	DCATServesDataset     = DCAT + "servesDataset"
	DCATKeyword           = DCAT + "keyword"
	DCATTheme             = DCAT + "theme"
	DCATStartDate         = DCAT + "startDate"
	DCATEndDate           = DCAT + "endDate"
	DCATBBox              = DCAT + "bbox"
)

// FOAF / vCard / schema.org agent terms.
const (
	FOAFName          = FOAF + "name"
	FOAFMbox          = FOAF + "mbox"
	FOAFHomepage      = FOAF + "homepage"
	FOAFPage          = FOAF + "page"
	VCARDOrganization = VCARD + "Organization"
	VCARDIndividual   = VCARD + "Individual"
	VCARDFn           = VCARD + "fn"
	VCARDHasEmail     = VCARD + "hasEmail"
	VCARDHasTelephone = VCARD + "hasTelephone"
	VCARDHasAddress   = VCARD + "hasAddress"
	VCARDAddressClass = VCARD + "Address"
	VCARDStreet       = VCARD + "street-address"
	VCARDLocality     = VCARD + "locality"
	VCARDPostalCode   = VCARD + "postal-code"
	VCARDCountryName  = VCARD + "country-name"
	VCARDHasURL       = VCARD + "hasURL"

	SchemaOrganizationClass  = Schema + "Organization"
	SchemaPersonClass        = Schema + "Person"
	SchemaContactPointClass  = Schema + "ContactPoint"
	SchemaSoftwareAppClass   = Schema + "SoftwareApplication"
	SchemaSoftwareSrcClass   = Schema + "SoftwareSourceCode"
	SchemaName               = Schema + "name"
	SchemaDescription        = Schema + "description"
	SchemaLegalName          = Schema + "legalName"
	SchemaLeiCode            = Schema + "leiCode"
	SchemaIdentifier         = Schema + "identifier"
	SchemaEmail              = Schema + "email"
	SchemaTelephone          = Schema + "telephone"
	SchemaURL                = Schema + "url"
	SchemaLogo               = Schema + "logo"
	SchemaAddress            = Schema + "address"
	SchemaGivenName          = Schema + "givenName"
	SchemaFamilyName         = Schema + "familyName"
	SchemaAffiliation        = Schema + "affiliation"
	SchemaContactType        = Schema + "contactType"
	SchemaDateModified       = Schema + "dateModified"
	SchemaDatePublished      = Schema + "datePublished"
	SchemaKeywords           = Schema + "keywords"
	SchemaLicense            = Schema + "license"
	SchemaDownloadURL        = Schema + "downloadUrl"
	SchemaCodeRepository     = Schema + "codeRepository"
	SchemaProgrammingLang    = Schema + "programmingLanguage"
	SchemaSoftwareVersion    = Schema + "softwareVersion"
	SchemaSoftwareReqs       = Schema + "softwareRequirements"
	SchemaManufacturer       = Schema + "manufacturer"
	SchemaSerialNumber       = Schema + "serialNumber"
	SchemaPostalAddressClass = Schema + "PostalAddress"
	SchemaStreetAddress      = Schema + "streetAddress"
	SchemaAddressLocality    = Schema + "addressLocality"
	SchemaPostalCode         = Schema + "postalCode"
	SchemaAddressCountry     = Schema + "addressCountry"
	SchemaProviderClass      = Schema + "provider"
	SchemaOwns               = Schema + "owns"
	SchemaMemberOf           = Schema + "memberOf"
	SchemaMember             = Schema + "member"
)

// SKOS terms used for category schemes.
const (
	SKOSConceptClass       = SKOS + "Concept"
	SKOSConceptSchemeClass = SKOS + "ConceptScheme"
	SKOSPrefLabel          = SKOS + "prefLabel"
	SKOSDefinition         = SKOS + "definition"
	SKOSInScheme           = SKOS + "inScheme"
	SKOSNotation           = SKOS + "notation"
	SKOSNarrower           = SKOS + "narrower"
	SKOSBroader            = SKOS + "broader"
)

// LOCN / geometry terms.
const (
	LOCNGeometry = LOCN + "geometry"
	LOCNLocation = DCT + "Location"
)

// Hydra terms, used for parameterized web-service operations.
const (
	HydraOperationClass    = Hydra + "Operation"
	HydraIriTemplateClass  = Hydra + "IriTemplate"
	HydraTemplateMapClass  = Hydra + "IriTemplateMapping"
	HydraMethod            = Hydra + "method"
	HydraTemplate          = Hydra + "template"
	HydraMapping           = Hydra + "mapping"
	HydraVariable          = Hydra + "variable"
	HydraRequired          = Hydra + "required"
	HydraProperty          = Hydra + "property"
	HydraSupportedOp       = Hydra + "supportedOperation"
	HydraEntryPoint        = Hydra + "entrypoint"
	HydraVariableRepr      = Hydra + "variableRepresentation"
	HydraExpects           = Hydra + "expects"
	HydraPossibleValue     = Hydra + "possibleValue"
)

// ADMS terms.
const (
	ADMSIdentifierClass = ADMS + "Identifier"
	ADMSIdentifier      = ADMS + "identifier"
	ADMSSchemeAgency    = ADMS + "schemeAgency"
)

// XSD datatypes for typed literals.
const (
	XSDString   = XSD + "string"
	XSDDate     = XSD + "date"
	XSDDateTime = XSD + "dateTime"
	XSDBoolean  = XSD + "boolean"
	XSDAnyURI   = XSD + "anyURI"
	XSDInteger  = XSD + "integer"
)

// Profile extension terms. The namespace differs per version; resolve
// through Version.Ext.
const (
	ExtWebServiceClass = "WebService"
	ExtFacilityClass   = "Facility"
	ExtEquipmentClass  = "Equipment"
	ExtServiceClass    = "Service"
)
