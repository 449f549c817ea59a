package vocabulary

import (
	"fmt"
	"strings"
)

// Version selects one of the two published vocabulary profiles.
type Version string

const (
	// V1 is the original extended DCAT-AP profile.
	V1 Version = "V1"
	// V3 is the revised profile aligned with DCAT 2 and schema.org.
	V3 Version = "V3"
)

// ParseVersion normalizes a user-supplied version string.
func ParseVersion(s string) (Version, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "V1", "1":
		return V1, nil
	case "V3", "3":
		return V3, nil
	default:
		return "", fmt.Errorf("unknown vocabulary version %q", s)
	}
}

// Ext returns the profile extension namespace for this version.
func (v Version) Ext() string {
	if v == V3 {
		return EPOSV3
	}
	return EPOSV1
}

// ExtTerm builds a full IRI for a profile extension local name.
func (v Version) ExtTerm(local string) string {
	return v.Ext() + local
}

// Prefixes returns the fixed namespace-prefix table for this version.
// The table is part of the serialized output contract; entries must
// not be added or removed casually.
func (v Version) Prefixes() map[string]string {
	p := map[string]string{
		"rdf":    RDF,
		"rdfs":   RDFS,
		"owl":    OWL,
		"xsd":    XSD,
		"skos":   SKOS,
		"dct":    DCT,
		"dcat":   DCAT,
		"foaf":   FOAF,
		"vcard":  VCARD,
		"schema": Schema,
		"adms":   ADMS,
		"locn":   LOCN,
		"hydra":  Hydra,
		"epos":   v.Ext(),
	}
	return p
}
