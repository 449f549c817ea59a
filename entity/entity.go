package entity

import (
	"fmt"
	"time"
)

// TypeTag identifies the concrete kind of an entity. Tags appear in
// LinkedEntity references and in the repository registry; they are
// lower-case stable strings, not RDF type IRIs.
type TypeTag string

const (
	TypeDataset             TypeTag = "dataset"
	TypeDistribution        TypeTag = "distribution"
	TypeWebService          TypeTag = "webservice"
	TypeOperation           TypeTag = "operation"
	TypeOrganization        TypeTag = "organization"
	TypeContactPoint        TypeTag = "contactpoint"
	TypePerson              TypeTag = "person"
	TypeFacility            TypeTag = "facility"
	TypeEquipment           TypeTag = "equipment"
	TypeService             TypeTag = "service"
	TypeSoftwareApplication TypeTag = "softwareapplication"
	TypeSoftwareSourceCode  TypeTag = "softwaresourcecode"
	TypeCategory            TypeTag = "category"
	TypeCategoryScheme      TypeTag = "categoryscheme"
)

// AllTypes lists every registered type tag in a stable order.
func AllTypes() []TypeTag {
	return []TypeTag{
		TypeDataset,
		TypeDistribution,
		TypeWebService,
		TypeOperation,
		TypeOrganization,
		TypeContactPoint,
		TypePerson,
		TypeFacility,
		TypeEquipment,
		TypeService,
		TypeSoftwareApplication,
		TypeSoftwareSourceCode,
		TypeCategory,
		TypeCategoryScheme,
	}
}

// ParseTypeTag validates a user-supplied type tag.
func ParseTypeTag(s string) (TypeTag, error) {
	for _, t := range AllTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

// Entity is any domain object with a globally unique URI identifier
// and a type tag. Entities expose their outbound weak references
// explicitly so traversal never needs reflection.
type Entity interface {
	UID() string
	TypeTag() TypeTag

	// References returns every outbound weak reference, including
	// references held inside list-valued attributes.
	References() []LinkedEntity
}

// LinkedEntity is a weak, typed reference to another entity.
type LinkedEntity struct {
	UID  string  `yaml:"uid"`
	Type TypeTag `yaml:"type"`
}

// IsZero reports whether the reference is empty.
func (l LinkedEntity) IsZero() bool { return l.UID == "" }

// Structurally embedded value types. These have no external identity
// and are emitted as blank nodes, recreated per use.

// Address is a postal address.
type Address struct {
	Street     string `yaml:"street"`
	Locality   string `yaml:"locality"`
	PostalCode string `yaml:"postal_code"`
	Country    string `yaml:"country"`
}

// IsZero reports whether the address carries no fields at all.
func (a Address) IsZero() bool {
	return a.Street == "" && a.Locality == "" && a.PostalCode == "" && a.Country == ""
}

// Location is a spatial extent expressed as WKT geometry.
type Location struct {
	Geometry string `yaml:"geometry"`
}

// PeriodOfTime is a temporal extent with optional open ends.
type PeriodOfTime struct {
	Start *time.Time `yaml:"start"`
	End   *time.Time `yaml:"end"`
}

// Identifier is an alternate identifier under a naming scheme, for
// example a DOI or an ORCID.
type Identifier struct {
	Scheme string `yaml:"scheme"`
	ID     string `yaml:"id"`
}

// Parameter describes one variable of a parameterized web-service
// operation, rendered as an IRI-template mapping.
type Parameter struct {
	Variable     string   `yaml:"variable"`
	Label        string   `yaml:"label"`
	Required     bool     `yaml:"required"`
	Property     string   `yaml:"property"`
	DefaultValue string   `yaml:"default_value"`
	Enum         []string `yaml:"enum"`
}

// refs appends non-zero references to dst.
func refs(dst []LinkedEntity, links ...[]LinkedEntity) []LinkedEntity {
	for _, list := range links {
		for _, l := range list {
			if !l.IsZero() {
				dst = append(dst, l)
			}
		}
	}
	return dst
}
