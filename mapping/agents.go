package mapping

import (
	"fmt"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

func mapOrganizationV1(c *Context, e entity.Entity) (*rdf.Node, error) {
	o, err := as[*entity.Organization](e)
	if err != nil {
		return nil, err
	}
	if len(o.LegalName) == 0 {
		return nil, fmt.Errorf("%w: organization %s needs legal name", ErrNotCompliant, o.ID)
	}
	s := c.begin(o.ID)
	c.Graph.AddType(s, vocabulary.SchemaOrganizationClass)
	organizationCommon(c, s, o)
	// V1 keeps legacy vcard contact properties on the organization.
	c.Graph.AddStrings(s, vocabulary.VCARDHasEmail, o.Email)
	c.Graph.AddStrings(s, vocabulary.VCARDHasTelephone, o.Telephone)
	c.Graph.AddResource(s, vocabulary.VCARDHasAddress, addressNode(c, o.Address))
	return s, nil
}

func mapOrganizationV3(c *Context, e entity.Entity) (*rdf.Node, error) {
	o, err := as[*entity.Organization](e)
	if err != nil {
		return nil, err
	}
	if len(o.LegalName) == 0 {
		return nil, fmt.Errorf("%w: organization %s needs legal name", ErrNotCompliant, o.ID)
	}
	s := c.begin(o.ID)
	c.Graph.AddType(s, vocabulary.SchemaOrganizationClass)
	organizationCommon(c, s, o)
	c.Graph.AddStrings(s, vocabulary.SchemaEmail, o.Email)
	c.Graph.AddStrings(s, vocabulary.SchemaTelephone, o.Telephone)
	c.Graph.AddResource(s, vocabulary.SchemaAddress, addressNode(c, o.Address))
	c.Graph.AddString(s, vocabulary.SchemaLeiCode, o.LeiCode)
	return s, nil
}

func organizationCommon(c *Context, s *rdf.Node, o *entity.Organization) {
	c.Graph.AddStrings(s, vocabulary.SchemaLegalName, o.LegalName)
	c.Graph.AddString(s, vocabulary.SKOSNotation, o.Acronym)
	if o.URL != "" {
		c.Graph.AddResource(s, vocabulary.SchemaURL, c.Graph.Resource(o.URL))
	}
	c.Graph.AddAnyURI(s, vocabulary.SchemaLogo, o.LogoURL)
	for _, id := range o.Identifiers {
		c.Graph.AddString(s, vocabulary.SchemaIdentifier, id.ID)
	}
	c.mapRefs(s, vocabulary.DCATContactPoint, o.ContactPoint)
	c.mapRefs(s, vocabulary.SchemaOwns, o.Owns)
	c.mapRefs(s, vocabulary.SchemaMemberOf, o.MemberOf)
}

func mapContactPointV1(c *Context, e entity.Entity) (*rdf.Node, error) {
	cp, err := as[*entity.ContactPoint](e)
	if err != nil {
		return nil, err
	}
	if len(cp.Email) == 0 {
		return nil, fmt.Errorf("%w: contactpoint %s needs email", ErrNotCompliant, cp.ID)
	}
	s := c.begin(cp.ID)
	c.Graph.AddType(s, vocabulary.VCARDIndividual)
	c.Graph.AddString(s, vocabulary.VCARDFn, cp.Role)
	c.Graph.AddStrings(s, vocabulary.VCARDHasEmail, cp.Email)
	c.Graph.AddStrings(s, vocabulary.VCARDHasTelephone, cp.Telephone)
	c.mapRefs(s, vocabulary.VCARDHasURL, cp.Agents)
	return s, nil
}

func mapContactPointV3(c *Context, e entity.Entity) (*rdf.Node, error) {
	cp, err := as[*entity.ContactPoint](e)
	if err != nil {
		return nil, err
	}
	s := c.begin(cp.ID)
	c.Graph.AddType(s, vocabulary.SchemaContactPointClass)
	c.Graph.AddString(s, vocabulary.SchemaContactType, cp.Role)
	c.Graph.AddStrings(s, vocabulary.SchemaEmail, cp.Email)
	c.Graph.AddStrings(s, vocabulary.SchemaTelephone, cp.Telephone)
	c.mapRefs(s, vocabulary.SchemaMember, cp.Agents)
	return s, nil
}

func mapPersonV1(c *Context, e entity.Entity) (*rdf.Node, error) {
	p, err := as[*entity.Person](e)
	if err != nil {
		return nil, err
	}
	if p.FamilyName == "" {
		return nil, fmt.Errorf("%w: person %s needs family name", ErrNotCompliant, p.ID)
	}
	return personCommon(c, p), nil
}

func mapPersonV3(c *Context, e entity.Entity) (*rdf.Node, error) {
	p, err := as[*entity.Person](e)
	if err != nil {
		return nil, err
	}
	return personCommon(c, p), nil
}

func personCommon(c *Context, p *entity.Person) *rdf.Node {
	s := c.begin(p.ID)
	c.Graph.AddType(s, vocabulary.SchemaPersonClass)
	c.Graph.AddString(s, vocabulary.SchemaGivenName, p.GivenName)
	c.Graph.AddString(s, vocabulary.SchemaFamilyName, p.FamilyName)
	c.Graph.AddStrings(s, vocabulary.SchemaEmail, p.Email)
	c.Graph.AddStrings(s, vocabulary.SchemaTelephone, p.Telephone)
	c.Graph.AddAnyURI(s, vocabulary.SchemaURL, p.CVURL)
	c.Graph.AddResource(s, vocabulary.SchemaAddress, addressNode(c, p.Address))
	for _, id := range p.Identifiers {
		c.Graph.AddString(s, vocabulary.SchemaIdentifier, id.ID)
	}
	c.mapRefs(s, vocabulary.SchemaAffiliation, p.Affiliation)
	return s
}
