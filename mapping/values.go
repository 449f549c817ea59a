package mapping

import (
	"time"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

// Structurally embedded value types become anonymous nodes, recreated
// per use and never cached: they have no stable external identity.

func addressNode(c *Context, a entity.Address) *rdf.Node {
	if a.IsZero() {
		return nil
	}
	b := c.Graph.Blank()
	if c.Version == vocabulary.V3 {
		c.Graph.AddType(b, vocabulary.SchemaPostalAddressClass)
		c.Graph.AddString(b, vocabulary.SchemaStreetAddress, a.Street)
		c.Graph.AddString(b, vocabulary.SchemaAddressLocality, a.Locality)
		c.Graph.AddString(b, vocabulary.SchemaPostalCode, a.PostalCode)
		c.Graph.AddString(b, vocabulary.SchemaAddressCountry, a.Country)
		return b
	}
	c.Graph.AddType(b, vocabulary.VCARDAddressClass)
	c.Graph.AddString(b, vocabulary.VCARDStreet, a.Street)
	c.Graph.AddString(b, vocabulary.VCARDLocality, a.Locality)
	c.Graph.AddString(b, vocabulary.VCARDPostalCode, a.PostalCode)
	c.Graph.AddString(b, vocabulary.VCARDCountryName, a.Country)
	return b
}

func locationNode(c *Context, l entity.Location) *rdf.Node {
	if l.Geometry == "" {
		return nil
	}
	b := c.Graph.Blank()
	c.Graph.AddType(b, vocabulary.DCTLocationClass)
	c.Graph.AddString(b, vocabulary.LOCNGeometry, l.Geometry)
	return b
}

func periodNode(c *Context, p entity.PeriodOfTime) *rdf.Node {
	if p.Start == nil && p.End == nil {
		return nil
	}
	b := c.Graph.Blank()
	c.Graph.AddType(b, vocabulary.DCTPeriodOfTimeClass)
	if p.Start != nil {
		c.Graph.AddLiteral(b, vocabulary.DCATStartDate, rdf.DateTime(*p.Start))
	}
	if p.End != nil {
		c.Graph.AddLiteral(b, vocabulary.DCATEndDate, rdf.DateTime(*p.End))
	}
	return b
}

func identifierNode(c *Context, id entity.Identifier) *rdf.Node {
	if id.ID == "" {
		return nil
	}
	b := c.Graph.Blank()
	c.Graph.AddType(b, vocabulary.ADMSIdentifierClass)
	c.Graph.AddString(b, vocabulary.SKOSNotation, id.ID)
	c.Graph.AddString(b, vocabulary.ADMSSchemeAgency, id.Scheme)
	return b
}

func addDateTime(c *Context, s *rdf.Node, pred string, t *time.Time) {
	if t == nil {
		return
	}
	c.Graph.AddLiteral(s, pred, rdf.DateTime(*t))
}
