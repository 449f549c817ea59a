package mapping

import (
	"fmt"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

func mapFacility(c *Context, e entity.Entity) (*rdf.Node, error) {
	f, err := as[*entity.Facility](e)
	if err != nil {
		return nil, err
	}
	if f.Title == "" {
		return nil, fmt.Errorf("%w: facility %s needs title", ErrNotCompliant, f.ID)
	}
	s := c.begin(f.ID)
	c.Graph.AddType(s, c.Version.ExtTerm(vocabulary.ExtFacilityClass))
	c.Graph.AddString(s, vocabulary.DCTTitle, f.Title)
	c.Graph.AddString(s, vocabulary.DCTDescription, f.Description)
	c.Graph.AddAnyURI(s, vocabulary.DCTType, f.Type)
	c.Graph.AddStrings(s, vocabulary.DCATKeyword, f.Keywords)
	for _, p := range f.Pages {
		c.Graph.AddResource(s, vocabulary.FOAFPage, c.Graph.Resource(p))
	}
	c.Graph.AddResource(s, vocabulary.SchemaAddress, addressNode(c, f.Address))
	for _, l := range f.Spatial {
		c.Graph.AddResource(s, vocabulary.DCTSpatial, locationNode(c, l))
	}
	c.mapRefs(s, vocabulary.DCATContactPoint, f.ContactPoint)
	c.mapRefs(s, vocabulary.DCTIsPartOf, f.IsPartOf)
	c.mapRefs(s, vocabulary.DCATTheme, f.Category)
	return s, nil
}

func mapEquipment(c *Context, e entity.Entity) (*rdf.Node, error) {
	q, err := as[*entity.Equipment](e)
	if err != nil {
		return nil, err
	}
	if q.Name == "" {
		return nil, fmt.Errorf("%w: equipment %s needs name", ErrNotCompliant, q.ID)
	}
	s := c.begin(q.ID)
	c.Graph.AddType(s, c.Version.ExtTerm(vocabulary.ExtEquipmentClass))
	c.Graph.AddString(s, vocabulary.SchemaName, q.Name)
	c.Graph.AddString(s, vocabulary.SchemaDescription, q.Description)
	c.Graph.AddAnyURI(s, vocabulary.DCTType, q.Type)
	c.Graph.AddString(s, vocabulary.SchemaManufacturer, q.Manufacturer)
	c.Graph.AddString(s, vocabulary.SchemaSerialNumber, q.SerialNumber)
	c.Graph.AddString(s, c.Version.ExtTerm("resolution"), q.Resolution)
	c.Graph.AddString(s, c.Version.ExtTerm("samplePeriod"), q.SamplePeriod)
	for _, l := range q.Spatial {
		c.Graph.AddResource(s, vocabulary.DCTSpatial, locationNode(c, l))
	}
	c.mapRefs(s, vocabulary.DCATContactPoint, q.ContactPoint)
	c.mapRefs(s, vocabulary.DCTIsPartOf, q.Facility)
	c.mapRefs(s, vocabulary.DCATTheme, q.Category)
	return s, nil
}

func mapServiceV1(c *Context, e entity.Entity) (*rdf.Node, error) {
	sv, err := as[*entity.Service](e)
	if err != nil {
		return nil, err
	}
	if sv.Name == "" || sv.Description == "" {
		return nil, fmt.Errorf("%w: service %s needs name and description", ErrNotCompliant, sv.ID)
	}
	return serviceCommon(c, sv), nil
}

func mapServiceV3(c *Context, e entity.Entity) (*rdf.Node, error) {
	sv, err := as[*entity.Service](e)
	if err != nil {
		return nil, err
	}
	if sv.Name == "" {
		return nil, fmt.Errorf("%w: service %s needs name", ErrNotCompliant, sv.ID)
	}
	return serviceCommon(c, sv), nil
}

func serviceCommon(c *Context, sv *entity.Service) *rdf.Node {
	s := c.begin(sv.ID)
	c.Graph.AddType(s, c.Version.ExtTerm(vocabulary.ExtServiceClass))
	c.Graph.AddString(s, vocabulary.DCTTitle, sv.Name)
	c.Graph.AddString(s, vocabulary.DCTDescription, sv.Description)
	c.Graph.AddAnyURI(s, vocabulary.DCTType, sv.Type)
	for _, p := range sv.Pages {
		c.Graph.AddResource(s, vocabulary.FOAFPage, c.Graph.Resource(p))
	}
	for _, p := range sv.Temporal {
		c.Graph.AddResource(s, vocabulary.DCTTemporal, periodNode(c, p))
	}
	for _, l := range sv.Spatial {
		c.Graph.AddResource(s, vocabulary.DCTSpatial, locationNode(c, l))
	}
	c.mapRefFirst(s, vocabulary.DCTPublisher, sv.Provider)
	c.mapRefs(s, vocabulary.DCATContactPoint, sv.ContactPoint)
	c.mapRefs(s, vocabulary.DCATTheme, sv.Category)
	return s
}
