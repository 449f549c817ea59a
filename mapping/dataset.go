package mapping

import (
	"fmt"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

func mapDatasetV1(c *Context, e entity.Entity) (*rdf.Node, error) {
	d, err := as[*entity.Dataset](e)
	if err != nil {
		return nil, err
	}
	if len(d.Title) == 0 || len(d.Description) == 0 {
		return nil, fmt.Errorf("%w: dataset %s needs title and description", ErrNotCompliant, d.ID)
	}
	s := c.begin(d.ID)
	c.Graph.AddType(s, vocabulary.DCATDatasetClass)
	datasetCommon(c, s, d)
	for _, id := range d.Identifiers {
		c.Graph.AddResource(s, vocabulary.ADMSIdentifier, identifierNode(c, id))
	}
	return s, nil
}

func mapDatasetV3(c *Context, e entity.Entity) (*rdf.Node, error) {
	d, err := as[*entity.Dataset](e)
	if err != nil {
		return nil, err
	}
	if len(d.Title) == 0 {
		return nil, fmt.Errorf("%w: dataset %s needs title", ErrNotCompliant, d.ID)
	}
	s := c.begin(d.ID)
	c.Graph.AddType(s, vocabulary.DCATDatasetClass)
	datasetCommon(c, s, d)
	for _, id := range d.Identifiers {
		c.Graph.AddString(s, vocabulary.SchemaIdentifier, id.ID)
	}
	return s, nil
}

func datasetCommon(c *Context, s *rdf.Node, d *entity.Dataset) {
	c.Graph.AddStrings(s, vocabulary.DCTTitle, d.Title)
	c.Graph.AddStrings(s, vocabulary.DCTDescription, d.Description)
	c.Graph.AddStrings(s, vocabulary.DCATKeyword, d.Keywords)
	addDateTime(c, s, vocabulary.DCTIssued, d.Issued)
	addDateTime(c, s, vocabulary.DCTModified, d.Modified)
	addDateTime(c, s, vocabulary.DCTCreated, d.Created)
	c.Graph.AddString(s, vocabulary.OWL+"versionInfo", d.VersionInfo)
	// accessRights is capped at one value in the target vocabulary.
	if d.AccessRights != "" {
		b := c.Graph.Blank()
		c.Graph.AddType(b, vocabulary.DCTRightsStatementClass)
		c.Graph.AddString(b, vocabulary.RDFS+"label", d.AccessRights)
		c.Graph.AddResource(s, vocabulary.DCTAccessRights, b)
	}
	c.Graph.AddAnyURI(s, vocabulary.DCTAccrualPeriodicity, d.AccrualPeriodicity)
	for _, p := range d.Pages {
		c.Graph.AddResource(s, vocabulary.FOAFPage, c.Graph.Resource(p))
	}
	for _, p := range d.Temporal {
		c.Graph.AddResource(s, vocabulary.DCTTemporal, periodNode(c, p))
	}
	for _, l := range d.Spatial {
		c.Graph.AddResource(s, vocabulary.DCTSpatial, locationNode(c, l))
	}
	c.mapRefFirst(s, vocabulary.DCTPublisher, d.Publisher)
	c.mapRefs(s, vocabulary.DCATContactPoint, d.ContactPoint)
	c.mapRefs(s, vocabulary.DCATDistribution, d.Distribution)
	c.mapRefs(s, vocabulary.DCATTheme, d.Category)
	c.mapRefs(s, vocabulary.DCTIsPartOf, d.IsPartOf)
}
