package mapping

import (
	"fmt"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

func mapWebServiceV1(c *Context, e entity.Entity) (*rdf.Node, error) {
	w, err := as[*entity.WebService](e)
	if err != nil {
		return nil, err
	}
	if w.Name == "" || w.Description == "" || len(w.Provider) == 0 {
		return nil, fmt.Errorf("%w: webservice %s needs name, description and provider", ErrNotCompliant, w.ID)
	}
	s := c.begin(w.ID)
	c.Graph.AddType(s, c.Version.ExtTerm(vocabulary.ExtWebServiceClass))
	c.Graph.AddString(s, vocabulary.SchemaName, w.Name)
	c.Graph.AddString(s, vocabulary.SchemaDescription, w.Description)
	webServiceCommon(c, s, w)
	c.mapRefFirst(s, vocabulary.SchemaProviderClass, w.Provider)
	return s, nil
}

func mapWebServiceV3(c *Context, e entity.Entity) (*rdf.Node, error) {
	w, err := as[*entity.WebService](e)
	if err != nil {
		return nil, err
	}
	if w.Name == "" {
		return nil, fmt.Errorf("%w: webservice %s needs name", ErrNotCompliant, w.ID)
	}
	s := c.begin(w.ID)
	c.Graph.AddType(s, vocabulary.DCATDataServiceClass)
	c.Graph.AddType(s, c.Version.ExtTerm(vocabulary.ExtWebServiceClass))
	c.Graph.AddString(s, vocabulary.DCTTitle, w.Name)
	c.Graph.AddString(s, vocabulary.DCTDescription, w.Description)
	webServiceCommon(c, s, w)
	c.mapRefs(s, vocabulary.DCTPublisher, w.Provider)
	c.mapRefs(s, vocabulary.DCATServesDataset, w.ServesDataset)
	return s, nil
}

func webServiceCommon(c *Context, s *rdf.Node, w *entity.WebService) {
	c.Graph.AddStrings(s, vocabulary.DCATKeyword, w.Keywords)
	if w.License != "" {
		c.Graph.AddResource(s, vocabulary.DCTLicense, c.Graph.Resource(w.License))
	}
	if w.EntryPoint != "" {
		c.Graph.AddResource(s, vocabulary.DCATEndpointURL, c.Graph.Resource(w.EntryPoint))
	}
	for _, d := range w.Documentation {
		c.Graph.AddResource(s, vocabulary.FOAFPage, c.Graph.Resource(d))
	}
	addDateTime(c, s, vocabulary.DCTIssued, w.Issued)
	addDateTime(c, s, vocabulary.DCTModified, w.Modified)
	for _, p := range w.Temporal {
		c.Graph.AddResource(s, vocabulary.DCTTemporal, periodNode(c, p))
	}
	for _, l := range w.Spatial {
		c.Graph.AddResource(s, vocabulary.DCTSpatial, locationNode(c, l))
	}
	c.mapRefs(s, vocabulary.DCATContactPoint, w.ContactPoint)
	c.mapRefs(s, vocabulary.HydraSupportedOp, w.Operations)
	c.mapRefs(s, vocabulary.DCATTheme, w.Category)
}
