package mapping

import (
	"fmt"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

func mapDistributionV1(c *Context, e entity.Entity) (*rdf.Node, error) {
	d, err := as[*entity.Distribution](e)
	if err != nil {
		return nil, err
	}
	if len(d.Title) == 0 {
		return nil, fmt.Errorf("%w: distribution %s needs title", ErrNotCompliant, d.ID)
	}
	s := c.begin(d.ID)
	c.Graph.AddType(s, vocabulary.DCATDistributionClass)
	distributionCommon(c, s, d)
	return s, nil
}

func mapDistributionV3(c *Context, e entity.Entity) (*rdf.Node, error) {
	d, err := as[*entity.Distribution](e)
	if err != nil {
		return nil, err
	}
	s := c.begin(d.ID)
	c.Graph.AddType(s, vocabulary.DCATDistributionClass)
	distributionCommon(c, s, d)
	return s, nil
}

func distributionCommon(c *Context, s *rdf.Node, d *entity.Distribution) {
	c.Graph.AddStrings(s, vocabulary.DCTTitle, d.Title)
	c.Graph.AddStrings(s, vocabulary.DCTDescription, d.Description)
	c.Graph.AddAnyURI(s, vocabulary.DCTFormat, d.Format)
	if d.License != "" {
		c.Graph.AddResource(s, vocabulary.DCTLicense, c.Graph.Resource(d.License))
	}
	addDateTime(c, s, vocabulary.DCTIssued, d.Issued)
	addDateTime(c, s, vocabulary.DCTModified, d.Modified)
	for _, u := range d.DownloadURL {
		c.Graph.AddResource(s, vocabulary.DCATDownloadURL, c.Graph.Resource(u))
	}
	c.Graph.AddStrings(s, vocabulary.DCTConformsTo, d.DataPolicy)
	// accessURL points at the serving web service record.
	c.mapRefs(s, vocabulary.DCATAccessURL, d.AccessURL)
}
