package mapping

import (
	"fmt"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

func mapCategory(c *Context, e entity.Entity) (*rdf.Node, error) {
	cat, err := as[*entity.Category](e)
	if err != nil {
		return nil, err
	}
	if cat.Name == "" {
		return nil, fmt.Errorf("%w: category %s needs name", ErrNotCompliant, cat.ID)
	}
	s := c.begin(cat.ID)
	c.Graph.AddType(s, vocabulary.SKOSConceptClass)
	c.Graph.AddString(s, vocabulary.SKOSPrefLabel, cat.Name)
	c.Graph.AddString(s, vocabulary.SKOSDefinition, cat.Description)
	if !cat.InScheme.IsZero() {
		c.mapRefs(s, vocabulary.SKOSInScheme, []entity.LinkedEntity{cat.InScheme})
	}
	c.mapRefs(s, vocabulary.SKOSNarrower, cat.Narrower)
	return s, nil
}

func mapCategoryScheme(c *Context, e entity.Entity) (*rdf.Node, error) {
	cs, err := as[*entity.CategoryScheme](e)
	if err != nil {
		return nil, err
	}
	if cs.Title == "" {
		return nil, fmt.Errorf("%w: category scheme %s needs title", ErrNotCompliant, cs.ID)
	}
	s := c.begin(cs.ID)
	c.Graph.AddType(s, vocabulary.SKOSConceptSchemeClass)
	c.Graph.AddString(s, vocabulary.DCTTitle, cs.Title)
	c.Graph.AddString(s, vocabulary.DCTDescription, cs.Description)
	if cs.Homepage != "" {
		c.Graph.AddResource(s, vocabulary.FOAFHomepage, c.Graph.Resource(cs.Homepage))
	}
	c.Graph.AddAnyURI(s, vocabulary.SchemaLogo, cs.LogoURL)
	return s, nil
}
