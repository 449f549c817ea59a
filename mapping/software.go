package mapping

import (
	"fmt"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

func mapSoftwareApplication(c *Context, e entity.Entity) (*rdf.Node, error) {
	a, err := as[*entity.SoftwareApplication](e)
	if err != nil {
		return nil, err
	}
	if a.Name == "" {
		return nil, fmt.Errorf("%w: software application %s needs name", ErrNotCompliant, a.ID)
	}
	s := c.begin(a.ID)
	c.Graph.AddType(s, vocabulary.SchemaSoftwareAppClass)
	c.Graph.AddString(s, vocabulary.SchemaName, a.Name)
	c.Graph.AddString(s, vocabulary.SchemaDescription, a.Description)
	c.Graph.AddStrings(s, vocabulary.SchemaKeywords, a.Keywords)
	c.Graph.AddAnyURI(s, vocabulary.SchemaLicense, a.LicenseURL)
	c.Graph.AddAnyURI(s, vocabulary.SchemaDownloadURL, a.DownloadURL)
	c.Graph.AddString(s, vocabulary.SchemaSoftwareReqs, a.Requirements)
	c.mapRefs(s, vocabulary.DCATContactPoint, a.ContactPoint)
	c.mapRefs(s, vocabulary.DCATTheme, a.Category)
	return s, nil
}

func mapSoftwareSourceCode(c *Context, e entity.Entity) (*rdf.Node, error) {
	sc, err := as[*entity.SoftwareSourceCode](e)
	if err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%w: software source code %s needs name", ErrNotCompliant, sc.ID)
	}
	s := c.begin(sc.ID)
	c.Graph.AddType(s, vocabulary.SchemaSoftwareSrcClass)
	c.Graph.AddString(s, vocabulary.SchemaName, sc.Name)
	c.Graph.AddString(s, vocabulary.SchemaDescription, sc.Description)
	c.Graph.AddStrings(s, vocabulary.SchemaKeywords, sc.Keywords)
	c.Graph.AddAnyURI(s, vocabulary.SchemaLicense, sc.LicenseURL)
	c.Graph.AddAnyURI(s, vocabulary.SchemaCodeRepository, sc.CodeRepository)
	c.Graph.AddString(s, vocabulary.SchemaProgrammingLang, sc.Language)
	c.Graph.AddString(s, vocabulary.SchemaSoftwareVersion, sc.Version)
	c.mapRefs(s, vocabulary.DCATContactPoint, sc.ContactPoint)
	c.mapRefs(s, vocabulary.DCATTheme, sc.Category)
	return s, nil
}
