package mapping

import (
	"fmt"

	"github.com/earthmeta/lodserver/entity"
	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

// mapOperation emits a hydra:Operation with an embedded IRI template.
// The template and its parameter mappings are anonymous structure: the
// operation itself is addressable, the template is not.
func mapOperation(c *Context, e entity.Entity) (*rdf.Node, error) {
	o, err := as[*entity.Operation](e)
	if err != nil {
		return nil, err
	}
	if o.Template == "" {
		return nil, fmt.Errorf("%w: operation %s needs an IRI template", ErrNotCompliant, o.ID)
	}
	s := c.begin(o.ID)
	c.Graph.AddType(s, vocabulary.HydraOperationClass)
	c.Graph.AddString(s, vocabulary.HydraMethod, o.Method)

	tpl := c.Graph.Blank()
	c.Graph.AddType(tpl, vocabulary.HydraIriTemplateClass)
	c.Graph.AddString(tpl, vocabulary.HydraTemplate, o.Template)
	for _, p := range o.Params {
		c.Graph.AddResource(tpl, vocabulary.HydraMapping, parameterNode(c, p))
	}
	c.Graph.AddResource(s, vocabulary.HydraExpects, tpl)
	return s, nil
}

func parameterNode(c *Context, p entity.Parameter) *rdf.Node {
	if p.Variable == "" {
		return nil
	}
	b := c.Graph.Blank()
	c.Graph.AddType(b, vocabulary.HydraTemplateMapClass)
	c.Graph.AddString(b, vocabulary.HydraVariable, p.Variable)
	c.Graph.AddString(b, vocabulary.RDFS+"label", p.Label)
	c.Graph.AddAnyURI(b, vocabulary.HydraProperty, p.Property)
	c.Graph.AddLiteral(b, vocabulary.HydraRequired, rdf.Bool(p.Required))
	c.Graph.AddString(b, c.Version.ExtTerm("defaultValue"), p.DefaultValue)
	c.Graph.AddStrings(b, vocabulary.HydraPossibleValue, p.Enum)
	return b
}
