package rdf

import (
	"strings"
	"time"

	"github.com/earthmeta/lodserver/vocabulary"
)

// Node is an RDF subject or resource-valued object. Named nodes carry
// the entity URI; blank nodes carry a graph-local label and no
// external identity.
type Node struct {
	uri   string
	blank bool
}

// URI returns the node's IRI, or its _:label form for blank nodes.
func (n *Node) URI() string {
	if n.blank {
		return "_:" + n.uri
	}
	return n.uri
}

// IsBlank reports whether the node is anonymous.
func (n *Node) IsBlank() bool { return n.blank }

// Literal is a typed or language-tagged RDF literal.
type Literal struct {
	Value    string
	Datatype string
	Lang     string
}

// IsZero reports whether the literal carries no value at all.
func (l Literal) IsZero() bool { return strings.TrimSpace(l.Value) == "" }

// String builds an xsd:string literal.
func String(v string) Literal {
	return Literal{Value: v, Datatype: vocabulary.XSDString}
}

// Date builds an xsd:date literal (YYYY-MM-DD).
func Date(t time.Time) Literal {
	return Literal{Value: t.Format("2006-01-02"), Datatype: vocabulary.XSDDate}
}

// DateTime builds an xsd:dateTime literal as an ISO-8601 UTC instant.
func DateTime(t time.Time) Literal {
	return Literal{Value: t.UTC().Format(time.RFC3339), Datatype: vocabulary.XSDDateTime}
}

// Bool builds an xsd:boolean literal.
func Bool(v bool) Literal {
	if v {
		return Literal{Value: "true", Datatype: vocabulary.XSDBoolean}
	}
	return Literal{Value: "false", Datatype: vocabulary.XSDBoolean}
}

// AnyURI builds an xsd:anyURI literal for URI-valued attributes that
// the target schema treats as literals rather than resources.
func AnyURI(v string) Literal {
	return Literal{Value: v, Datatype: vocabulary.XSDAnyURI}
}

// Triple is one edge of the assembled graph. Object is either *Node
// or Literal.
type Triple struct {
	Subject   *Node
	Predicate string
	Object    any
}
