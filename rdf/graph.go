package rdf

import (
	"fmt"
	"strings"

	"github.com/earthmeta/lodserver/vocabulary"
)

// Graph accumulates triples for one export invocation. It owns the
// prefix table for the selected vocabulary version and the resource
// cache keyed by entity URI.
type Graph struct {
	version  vocabulary.Version
	prefixes map[string]string
	triples  []Triple
	cache    map[string]*Node
	blankSeq int
}

// NewGraph creates an empty graph bound to one vocabulary version.
func NewGraph(version vocabulary.Version) *Graph {
	return &Graph{
		version:  version,
		prefixes: version.Prefixes(),
		cache:    make(map[string]*Node),
	}
}

// Version returns the vocabulary version the graph was built for.
func (g *Graph) Version() vocabulary.Version { return g.version }

// Len returns the number of triples in the graph.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns the accumulated triples in emission order.
func (g *Graph) Triples() []Triple { return g.triples }

// Resource returns a named node for the given URI without touching
// the cache. The empty URI yields nil so helpers can no-op on it.
func (g *Graph) Resource(uri string) *Node {
	if strings.TrimSpace(uri) == "" {
		return nil
	}
	return &Node{uri: uri}
}

// Blank returns a fresh anonymous node. Blank nodes are recreated per
// use and never cached: structurally embedded values have no stable
// external identity.
func (g *Graph) Blank() *Node {
	g.blankSeq++
	return &Node{uri: fmt.Sprintf("b%d", g.blankSeq), blank: true}
}

// Cached looks up the resource cache. A hit means the entity was
// already mapped in this export and the identical node must be reused.
func (g *Graph) Cached(uid string) (*Node, bool) {
	n, ok := g.cache[uid]
	return n, ok
}

// PutCached records the node for a uid. Mappers must call this before
// recursing into cross-references so reference cycles terminate.
func (g *Graph) PutCached(uid string, n *Node) {
	if uid == "" || n == nil {
		return
	}
	g.cache[uid] = n
}

// AddType asserts rdf:type. No-op when either side is missing.
func (g *Graph) AddType(s *Node, typeURI string) {
	g.AddResource(s, vocabulary.RDFType, g.Resource(typeURI))
}

// AddResource adds a resource-valued triple. No-op on nil subject or
// object so mappers can pass through skipped references unchecked.
func (g *Graph) AddResource(s *Node, pred string, o *Node) {
	if s == nil || o == nil || pred == "" {
		return
	}
	g.triples = append(g.triples, Triple{Subject: s, Predicate: pred, Object: o})
}

// AddLiteral adds a literal-valued triple, dropping blank values.
func (g *Graph) AddLiteral(s *Node, pred string, l Literal) {
	if s == nil || pred == "" || l.IsZero() {
		return
	}
	g.triples = append(g.triples, Triple{Subject: s, Predicate: pred, Object: l})
}

// AddString is shorthand for an xsd:string literal triple.
func (g *Graph) AddString(s *Node, pred, value string) {
	g.AddLiteral(s, pred, String(value))
}

// AddStrings emits one triple per non-blank value.
func (g *Graph) AddStrings(s *Node, pred string, values []string) {
	for _, v := range values {
		g.AddString(s, pred, v)
	}
}

// AddAnyURI is shorthand for an xsd:anyURI literal triple.
func (g *Graph) AddAnyURI(s *Node, pred, value string) {
	g.AddLiteral(s, pred, AnyURI(value))
}
