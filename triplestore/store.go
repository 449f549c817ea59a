// Package triplestore talks SPARQL 1.1 Protocol and Graph Store
// Protocol to the backing triple store. The rest of the system depends
// only on the Store interface; the HTTP client here is the production
// implementation and tests substitute fakes.
package triplestore

import "context"

// Value is one RDF term in a SPARQL JSON results binding.
type Value struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

// Binding maps variable names to bound terms. Unbound variables are
// simply absent.
type Binding map[string]Value

// Get returns the bound value for a variable, or "" when unbound.
func (b Binding) Get(name string) string {
	return b[name].Value
}

// Bound reports whether the variable carries a value.
func (b Binding) Bound(name string) bool {
	_, ok := b[name]
	return ok
}

// SelectResult holds a decoded SPARQL JSON result set.
type SelectResult struct {
	Vars     []string
	Bindings []Binding
}

// Accept header values for Construct.
const (
	FormatRDFXML = "application/rdf+xml"
	FormatTurtle = "text/turtle"
)

// Store is the query and upload surface the engine and the refresh
// manager use.
type Store interface {
	// Select runs a SELECT query and returns the decoded result set.
	Select(ctx context.Context, query string) (*SelectResult, error)
	// Construct runs a CONSTRUCT query and returns the raw response
	// body serialized in the requested format.
	Construct(ctx context.Context, query, format string) ([]byte, error)
	// Replace atomically overwrites the named graph with the given
	// serialized content.
	Replace(ctx context.Context, graphURI, contentType string, data []byte) error
	// Ping checks that the store answers queries at all.
	Ping(ctx context.Context) error
}
