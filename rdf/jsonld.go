package rdf

import (
	"encoding/json"

	"github.com/earthmeta/lodserver/vocabulary"
)

// toJSONLD renders the graph as a single JSON-LD document with a
// @context block holding the prefix table and a flat @graph array.
func (g *Graph) toJSONLD() (string, error) {
	context := make(map[string]any, len(g.prefixes))
	for prefix, ns := range g.prefixes {
		context[prefix] = ns
	}

	order, bySubject := g.groupBySubject()
	graph := make([]map[string]any, 0, len(order))
	for _, subj := range order {
		node := map[string]any{"@id": subj}
		for _, t := range bySubject[subj] {
			key := t.Predicate
			var value any
			switch o := t.Object.(type) {
			case *Node:
				if t.Predicate == vocabulary.RDFType {
					key = "@type"
					value = o.URI()
				} else {
					value = map[string]any{"@id": o.URI()}
				}
			case Literal:
				value = jsonldLiteral(o)
			}
			appendJSONLDValue(node, key, value)
		}
		graph = append(graph, node)
	}

	doc := map[string]any{
		"@context": context,
		"@graph":   graph,
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func jsonldLiteral(l Literal) any {
	if l.Lang != "" {
		return map[string]any{"@value": l.Value, "@language": l.Lang}
	}
	if l.Datatype == "" || l.Datatype == vocabulary.XSDString {
		return l.Value
	}
	return map[string]any{"@value": l.Value, "@type": l.Datatype}
}

// appendJSONLDValue collapses repeated predicates into arrays.
func appendJSONLDValue(node map[string]any, key string, value any) {
	existing, ok := node[key]
	if !ok {
		node[key] = value
		return
	}
	if arr, isArr := existing.([]any); isArr {
		node[key] = append(arr, value)
		return
	}
	node[key] = []any{existing, value}
}
