package rdf

import (
	"fmt"
	"sort"
	"strings"

	"github.com/earthmeta/lodserver/vocabulary"
)

// Format specifies the output serialization format.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output. This is the default.
	FormatTurtle Format = "turtle"

	// FormatJSONLD produces JSON-LD (.jsonld) output.
	FormatJSONLD Format = "json-ld"
)

// ParseFormat normalizes a user-supplied format string.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "turtle", "ttl":
		return FormatTurtle, nil
	case "json-ld", "jsonld":
		return FormatJSONLD, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Serialize renders the graph in the requested format. An empty graph
// serializes to the empty string in every format.
func (g *Graph) Serialize(format Format) (string, error) {
	if g.Len() == 0 {
		return "", nil
	}
	switch format {
	case FormatTurtle:
		return fixTurtlePrefixes(g.toTurtle()), nil
	case FormatJSONLD:
		return g.toJSONLD()
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// toTurtle writes SPARQL-style PREFIX headers followed by one block
// per subject. The header lines are rewritten to @prefix form by
// fixTurtlePrefixes before the document is returned.
func (g *Graph) toTurtle() string {
	var sb strings.Builder

	for _, prefix := range g.sortedPrefixes() {
		sb.WriteString(fmt.Sprintf("PREFIX %s: <%s>\n", prefix, g.prefixes[prefix]))
	}
	sb.WriteString("\n")

	subjects, bySubject := g.groupBySubject()
	for _, subj := range subjects {
		triples := bySubject[subj]
		sb.WriteString(g.turtleTerm(triples[0].Subject))
		sb.WriteString("\n")
		for i, t := range triples {
			sb.WriteString("    ")
			if t.Predicate == vocabulary.RDFType {
				sb.WriteString("a")
			} else {
				sb.WriteString(g.shorten(t.Predicate))
			}
			sb.WriteString(" ")
			sb.WriteString(g.turtleObject(t.Object))
			if i < len(triples)-1 {
				sb.WriteString(" ;\n")
			} else {
				sb.WriteString(" .\n")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// sortedPrefixes returns prefix names in stable order.
func (g *Graph) sortedPrefixes() []string {
	names := make([]string, 0, len(g.prefixes))
	for p := range g.prefixes {
		names = append(names, p)
	}
	sort.Strings(names)
	return names
}

// groupBySubject preserves first-appearance order of subjects.
func (g *Graph) groupBySubject() ([]string, map[string][]Triple) {
	order := make([]string, 0)
	bySubject := make(map[string][]Triple)
	for _, t := range g.triples {
		key := t.Subject.URI()
		if _, seen := bySubject[key]; !seen {
			order = append(order, key)
		}
		bySubject[key] = append(bySubject[key], t)
	}
	return order, bySubject
}

func (g *Graph) turtleTerm(n *Node) string {
	if n.IsBlank() {
		return n.URI()
	}
	return g.shorten(n.uri)
}

func (g *Graph) turtleObject(o any) string {
	switch v := o.(type) {
	case *Node:
		return g.turtleTerm(v)
	case Literal:
		if v.Lang != "" {
			return fmt.Sprintf("%q@%s", escapeString(v.Value), v.Lang)
		}
		return fmt.Sprintf("\"%s\"^^%s", escapeString(v.Value), g.shorten(v.Datatype))
	default:
		return fmt.Sprintf("%q", fmt.Sprint(v))
	}
}

// shorten compacts a full IRI to prefix:local form when a registered
// namespace matches and the remainder is a clean local name.
func (g *Graph) shorten(uri string) string {
	for _, prefix := range g.sortedPrefixes() {
		ns := g.prefixes[prefix]
		if strings.HasPrefix(uri, ns) {
			local := uri[len(ns):]
			if isLocalName(local) {
				return prefix + ":" + local
			}
		}
	}
	return "<" + uri + ">"
}

// isLocalName reports whether s is safe as the local part of a
// prefixed name without escaping.
func isLocalName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// escapeString escapes special characters for Turtle literals.
func escapeString(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}

// fixTurtlePrefixes rewrites the leading PREFIX directive lines to
// @prefix syntax. The rewrite applies only while still inside the
// consecutive block of prefix lines at the top of the document; a
// PREFIX-looking line appearing later (for example inside a literal)
// is left untouched.
func fixTurtlePrefixes(doc string) string {
	lines := strings.Split(doc, "\n")
	inHeader := true
	for i, line := range lines {
		if !inHeader {
			break
		}
		if strings.HasPrefix(line, "PREFIX ") {
			rest := strings.TrimPrefix(line, "PREFIX ")
			lines[i] = "@prefix " + rest + " ."
			continue
		}
		inHeader = false
	}
	return strings.Join(lines, "\n")
}
