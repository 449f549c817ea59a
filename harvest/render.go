package harvest

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/earthmeta/lodserver/sparql"
	"github.com/earthmeta/lodserver/triplestore"
	"github.com/earthmeta/lodserver/vocabulary"
)

// properties groups a record's direct predicate/object values.
type properties map[string][]string

// loadProperties fetches a record's direct triples for the oai_dc and
// dcat renderers.
func (e *Engine) loadProperties(ctx context.Context, uri string) (properties, error) {
	res, err := e.store.Select(ctx, e.scoped(sparql.RecordProperties(uri)))
	if err != nil {
		return nil, fmt.Errorf("load record properties: %w", err)
	}
	props := make(properties)
	for _, b := range res.Bindings {
		p := b.Get("p")
		props[p] = append(props[p], b.Get("o"))
	}
	return props, nil
}

// firstNonEmpty returns the deduplicated values of the first predicate
// in the fallback list that carries any.
func (p properties) firstNonEmpty(predicates ...string) []string {
	for _, pred := range predicates {
		vals := dedupe(p[pred])
		if len(vals) > 0 {
			return vals
		}
	}
	return nil
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// dcElement is one Dublin Core element inside the oai_dc container.
type dcElement struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type oaiDCDocument struct {
	XMLName        xml.Name `xml:"oai_dc:dc"`
	OAIDCNamespace string   `xml:"xmlns:oai_dc,attr"`
	DCNamespace    string   `xml:"xmlns:dc,attr"`
	XSI            string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	Elements       []dcElement
}

// renderOAIDC maps the record's properties onto the fixed Dublin Core
// element set. Each element draws from an ordered predicate fallback
// list; the first predicate with values wins.
func renderOAIDC(rec Record, props properties) ([]byte, error) {
	doc := oaiDCDocument{
		OAIDCNamespace: oaiDCNamespace,
		DCNamespace:    "http://purl.org/dc/elements/1.1/",
		XSI:            "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation: oaiDCNamespace + " " + oaiDCSchema,
	}

	add := func(name string, values ...string) {
		for _, v := range values {
			doc.Elements = append(doc.Elements, dcElement{
				XMLName: xml.Name{Local: "dc:" + name},
				Value:   v,
			})
		}
	}

	add("title", props.firstNonEmpty(vocabulary.DCTTitle, vocabulary.SchemaName, vocabulary.RDFSLabel)...)
	add("description", props.firstNonEmpty(vocabulary.DCTDescription, vocabulary.SchemaDescription)...)
	add("identifier", rec.Identifier)
	add("date", props.firstNonEmpty(vocabulary.DatePredicates()...)...)
	add("creator", props.firstNonEmpty(vocabulary.DCTCreator, vocabulary.SchemaLegalName)...)
	add("publisher", props.firstNonEmpty(vocabulary.DCTPublisher)...)
	add("subject", append(dedupe(props[vocabulary.DCATKeyword]), dedupe(props[vocabulary.DCATTheme])...)...)
	if local := localName(rec.TypeURI); local != "" {
		add("type", local)
	}

	return xml.MarshalIndent(doc, "      ", "  ")
}

// localName strips the namespace from a type IRI.
func localName(uri string) string {
	if i := strings.LastIndexAny(uri, "#/"); i >= 0 && i+1 < len(uri) {
		return uri[i+1:]
	}
	return ""
}

// dcatLiteralElements is the curated literal-valued property subset
// emitted by the dcat renderer.
var dcatLiteralElements = []struct {
	name      string
	predicate string
}{
	{"dct:title", vocabulary.DCTTitle},
	{"dct:description", vocabulary.DCTDescription},
	{"dct:issued", vocabulary.DCTIssued},
	{"dct:modified", vocabulary.DCTModified},
	{"dcat:keyword", vocabulary.DCATKeyword},
	{"dct:identifier", vocabulary.DCTIdentifier},
}

// dcatResourceElements is the curated resource-valued subset, emitted
// as rdf:resource references.
var dcatResourceElements = []struct {
	name      string
	predicate string
}{
	{"dcat:theme", vocabulary.DCATTheme},
	{"dcat:distribution", vocabulary.DCATDistribution},
	{"dcat:contactPoint", vocabulary.DCATContactPoint},
	{"dct:publisher", vocabulary.DCTPublisher},
	{"dcat:accessURL", vocabulary.DCATAccessURL},
	{"dcat:endpointURL", vocabulary.DCATEndpointURL},
}

type rdfLiteralElement struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type rdfResourceElement struct {
	XMLName  xml.Name
	Resource string `xml:"rdf:resource,attr"`
}

type rdfDescription struct {
	XMLName  xml.Name `xml:"rdf:Description"`
	About    string   `xml:"rdf:about,attr"`
	Type     *rdfResourceElement
	Elements []any
}

type dcatDocument struct {
	XMLName       xml.Name `xml:"rdf:RDF"`
	RDFNamespace  string   `xml:"xmlns:rdf,attr"`
	DCTNamespace  string   `xml:"xmlns:dct,attr"`
	DCATNamespace string   `xml:"xmlns:dcat,attr"`
	Description   rdfDescription
}

// renderDCAT emits the curated DCAT/DCT property subset as RDF/XML.
func renderDCAT(rec Record, props properties) ([]byte, error) {
	desc := rdfDescription{About: rec.Identifier}
	if rec.TypeURI != "" {
		desc.Type = &rdfResourceElement{
			XMLName:  xml.Name{Local: "rdf:type"},
			Resource: rec.TypeURI,
		}
	}
	for _, el := range dcatLiteralElements {
		for _, v := range dedupe(props[el.predicate]) {
			desc.Elements = append(desc.Elements, rdfLiteralElement{
				XMLName: xml.Name{Local: el.name},
				Value:   v,
			})
		}
	}
	for _, el := range dcatResourceElements {
		for _, v := range dedupe(props[el.predicate]) {
			desc.Elements = append(desc.Elements, rdfResourceElement{
				XMLName:  xml.Name{Local: el.name},
				Resource: v,
			})
		}
	}

	doc := dcatDocument{
		RDFNamespace:  vocabulary.RDF,
		DCTNamespace:  vocabulary.DCT,
		DCATNamespace: vocabulary.DCAT,
		Description:   desc,
	}
	return xml.MarshalIndent(doc, "      ", "  ")
}

// renderMetadata produces the metadata payload for one record in the
// requested format. The native format embeds the store's own RDF/XML
// serialization of the record's bounded subgraph verbatim.
func (e *Engine) renderMetadata(ctx context.Context, prefix string, rec Record) (*recordMetadata, error) {
	switch prefix {
	case eposDcatPrefix:
		body, err := e.store.Construct(ctx, e.scoped(sparql.ConstructRecord(rec.Identifier)), triplestore.FormatRDFXML)
		if err != nil {
			return nil, fmt.Errorf("construct record graph: %w", err)
		}
		return &recordMetadata{Raw: stripXMLDeclaration(body)}, nil

	case oaiDCPrefix, dcatPrefix:
		props, err := e.loadProperties(ctx, rec.Identifier)
		if err != nil {
			return nil, err
		}
		var body []byte
		if prefix == oaiDCPrefix {
			body, err = renderOAIDC(rec, props)
		} else {
			body, err = renderDCAT(rec, props)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s metadata: %w", prefix, err)
		}
		return &recordMetadata{Raw: body}, nil

	default:
		return nil, fmt.Errorf("unsupported metadata prefix %q", prefix)
	}
}

// stripXMLDeclaration drops a leading <?xml ...?> so the store's
// document can be embedded inside the envelope.
func stripXMLDeclaration(body []byte) []byte {
	s := strings.TrimLeft(string(body), " \t\r\n")
	if strings.HasPrefix(s, "<?xml") {
		if i := strings.Index(s, "?>"); i >= 0 {
			s = strings.TrimLeft(s[i+2:], " \t\r\n")
		}
	}
	return []byte(s)
}
