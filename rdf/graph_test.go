package rdf_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthmeta/lodserver/rdf"
	"github.com/earthmeta/lodserver/vocabulary"
)

func TestResourceCacheIdentity(t *testing.T) {
	g := rdf.NewGraph(vocabulary.V1)

	n := g.Resource("https://example.org/ds/1")
	g.PutCached("https://example.org/ds/1", n)

	got, ok := g.Cached("https://example.org/ds/1")
	require.True(t, ok)
	assert.Same(t, n, got)

	_, ok = g.Cached("https://example.org/ds/2")
	assert.False(t, ok)
}

func TestBlankNodesAreDistinct(t *testing.T) {
	g := rdf.NewGraph(vocabulary.V1)
	a := g.Blank()
	b := g.Blank()
	assert.True(t, a.IsBlank())
	assert.NotEqual(t, a.URI(), b.URI())
	assert.True(t, strings.HasPrefix(a.URI(), "_:"))
}

func TestHelpersNoOpOnBlankInput(t *testing.T) {
	g := rdf.NewGraph(vocabulary.V1)
	s := g.Resource("https://example.org/ds/1")

	g.AddString(s, vocabulary.DCTTitle, "")
	g.AddString(s, vocabulary.DCTTitle, "   ")
	g.AddString(nil, vocabulary.DCTTitle, "orphan")
	g.AddResource(s, vocabulary.DCATContactPoint, nil)
	g.AddResource(s, vocabulary.DCATContactPoint, g.Resource(""))
	assert.Equal(t, 0, g.Len())

	g.AddString(s, vocabulary.DCTTitle, "T")
	assert.Equal(t, 1, g.Len())
}

func TestSerializeEmptyGraph(t *testing.T) {
	g := rdf.NewGraph(vocabulary.V3)
	for _, f := range []rdf.Format{rdf.FormatTurtle, rdf.FormatJSONLD} {
		out, err := g.Serialize(f)
		require.NoError(t, err)
		assert.Empty(t, out)
	}
}

func TestTurtleOutput(t *testing.T) {
	g := rdf.NewGraph(vocabulary.V1)
	s := g.Resource("https://example.org/ds/1")
	g.AddType(s, vocabulary.DCATDatasetClass)
	g.AddString(s, vocabulary.DCTTitle, "T")
	g.AddString(s, vocabulary.DCTDescription, "D")
	g.AddLiteral(s, vocabulary.DCTModified, rdf.DateTime(time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)))

	out, err := g.Serialize(rdf.FormatTurtle)
	require.NoError(t, err)

	assert.Contains(t, out, "@prefix dct: <http://purl.org/dc/terms/> .")
	assert.NotContains(t, out, "PREFIX ")
	assert.Contains(t, out, "<https://example.org/ds/1>")
	assert.Contains(t, out, `dct:title "T"^^xsd:string`)
	assert.Contains(t, out, `dct:description "D"^^xsd:string`)
	assert.Contains(t, out, `"2025-04-01T12:00:00Z"^^xsd:dateTime`)
	assert.Contains(t, out, "a dcat:Dataset")
}

func TestTurtlePrefixFixupOnlyLeadingBlock(t *testing.T) {
	g := rdf.NewGraph(vocabulary.V1)
	s := g.Resource("https://example.org/ds/1")
	// A literal that itself starts with the directive keyword must not
	// be rewritten.
	g.AddString(s, vocabulary.DCTDescription, "PREFIX abuse: <case>")

	out, err := g.Serialize(rdf.FormatTurtle)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	sawBody := false
	for _, line := range lines {
		if strings.HasPrefix(line, "@prefix ") {
			assert.False(t, sawBody, "@prefix after body: %s", line)
			assert.True(t, strings.HasSuffix(line, " ."), "missing terminator: %s", line)
			continue
		}
		if strings.TrimSpace(line) != "" {
			sawBody = true
		}
	}
	assert.Contains(t, out, `"PREFIX abuse: <case>"`)
}

func TestTurtleBlankNodeSubjects(t *testing.T) {
	g := rdf.NewGraph(vocabulary.V1)
	s := g.Resource("https://example.org/org/1")
	addr := g.Blank()
	g.AddResource(s, vocabulary.VCARDHasAddress, addr)
	g.AddString(addr, vocabulary.VCARDLocality, "Reykjavik")

	out, err := g.Serialize(rdf.FormatTurtle)
	require.NoError(t, err)
	assert.Contains(t, out, "vcard:hasAddress _:b1")
	assert.Contains(t, out, "_:b1\n")
}

func TestLiteralConstructors(t *testing.T) {
	d := rdf.Date(time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-29", d.Value)
	assert.Equal(t, vocabulary.XSDDate, d.Datatype)

	dt := rdf.DateTime(time.Date(2024, 2, 29, 10, 0, 0, 0, time.FixedZone("X", 3600)))
	assert.Equal(t, "2024-02-29T09:00:00Z", dt.Value)

	assert.Equal(t, "true", rdf.Bool(true).Value)
	assert.Equal(t, vocabulary.XSDAnyURI, rdf.AnyURI("https://example.org").Datatype)
}

func TestJSONLDOutput(t *testing.T) {
	g := rdf.NewGraph(vocabulary.V3)
	s := g.Resource("https://example.org/ds/1")
	g.AddType(s, vocabulary.DCATDatasetClass)
	g.AddString(s, vocabulary.DCTTitle, "T")
	g.AddString(s, vocabulary.DCATKeyword, "seismic")
	g.AddString(s, vocabulary.DCATKeyword, "waveform")

	out, err := g.Serialize(rdf.FormatJSONLD)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	ctx, ok := doc["@context"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, vocabulary.DCT, ctx["dct"])

	graph, ok := doc["@graph"].([]any)
	require.True(t, ok)
	require.Len(t, graph, 1)
	node := graph[0].(map[string]any)
	assert.Equal(t, "https://example.org/ds/1", node["@id"])
	assert.Equal(t, vocabulary.DCATDatasetClass, node["@type"])
	keywords, ok := node[vocabulary.DCATKeyword].([]any)
	require.True(t, ok)
	assert.Len(t, keywords, 2)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    rdf.Format
		wantErr bool
	}{
		{in: "", want: rdf.FormatTurtle},
		{in: "turtle", want: rdf.FormatTurtle},
		{in: "TTL", want: rdf.FormatTurtle},
		{in: "json-ld", want: rdf.FormatJSONLD},
		{in: "jsonld", want: rdf.FormatJSONLD},
		{in: "rdfxml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := rdf.ParseFormat(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
