package harvest

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earthmeta/lodserver/triplestore"
	"github.com/earthmeta/lodserver/vocabulary"
)

// fakeRecord is one resource in the fake store's dataset.
type fakeRecord struct {
	uri     string
	typeURI string
	ts      string
	themes  []string
	props   map[string][]string
}

// fakeStore answers the generated query shapes from an in-memory
// record list, applying the same filters the real store would.
type fakeStore struct {
	records []fakeRecord
}

var (
	offsetRe     = regexp.MustCompile(`OFFSET (\d+)`)
	limitRe      = regexp.MustCompile(`LIMIT (\d+)`)
	typeFilterRe = regexp.MustCompile(`FILTER\(\?t = <([^>]+)>\)\n`)
	themeRe      = regexp.MustCompile(`\?s dcat:theme <([^>]+)> \.`)
	valuesRe     = regexp.MustCompile(`VALUES \?s \{ <([^>]+)> \}`)
	propsRe      = regexp.MustCompile(`<([^>]+)> \?p \?o \.`)
	fromRe       = regexp.MustCompile(`\?d >= "([^"]+)"`)
	untilRe      = regexp.MustCompile(`\?d <= "([^"]+)"`)
)

func (f *fakeStore) matching(query string) []fakeRecord {
	out := make([]fakeRecord, 0)
	var typeURI string
	if m := typeFilterRe.FindStringSubmatch(query); m != nil && !strings.Contains(m[0], "||") {
		typeURI = m[1]
	}
	var theme string
	if m := themeRe.FindStringSubmatch(query); m != nil {
		theme = m[1]
	}
	var from, until string
	if m := fromRe.FindStringSubmatch(query); m != nil {
		from = m[1]
	}
	if m := untilRe.FindStringSubmatch(query); m != nil {
		until = m[1]
	}

	for _, r := range f.records {
		if typeURI != "" && r.typeURI != typeURI {
			continue
		}
		if theme != "" && !contains(r.themes, theme) {
			continue
		}
		// records without a datestamp always pass date bounds
		if r.ts != "" {
			if from != "" && r.ts < from {
				continue
			}
			if until != "" && r.ts > until {
				continue
			}
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].uri < out[j].uri })
	return out
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func recordBinding(r fakeRecord) triplestore.Binding {
	b := triplestore.Binding{
		"s":    {Type: "uri", Value: r.uri},
		"type": {Type: "uri", Value: r.typeURI},
	}
	if r.ts != "" {
		b["ts"] = triplestore.Value{Type: "literal", Value: r.ts}
	}
	if len(r.themes) > 0 {
		b["themes"] = triplestore.Value{Type: "literal", Value: strings.Join(r.themes, " ")}
	}
	return b
}

func (f *fakeStore) Select(_ context.Context, query string) (*triplestore.SelectResult, error) {
	switch {
	case strings.Contains(query, "COUNT(DISTINCT ?s)") && !strings.Contains(query, "GROUP BY ?type"):
		n := len(f.matching(query))
		return &triplestore.SelectResult{Bindings: []triplestore.Binding{
			{"n": {Type: "literal", Value: strconv.Itoa(n)}},
		}}, nil

	case strings.Contains(query, "GROUP BY ?type"):
		counts := make(map[string]int)
		for _, r := range f.records {
			counts[r.typeURI]++
		}
		types := make([]string, 0, len(counts))
		for t := range counts {
			types = append(types, t)
		}
		sort.Strings(types)
		res := &triplestore.SelectResult{}
		for _, t := range types {
			res.Bindings = append(res.Bindings, triplestore.Binding{
				"type": {Type: "uri", Value: t},
				"n":    {Type: "literal", Value: strconv.Itoa(counts[t])},
			})
		}
		return res, nil

	case strings.Contains(query, "skos:Concept"):
		seen := make(map[string]struct{})
		res := &triplestore.SelectResult{}
		for _, r := range f.records {
			for _, theme := range r.themes {
				if _, ok := seen[theme]; ok {
					continue
				}
				seen[theme] = struct{}{}
				res.Bindings = append(res.Bindings, triplestore.Binding{
					"s":     {Type: "uri", Value: theme},
					"label": {Type: "literal", Value: "Category " + theme},
				})
			}
		}
		return res, nil

	case valuesRe.MatchString(query):
		uri := valuesRe.FindStringSubmatch(query)[1]
		for _, r := range f.records {
			if r.uri == uri {
				return &triplestore.SelectResult{Bindings: []triplestore.Binding{recordBinding(r)}}, nil
			}
		}
		return &triplestore.SelectResult{}, nil

	case propsRe.MatchString(query):
		uri := propsRe.FindStringSubmatch(query)[1]
		res := &triplestore.SelectResult{}
		for _, r := range f.records {
			if r.uri != uri {
				continue
			}
			for p, vals := range r.props {
				for _, v := range vals {
					res.Bindings = append(res.Bindings, triplestore.Binding{
						"p": {Type: "uri", Value: p},
						"o": {Type: "literal", Value: v},
					})
				}
			}
		}
		return res, nil

	default:
		matched := f.matching(query)
		offset, _ := strconv.Atoi(offsetRe.FindStringSubmatch(query)[1])
		limit, _ := strconv.Atoi(limitRe.FindStringSubmatch(query)[1])
		if offset > len(matched) {
			offset = len(matched)
		}
		end := offset + limit
		if end > len(matched) {
			end = len(matched)
		}
		res := &triplestore.SelectResult{}
		for _, r := range matched[offset:end] {
			res.Bindings = append(res.Bindings, recordBinding(r))
		}
		return res, nil
	}
}

func (f *fakeStore) Construct(_ context.Context, query, _ string) ([]byte, error) {
	uri := valuesRe.FindStringSubmatch(query)[1]
	doc := fmt.Sprintf(`<?xml version="1.0"?>
<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about="%s"/>
</rdf:RDF>`, uri)
	return []byte(doc), nil
}

func (f *fakeStore) Replace(context.Context, string, string, []byte) error { return nil }
func (f *fakeStore) Ping(context.Context) error                            { return nil }

func testEngine(t *testing.T, store triplestore.Store, pageSize int) *Engine {
	t.Helper()
	return NewEngine(store, vocabulary.V1, Config{
		RepositoryName:    "Earth Metadata Catalog",
		BaseURL:           "https://lod.example.org/oai",
		AdminEmail:        "admin@example.org",
		RepositoryID:      "lod.example.org",
		EarliestDatestamp: "2015-01-01T00:00:00Z",
		PageSize:          pageSize,
	}, nil)
}

func datasets(n int) []fakeRecord {
	recs := make([]fakeRecord, 0, n)
	for i := 0; i < n; i++ {
		recs = append(recs, fakeRecord{
			uri:     fmt.Sprintf("https://example.org/ds/%02d", i),
			typeURI: vocabulary.DCATDatasetClass,
			ts:      "2024-03-01T00:00:00Z",
		})
	}
	return recs
}

func TestIdentify(t *testing.T) {
	e := testEngine(t, &fakeStore{}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "Identify"})
	require.NoError(t, err)

	doc := string(body)
	assert.Contains(t, doc, "<repositoryName>Earth Metadata Catalog</repositoryName>")
	assert.Contains(t, doc, "<protocolVersion>2.0</protocolVersion>")
	assert.Contains(t, doc, "<granularity>YYYY-MM-DDThh:mm:ssZ</granularity>")
	assert.Contains(t, doc, "<deletedRecord>no</deletedRecord>")
	assert.Contains(t, doc, "<repositoryIdentifier>lod.example.org</repositoryIdentifier>")
}

func TestIdentifyRejectsArguments(t *testing.T) {
	e := testEngine(t, &fakeStore{}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "Identify", Set: "type:Dataset"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="badArgument">`)
}

func TestBadVerb(t *testing.T) {
	e := testEngine(t, &fakeStore{}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "Destroy"})
	require.NoError(t, err)

	doc := string(body)
	assert.Contains(t, doc, `<error code="badVerb">`)
	// badVerb suppresses argument echoing
	assert.NotContains(t, doc, `verb=`)
}

func TestListMetadataFormats(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "ListMetadataFormats"})
	require.NoError(t, err)

	doc := string(body)
	assert.Contains(t, doc, "<metadataPrefix>oai_dc</metadataPrefix>")
	assert.Contains(t, doc, "<metadataPrefix>dcat</metadataPrefix>")
	assert.Contains(t, doc, "<metadataPrefix>epos_dcat_ap</metadataPrefix>")
}

func TestListMetadataFormatsUnknownIdentifier(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:       "ListMetadataFormats",
		Identifier: "https://example.org/nope",
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="idDoesNotExist">`)
}

func TestListRecordsRequiresPrefix(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "ListRecords"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="badArgument">`)
}

func TestListRecordsUnknownPrefix(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "ListRecords", MetadataPrefix: "marc21"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="cannotDisseminateFormat">`)
}

func TestListRecordsNoMatch(t *testing.T) {
	e := testEngine(t, &fakeStore{}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "ListRecords", MetadataPrefix: "oai_dc"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="noRecordsMatch">`)
}

func TestListRecordsBadToken(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "ListRecords", ResumptionToken: "%%%garbage"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="badResumptionToken">`)
}

func TestListRecordsTokenWithMalformedSet(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:            "ListRecords",
		ResumptionToken: Token{MetadataPrefix: "oai_dc", Set: "category:not-base64!"}.Encode(),
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="badResumptionToken">`)
	assert.NotContains(t, string(body), `<error code="badArgument">`)
}

func TestListRecordsTokenIsExclusive(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:            "ListRecords",
		MetadataPrefix:  "oai_dc",
		ResumptionToken: Token{MetadataPrefix: "oai_dc"}.Encode(),
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="badArgument">`)
}

func TestListIdentifiersTypeSet(t *testing.T) {
	store := &fakeStore{records: append(datasets(2), fakeRecord{
		uri:     "https://example.org/org/1",
		typeURI: vocabulary.SchemaOrganizationClass,
		ts:      "2024-03-01T00:00:00Z",
	})}
	e := testEngine(t, store, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:           "ListIdentifiers",
		MetadataPrefix: "oai_dc",
		Set:            "type:Dataset",
	})
	require.NoError(t, err)

	doc := string(body)
	assert.Equal(t, 2, strings.Count(doc, "<identifier>"))
	assert.NotContains(t, doc, "https://example.org/org/1")
	assert.Contains(t, doc, "<setSpec>type:Dataset</setSpec>")
}

func TestListIdentifiersUnknownTypeSetNoMatch(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(3)}, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:           "ListIdentifiers",
		MetadataPrefix: "oai_dc",
		Set:            "type:Nonsense",
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="noRecordsMatch">`)
}

func TestListIdentifiersDateFilter(t *testing.T) {
	store := &fakeStore{records: []fakeRecord{
		{uri: "https://example.org/ds/old", typeURI: vocabulary.DCATDatasetClass, ts: "2020-01-01T00:00:00Z"},
		{uri: "https://example.org/ds/new", typeURI: vocabulary.DCATDatasetClass, ts: "2024-06-01T00:00:00Z"},
		{uri: "https://example.org/ds/undated", typeURI: vocabulary.DCATDatasetClass},
	}}
	e := testEngine(t, store, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:           "ListIdentifiers",
		MetadataPrefix: "oai_dc",
		From:           "2024-01-01",
	})
	require.NoError(t, err)

	doc := string(body)
	assert.NotContains(t, doc, "ds/old")
	assert.Contains(t, doc, "ds/new")
	// records without any date predicate are always in range
	assert.Contains(t, doc, "ds/undated")
}

func TestListIdentifiersMalformedDate(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:           "ListIdentifiers",
		MetadataPrefix: "oai_dc",
		From:           "last tuesday",
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="badArgument">`)
}

var tokenValueRe = regexp.MustCompile(`<resumptionToken[^>]*>([^<]*)</resumptionToken>`)
var identifierRe = regexp.MustCompile(`<identifier>([^<]+)</identifier>`)

func TestPaginationCompleteness(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(7)}, 3)

	seen := make(map[string]int)
	req := Request{Verb: "ListIdentifiers", MetadataPrefix: "oai_dc"}
	pages := 0
	for {
		pages++
		require.Less(t, pages, 10, "pagination did not terminate")

		body, err := e.Handle(context.Background(), req)
		require.NoError(t, err)
		doc := string(body)
		assert.NotContains(t, doc, "<error")

		for _, m := range identifierRe.FindAllStringSubmatch(doc, -1) {
			seen[m[1]]++
		}

		tok := tokenValueRe.FindStringSubmatch(doc)
		if tok == nil || tok[1] == "" {
			// the final page of a token-driven harvest carries an
			// explicit empty token
			if pages > 1 {
				require.NotNil(t, tok)
			}
			assert.Contains(t, doc, `completeListSize="7"`)
			break
		}
		req = Request{Verb: "ListIdentifiers", ResumptionToken: tok[1]}
	}

	assert.Equal(t, 3, pages)
	assert.Len(t, seen, 7)
	for id, n := range seen {
		assert.Equal(t, 1, n, "identifier %s seen more than once", id)
	}
}

func TestGetRecordUnknownIdentifier(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:           "GetRecord",
		Identifier:     "https://example.org/missing",
		MetadataPrefix: "oai_dc",
	})
	require.NoError(t, err)

	doc := string(body)
	assert.Contains(t, doc, `<error code="idDoesNotExist">`)
	assert.NotContains(t, doc, "<GetRecord>")
}

func TestGetRecordMissingArguments(t *testing.T) {
	e := testEngine(t, &fakeStore{records: datasets(1)}, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "GetRecord", MetadataPrefix: "oai_dc"})
	require.NoError(t, err)
	assert.Contains(t, string(body), `<error code="badArgument">`)
}

func TestGetRecordNativeFormat(t *testing.T) {
	store := &fakeStore{records: []fakeRecord{{
		uri:     "https://example.org/ds/1",
		typeURI: vocabulary.DCATDatasetClass,
		ts:      "2024-03-01T00:00:00Z",
		themes:  []string{"https://example.org/cat/seismology"},
	}}}
	e := testEngine(t, store, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:           "GetRecord",
		Identifier:     "https://example.org/ds/1",
		MetadataPrefix: "epos_dcat_ap",
	})
	require.NoError(t, err)

	doc := string(body)
	assert.Contains(t, doc, "<GetRecord>")
	assert.Contains(t, doc, "<datestamp>2024-03-01T00:00:00Z</datestamp>")
	// the store's RDF/XML is embedded verbatim, minus its declaration
	assert.Contains(t, doc, `<rdf:Description rdf:about="https://example.org/ds/1"/>`)
	assert.Equal(t, 1, strings.Count(doc, "<?xml"))
	// set memberships cover both the type and the category
	assert.Contains(t, doc, "<setSpec>type:Dataset</setSpec>")
	assert.Contains(t, doc, "<setSpec>"+CategorySetSpec("https://example.org/cat/seismology")+"</setSpec>")
}

func TestGetRecordOAIDC(t *testing.T) {
	store := &fakeStore{records: []fakeRecord{{
		uri:     "https://example.org/ds/1",
		typeURI: vocabulary.DCATDatasetClass,
		ts:      "2024-03-01T00:00:00Z",
		props: map[string][]string{
			vocabulary.DCTTitle:       {"Seismic waveforms"},
			vocabulary.DCTDescription: {"Broadband station data"},
			vocabulary.DCATKeyword:    {"seismology"},
		},
	}}}
	e := testEngine(t, store, 100)
	body, err := e.Handle(context.Background(), Request{
		Verb:           "GetRecord",
		Identifier:     "https://example.org/ds/1",
		MetadataPrefix: "oai_dc",
	})
	require.NoError(t, err)

	doc := string(body)
	assert.Contains(t, doc, "<dc:title>Seismic waveforms</dc:title>")
	assert.Contains(t, doc, "<dc:description>Broadband station data</dc:description>")
	assert.Contains(t, doc, "<dc:identifier>https://example.org/ds/1</dc:identifier>")
	assert.Contains(t, doc, "<dc:subject>seismology</dc:subject>")
	assert.Contains(t, doc, "<dc:type>Dataset</dc:type>")
}

func TestListSets(t *testing.T) {
	store := &fakeStore{records: []fakeRecord{
		{uri: "https://example.org/ds/1", typeURI: vocabulary.DCATDatasetClass, themes: []string{"https://example.org/cat/seismology"}},
		{uri: "https://example.org/ds/2", typeURI: vocabulary.DCATDatasetClass},
		{uri: "https://example.org/org/1", typeURI: vocabulary.SchemaOrganizationClass},
	}}
	e := testEngine(t, store, 100)
	body, err := e.Handle(context.Background(), Request{Verb: "ListSets"})
	require.NoError(t, err)

	doc := string(body)
	assert.Contains(t, doc, "<setSpec>type:Dataset</setSpec>")
	assert.Contains(t, doc, "<setName>Dataset (2 records)</setName>")
	assert.Contains(t, doc, "<setSpec>type:Organization</setSpec>")
	assert.Contains(t, doc, "<setSpec>"+CategorySetSpec("https://example.org/cat/seismology")+"</setSpec>")
}

func TestActiveGraphScoping(t *testing.T) {
	e := testEngine(t, &fakeStore{}, 100)
	assert.Equal(t, "q SELECT\nWHERE { x }", e.scoped("q SELECT\nWHERE { x }"))

	e.SetActiveGraph("https://example.org/graph/build-1")
	scoped := e.scoped("SELECT ?s\nWHERE {\n  ?s ?p ?o .\n}\n")
	assert.Contains(t, scoped, "FROM <https://example.org/graph/build-1>\nWHERE {")
}
