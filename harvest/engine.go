package harvest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/earthmeta/lodserver/sparql"
	"github.com/earthmeta/lodserver/triplestore"
	"github.com/earthmeta/lodserver/vocabulary"
)

// Config is the static repository descriptor plus pagination tuning.
type Config struct {
	RepositoryName    string
	BaseURL           string
	AdminEmail        string
	RepositoryID      string
	EarliestDatestamp string
	PageSize          int
}

// Request carries one harvesting call's arguments. Empty string means
// the argument was absent. Extra lists argument names the transport
// received but the protocol does not define; their presence is a
// badArgument.
type Request struct {
	Verb            string
	Identifier      string
	MetadataPrefix  string
	Set             string
	From            string
	Until           string
	ResumptionToken string
	Extra           []string
}

// Engine answers OAI-PMH requests against the active dataset snapshot.
// It is stateless across calls; all pagination state lives in the
// resumption token. The active graph name is swapped atomically by the
// refresh manager, so concurrent requests always see a complete
// snapshot, though a paginated harvest spanning a swap may observe a
// different total count mid-sequence.
type Engine struct {
	store   triplestore.Store
	version vocabulary.Version
	cfg     Config
	logger  *slog.Logger
	graph   atomic.Value
}

// NewEngine builds an engine over the given store.
func NewEngine(store triplestore.Store, version vocabulary.Version, cfg Config, logger *slog.Logger) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.EarliestDatestamp == "" {
		cfg.EarliestDatestamp = "2015-01-01T00:00:00Z"
	}
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		store:   store,
		version: version,
		cfg:     cfg,
		logger:  logger,
	}
	e.graph.Store("")
	return e
}

// SetActiveGraph swaps the named graph all subsequent queries read
// from. An empty name scopes queries to the store's default dataset.
func (e *Engine) SetActiveGraph(uri string) {
	e.graph.Store(uri)
}

// ActiveGraph returns the currently active graph name.
func (e *Engine) ActiveGraph() string {
	return e.graph.Load().(string)
}

// scoped injects a FROM clause for the active graph into generated
// query text.
func (e *Engine) scoped(query string) string {
	g := e.ActiveGraph()
	if g == "" {
		return query
	}
	i := strings.Index(query, "WHERE {")
	if i < 0 {
		return query
	}
	return query[:i] + "FROM <" + g + ">\n" + query[i:]
}

// Handle answers one harvesting request with a complete OAI-PMH XML
// document. Protocol failures come back inside the document; a non-nil
// error means the backing store failed and the transport should answer
// with a server error.
func (e *Engine) Handle(ctx context.Context, req Request) ([]byte, error) {
	payload, err := e.dispatch(ctx, req)

	var perr *ProtocolError
	if err != nil {
		if !errors.As(err, &perr) {
			return nil, err
		}
		e.logger.Debug("protocol error",
			"verb", req.Verb,
			"code", perr.Code,
			"message", perr.Message)
	}

	echo := requestEcho{
		Verb:           req.Verb,
		Identifier:     req.Identifier,
		MetadataPrefix: req.MetadataPrefix,
		Set:            req.Set,
		From:           req.From,
		Until:          req.Until,
		Token:          req.ResumptionToken,
	}
	return renderEnvelope(e.cfg.BaseURL, echo, payload, perr, time.Now())
}

// verbArguments defines, per verb, which protocol arguments it
// accepts. Anything supplied outside this set is a badArgument.
var verbArguments = map[string][]string{
	"Identify":            {},
	"ListMetadataFormats": {"identifier"},
	"ListSets":            {"resumptionToken"},
	"ListIdentifiers":     {"metadataPrefix", "set", "from", "until", "resumptionToken"},
	"ListRecords":         {"metadataPrefix", "set", "from", "until", "resumptionToken"},
	"GetRecord":           {"identifier", "metadataPrefix"},
}

func (e *Engine) dispatch(ctx context.Context, req Request) (any, error) {
	allowed, ok := verbArguments[req.Verb]
	if !ok {
		if req.Verb == "" {
			return nil, protocolErrorf(CodeBadVerb, "missing verb")
		}
		return nil, protocolErrorf(CodeBadVerb, "unknown verb %q", req.Verb)
	}
	if err := checkArguments(req, allowed); err != nil {
		return nil, err
	}

	switch req.Verb {
	case "Identify":
		return e.identify(), nil
	case "ListMetadataFormats":
		return e.listMetadataFormats(ctx, req)
	case "ListSets":
		return e.listSets(ctx, req)
	case "ListIdentifiers":
		return e.listIdentifiers(ctx, req)
	case "ListRecords":
		return e.listRecords(ctx, req)
	case "GetRecord":
		return e.getRecord(ctx, req)
	}
	return nil, protocolErrorf(CodeBadVerb, "unknown verb %q", req.Verb)
}

// checkArguments rejects arguments the verb does not accept.
func checkArguments(req Request, allowed []string) error {
	supplied := map[string]string{
		"identifier":      req.Identifier,
		"metadataPrefix":  req.MetadataPrefix,
		"set":             req.Set,
		"from":            req.From,
		"until":           req.Until,
		"resumptionToken": req.ResumptionToken,
	}
	for _, name := range allowed {
		delete(supplied, name)
	}
	for name, value := range supplied {
		if value != "" {
			return badArgument("argument %q is not allowed for this verb", name)
		}
	}
	if len(req.Extra) > 0 {
		return badArgument("unknown argument %q", req.Extra[0])
	}
	return nil
}

func (e *Engine) identify() identifyResult {
	return identifyResult{
		RepositoryName:    e.cfg.RepositoryName,
		BaseURL:           e.cfg.BaseURL,
		ProtocolVersion:   "2.0",
		AdminEmail:        e.cfg.AdminEmail,
		EarliestDatestamp: e.cfg.EarliestDatestamp,
		DeletedRecord:     "no",
		Granularity:       "YYYY-MM-DDThh:mm:ssZ",
		Description: identifyDescription{
			OAIIdentifier: oaiIdentifier{
				Namespace:            "http://www.openarchives.org/OAI/2.0/oai-identifier",
				Scheme:               "oai",
				RepositoryIdentifier: e.cfg.RepositoryID,
				Delimiter:            ":",
				SampleIdentifier:     "oai:" + e.cfg.RepositoryID + ":https://example.org/dataset/1",
			},
		},
	}
}

func (e *Engine) listMetadataFormats(ctx context.Context, req Request) (any, error) {
	if req.Identifier != "" {
		if _, err := e.recordInfo(ctx, req.Identifier); err != nil {
			return nil, err
		}
	}
	return listMetadataFormatsResult{Formats: supportedFormats()}, nil
}

func (e *Engine) listSets(ctx context.Context, req Request) (any, error) {
	if req.ResumptionToken != "" {
		return nil, badResumptionToken("set listing is not paginated")
	}

	res, err := e.store.Select(ctx, e.scoped(sparql.ListTypes(e.version)))
	if err != nil {
		return nil, fmt.Errorf("list types: %w", err)
	}

	var sets []setInfo
	for _, b := range res.Bindings {
		local, ok := vocabulary.LocalNameByType(e.version, b.Get("type"))
		if !ok {
			continue
		}
		sets = append(sets, setInfo{
			Spec: TypeSetSpec(local),
			Name: fmt.Sprintf("%s (%s records)", local, b.Get("n")),
		})
	}

	cats, err := e.store.Select(ctx, e.scoped(sparql.ListCategories()))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	seen := make(map[string]struct{})
	for _, b := range cats.Bindings {
		uri := b.Get("s")
		if _, ok := seen[uri]; ok {
			continue
		}
		seen[uri] = struct{}{}
		name := b.Get("label")
		if name == "" {
			name = uri
		}
		sets = append(sets, setInfo{Spec: CategorySetSpec(uri), Name: name})
	}

	return listSetsResult{Sets: sets}, nil
}

// pageParams is the resolved pagination state for one List page.
type pageParams struct {
	token     Token
	fromToken bool
}

// resolvePage validates the List verb arguments into pagination state.
// A resumption token is exclusive: combining it with filter arguments
// is a badArgument.
func resolvePage(req Request) (pageParams, error) {
	if req.ResumptionToken != "" {
		if req.MetadataPrefix != "" || req.Set != "" || req.From != "" || req.Until != "" {
			return pageParams{}, badArgument("resumptionToken is an exclusive argument")
		}
		tok, err := DecodeToken(req.ResumptionToken)
		if err != nil {
			return pageParams{}, err
		}
		if !supportedFormat(tok.MetadataPrefix) {
			return pageParams{}, badResumptionToken("unknown metadata prefix %q", tok.MetadataPrefix)
		}
		return pageParams{token: tok, fromToken: true}, nil
	}

	if req.MetadataPrefix == "" {
		return pageParams{}, badArgument("metadataPrefix is required")
	}
	if !supportedFormat(req.MetadataPrefix) {
		return pageParams{}, protocolErrorf(CodeCannotDisseminateFormat, "metadata prefix %q is not supported", req.MetadataPrefix)
	}
	from, err := parseHarvestDate("from", req.From, false)
	if err != nil {
		return pageParams{}, err
	}
	until, err := parseHarvestDate("until", req.Until, true)
	if err != nil {
		return pageParams{}, err
	}
	return pageParams{token: Token{
		MetadataPrefix: req.MetadataPrefix,
		Set:            req.Set,
		From:           from,
		Until:          until,
	}}, nil
}

// page fetches one page of records under the token's filters, plus the
// resumption token to emit.
func (e *Engine) page(ctx context.Context, p pageParams) ([]Record, *resumptionToken, error) {
	filter, err := e.filterFor(p.token)
	if err != nil {
		// a malformed set spec inside a decoded token is the token's
		// fault, not a bad request argument
		var perr *ProtocolError
		if p.fromToken && errors.As(err, &perr) && perr.Code == CodeBadArgument {
			return nil, nil, badResumptionToken("%s", perr.Message)
		}
		return nil, nil, err
	}
	if filter == nil {
		return nil, nil, protocolErrorf(CodeNoRecordsMatch, "no records match the request")
	}

	count, err := e.count(ctx, *filter)
	if err != nil {
		return nil, nil, err
	}
	if count == 0 {
		return nil, nil, protocolErrorf(CodeNoRecordsMatch, "no records match the request")
	}
	if p.token.Offset >= count {
		return nil, nil, badResumptionToken("offset %d beyond result set of %d", p.token.Offset, count)
	}

	res, err := e.store.Select(ctx, e.scoped(sparql.ListRecords(e.version, *filter, p.token.Offset, e.cfg.PageSize)))
	if err != nil {
		return nil, nil, fmt.Errorf("list records: %w", err)
	}

	records := make([]Record, 0, len(res.Bindings))
	for _, b := range res.Bindings {
		records = append(records, recordFromBinding(e.version, b, e.cfg.EarliestDatestamp))
	}

	var token *resumptionToken
	switch {
	case p.token.Offset+len(records) < count:
		next := p.token
		next.Offset += e.cfg.PageSize
		token = &resumptionToken{
			CompleteListSize: count,
			Cursor:           p.token.Offset,
			Value:            next.Encode(),
		}
	case p.fromToken:
		// empty token closes a token-driven harvest
		token = &resumptionToken{
			CompleteListSize: count,
			Cursor:           p.token.Offset,
		}
	}
	return records, token, nil
}

// filterFor resolves the token's echoed set spec into a query filter.
// A nil filter means the selection is provably empty.
func (e *Engine) filterFor(tok Token) (*sparql.Filter, error) {
	set, err := ParseSetSpec(e.version, tok.Set)
	if err != nil {
		return nil, err
	}
	if set.Empty {
		return nil, nil
	}
	return &sparql.Filter{
		TypeURI:     set.TypeURI,
		CategoryURI: set.CategoryURI,
		From:        tok.From,
		Until:       tok.Until,
	}, nil
}

// count runs the count query for a filter. The total is recomputed on
// every page because it is part of the token contract.
func (e *Engine) count(ctx context.Context, f sparql.Filter) (int, error) {
	res, err := e.store.Select(ctx, e.scoped(sparql.CountRecords(e.version, f)))
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	if len(res.Bindings) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(res.Bindings[0].Get("n"))
	if err != nil {
		return 0, fmt.Errorf("parse record count %q: %w", res.Bindings[0].Get("n"), err)
	}
	return n, nil
}

func (e *Engine) listIdentifiers(ctx context.Context, req Request) (any, error) {
	p, err := resolvePage(req)
	if err != nil {
		return nil, err
	}
	records, token, err := e.page(ctx, p)
	if err != nil {
		return nil, err
	}

	out := listIdentifiersResult{Token: token}
	for _, rec := range records {
		out.Headers = append(out.Headers, headerFor(rec))
	}
	return out, nil
}

func (e *Engine) listRecords(ctx context.Context, req Request) (any, error) {
	p, err := resolvePage(req)
	if err != nil {
		return nil, err
	}
	records, token, err := e.page(ctx, p)
	if err != nil {
		return nil, err
	}

	out := listRecordsResult{Token: token}
	for _, rec := range records {
		metadata, err := e.renderMetadata(ctx, p.token.MetadataPrefix, rec)
		if err != nil {
			return nil, err
		}
		out.Records = append(out.Records, recordResult{
			Header:   headerFor(rec),
			Metadata: metadata,
		})
	}
	return out, nil
}

func (e *Engine) getRecord(ctx context.Context, req Request) (any, error) {
	if req.Identifier == "" {
		return nil, badArgument("identifier is required")
	}
	if req.MetadataPrefix == "" {
		return nil, badArgument("metadataPrefix is required")
	}
	if !supportedFormat(req.MetadataPrefix) {
		return nil, protocolErrorf(CodeCannotDisseminateFormat, "metadata prefix %q is not supported", req.MetadataPrefix)
	}

	rec, err := e.recordInfo(ctx, req.Identifier)
	if err != nil {
		return nil, err
	}
	metadata, err := e.renderMetadata(ctx, req.MetadataPrefix, rec)
	if err != nil {
		return nil, err
	}
	return getRecordResult{Record: recordResult{
		Header:   headerFor(rec),
		Metadata: metadata,
	}}, nil
}

// recordInfo fetches one record's header fields, mapping absence to
// idDoesNotExist.
func (e *Engine) recordInfo(ctx context.Context, identifier string) (Record, error) {
	res, err := e.store.Select(ctx, e.scoped(sparql.GetRecordInfo(e.version, identifier)))
	if err != nil {
		return Record{}, fmt.Errorf("record info: %w", err)
	}
	if len(res.Bindings) == 0 || !res.Bindings[0].Bound("s") {
		return Record{}, protocolErrorf(CodeIDDoesNotExist, "no record with identifier %q", identifier)
	}
	return recordFromBinding(e.version, res.Bindings[0], e.cfg.EarliestDatestamp), nil
}

func headerFor(rec Record) recordHeader {
	return recordHeader{
		Identifier: rec.Identifier,
		Datestamp:  rec.Datestamp,
		SetSpecs:   rec.Sets,
	}
}
