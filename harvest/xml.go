package harvest

import (
	"encoding/xml"
	"fmt"
	"time"
)

// Namespace and schema constants for the response envelope and the
// metadata formats.
const (
	oaiNamespace      = "http://www.openarchives.org/OAI/2.0/"
	oaiSchemaLocation = "http://www.openarchives.org/OAI/2.0/ http://www.openarchives.org/OAI/2.0/OAI-PMH.xsd"

	oaiDCPrefix    = "oai_dc"
	oaiDCSchema    = "http://www.openarchives.org/OAI/2.0/oai_dc.xsd"
	oaiDCNamespace = "http://www.openarchives.org/OAI/2.0/oai_dc/"

	dcatPrefix    = "dcat"
	dcatSchema    = "http://www.w3.org/ns/dcat"
	dcatNamespace = "http://www.w3.org/ns/dcat#"

	eposDcatPrefix    = "epos_dcat_ap"
	eposDcatSchema    = "https://www.epos-eu.org/epos-dcat-ap/epos-dcat-ap.shapes.ttl"
	eposDcatNamespace = "https://www.epos-eu.org/epos-dcat-ap#"
)

// envelope is the <OAI-PMH> response root. Exactly one of Error or
// Payload is set.
type envelope struct {
	XMLName        xml.Name     `xml:"OAI-PMH"`
	Namespace      string       `xml:"xmlns,attr"`
	XSI            string       `xml:"xmlns:xsi,attr"`
	SchemaLocation string       `xml:"xsi:schemaLocation,attr"`
	ResponseDate   string       `xml:"responseDate"`
	Request        requestEcho  `xml:"request"`
	Error          *errorResult `xml:"error,omitempty"`
	Payload        any          `xml:",omitempty"`
}

// requestEcho echoes the request arguments as attributes, with the
// repository base URL as element content. On badVerb and
// badResumptionToken errors the attributes are suppressed per the
// protocol.
type requestEcho struct {
	BaseURL        string `xml:",chardata"`
	Verb           string `xml:"verb,attr,omitempty"`
	Identifier     string `xml:"identifier,attr,omitempty"`
	MetadataPrefix string `xml:"metadataPrefix,attr,omitempty"`
	Set            string `xml:"set,attr,omitempty"`
	From           string `xml:"from,attr,omitempty"`
	Until          string `xml:"until,attr,omitempty"`
	Token          string `xml:"resumptionToken,attr,omitempty"`
}

type errorResult struct {
	Code    string `xml:"code,attr"`
	Message string `xml:",chardata"`
}

type identifyResult struct {
	XMLName           xml.Name            `xml:"Identify"`
	RepositoryName    string              `xml:"repositoryName"`
	BaseURL           string              `xml:"baseURL"`
	ProtocolVersion   string              `xml:"protocolVersion"`
	AdminEmail        string              `xml:"adminEmail"`
	EarliestDatestamp string              `xml:"earliestDatestamp"`
	DeletedRecord     string              `xml:"deletedRecord"`
	Granularity       string              `xml:"granularity"`
	Description       identifyDescription `xml:"description"`
}

type identifyDescription struct {
	OAIIdentifier oaiIdentifier `xml:"oai-identifier"`
}

type oaiIdentifier struct {
	Namespace            string `xml:"xmlns,attr"`
	Scheme               string `xml:"scheme"`
	RepositoryIdentifier string `xml:"repositoryIdentifier"`
	Delimiter            string `xml:"delimiter"`
	SampleIdentifier     string `xml:"sampleIdentifier"`
}

type listMetadataFormatsResult struct {
	XMLName xml.Name         `xml:"ListMetadataFormats"`
	Formats []metadataFormat `xml:"metadataFormat"`
}

type metadataFormat struct {
	MetadataPrefix    string `xml:"metadataPrefix"`
	Schema            string `xml:"schema"`
	MetadataNamespace string `xml:"metadataNamespace"`
}

type listSetsResult struct {
	XMLName xml.Name `xml:"ListSets"`
	Sets    []setInfo
}

type setInfo struct {
	XMLName xml.Name `xml:"set"`
	Spec    string   `xml:"setSpec"`
	Name    string   `xml:"setName"`
}

type recordHeader struct {
	XMLName    xml.Name `xml:"header"`
	Identifier string   `xml:"identifier"`
	Datestamp  string   `xml:"datestamp"`
	SetSpecs   []string `xml:"setSpec"`
}

// recordMetadata embeds a pre-serialized metadata document verbatim.
type recordMetadata struct {
	XMLName xml.Name `xml:"metadata"`
	Raw     []byte   `xml:",innerxml"`
}

type recordResult struct {
	XMLName  xml.Name `xml:"record"`
	Header   recordHeader
	Metadata *recordMetadata `xml:",omitempty"`
}

// resumptionToken carries the cursor contract. A present element with
// empty content signals the final page of a token-driven harvest.
type resumptionToken struct {
	XMLName          xml.Name `xml:"resumptionToken"`
	CompleteListSize int      `xml:"completeListSize,attr"`
	Cursor           int      `xml:"cursor,attr"`
	Value            string   `xml:",chardata"`
}

type listIdentifiersResult struct {
	XMLName xml.Name `xml:"ListIdentifiers"`
	Headers []recordHeader
	Token   *resumptionToken `xml:",omitempty"`
}

type listRecordsResult struct {
	XMLName xml.Name `xml:"ListRecords"`
	Records []recordResult
	Token   *resumptionToken `xml:",omitempty"`
}

type getRecordResult struct {
	XMLName xml.Name `xml:"GetRecord"`
	Record  recordResult
}

func supportedFormats() []metadataFormat {
	return []metadataFormat{
		{MetadataPrefix: oaiDCPrefix, Schema: oaiDCSchema, MetadataNamespace: oaiDCNamespace},
		{MetadataPrefix: dcatPrefix, Schema: dcatSchema, MetadataNamespace: dcatNamespace},
		{MetadataPrefix: eposDcatPrefix, Schema: eposDcatSchema, MetadataNamespace: eposDcatNamespace},
	}
}

func supportedFormat(prefix string) bool {
	for _, f := range supportedFormats() {
		if f.MetadataPrefix == prefix {
			return true
		}
	}
	return false
}

// renderEnvelope marshals the full response document.
func renderEnvelope(baseURL string, echo requestEcho, payload any, perr *ProtocolError, now time.Time) ([]byte, error) {
	env := envelope{
		Namespace:      oaiNamespace,
		XSI:            "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation: oaiSchemaLocation,
		ResponseDate:   now.UTC().Format(oaiTimeLayout),
		Request:        echo,
		Payload:        payload,
	}
	env.Request.BaseURL = baseURL

	if perr != nil {
		env.Error = &errorResult{Code: perr.Code, Message: perr.Message}
		env.Payload = nil
		// badVerb and badResumptionToken suppress argument echoing
		if perr.Code == CodeBadVerb || perr.Code == CodeBadResumptionToken {
			env.Request = requestEcho{BaseURL: baseURL}
		}
	}

	body, err := xml.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
