package harvest

import (
	"encoding/base64"
	"strings"

	"github.com/earthmeta/lodserver/vocabulary"
)

// Set-spec prefixes. A type: spec selects records by harvestable RDF
// type local name; a category: spec selects by theme membership, with
// the category URI base64url-encoded so it survives as one
// query-string token.
const (
	setPrefixType     = "type:"
	setPrefixCategory = "category:"
)

// TypeSetSpec builds the set spec for a harvestable-type local name.
func TypeSetSpec(localName string) string {
	return setPrefixType + localName
}

// CategorySetSpec builds the set spec for a category URI.
func CategorySetSpec(uri string) string {
	return setPrefixCategory + base64.URLEncoding.EncodeToString([]byte(uri))
}

// SetFilter is a decoded set spec applied to a record listing.
type SetFilter struct {
	// TypeURI is the resolved full type IRI for type: specs.
	TypeURI string
	// CategoryURI is the decoded category IRI for category: specs.
	CategoryURI string
	// Empty marks a spec that decodes cleanly but can never match
	// anything, such as an unknown type local name. The protocol
	// answer is an empty selection, not an error.
	Empty bool
}

// ParseSetSpec decodes a set spec into a filter. A malformed spec is a
// badArgument protocol error; an unknown but well-formed type local
// name yields an empty selection instead.
func ParseSetSpec(v vocabulary.Version, spec string) (SetFilter, error) {
	switch {
	case spec == "":
		return SetFilter{}, nil

	case strings.HasPrefix(spec, setPrefixType):
		local := strings.TrimPrefix(spec, setPrefixType)
		uri, ok := vocabulary.TypeByLocalName(v, local)
		if !ok {
			return SetFilter{Empty: true}, nil
		}
		return SetFilter{TypeURI: uri}, nil

	case strings.HasPrefix(spec, setPrefixCategory):
		raw, err := base64.URLEncoding.DecodeString(strings.TrimPrefix(spec, setPrefixCategory))
		if err != nil {
			return SetFilter{}, badArgument("set %q: category is not base64url", spec)
		}
		return SetFilter{CategoryURI: string(raw)}, nil

	default:
		return SetFilter{}, badArgument("set %q: unknown set scheme", spec)
	}
}
