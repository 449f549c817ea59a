package harvest

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// tokenFieldCount is fixed by the wire format; a decoded payload with
// any other arity is an invalid token.
const tokenFieldCount = 5

// Token is the decoded pagination state carried between pages of a
// multi-page harvest. The encoded form is opaque to clients but part
// of the wire contract: pipe-delimited fields, base64url.
type Token struct {
	Offset         int
	MetadataPrefix string
	Set            string
	From           string
	Until          string
}

// Encode serializes the token to its opaque wire form.
func (t Token) Encode() string {
	payload := fmt.Sprintf("%d|%s|%s|%s|%s", t.Offset, t.MetadataPrefix, t.Set, t.From, t.Until)
	return base64.URLEncoding.EncodeToString([]byte(payload))
}

// DecodeToken parses an opaque token back into pagination state. Any
// malformation (bad base64url, wrong field arity, non-numeric or
// negative offset) is a badResumptionToken protocol error.
func DecodeToken(s string) (Token, error) {
	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return Token{}, badResumptionToken("not base64url")
	}

	fields := strings.Split(string(raw), "|")
	if len(fields) != tokenFieldCount {
		return Token{}, badResumptionToken("expected %d fields, got %d", tokenFieldCount, len(fields))
	}

	offset, err := strconv.Atoi(fields[0])
	if err != nil || offset < 0 {
		return Token{}, badResumptionToken("invalid offset %q", fields[0])
	}

	return Token{
		Offset:         offset,
		MetadataPrefix: fields[1],
		Set:            fields[2],
		From:           fields[3],
		Until:          fields[4],
	}, nil
}
