// Package harvest implements the OAI-PMH 2.0 selective-harvesting
// engine over the materialized RDF dataset: verb dispatch, argument
// validation, resumption-token pagination, set filtering and the three
// metadata serializations.
package harvest

import "fmt"

// Protocol error codes from the OAI-PMH 2.0 specification. These are
// part of the wire contract; harvesters branch on them.
const (
	CodeBadArgument             = "badArgument"
	CodeBadResumptionToken      = "badResumptionToken"
	CodeBadVerb                 = "badVerb"
	CodeCannotDisseminateFormat = "cannotDisseminateFormat"
	CodeIDDoesNotExist          = "idDoesNotExist"
	CodeNoRecordsMatch          = "noRecordsMatch"
	CodeNoSetHierarchy          = "noSetHierarchy"
)

// ProtocolError is a harvesting-protocol failure. It is rendered as an
// <error> element in the response envelope, never as a transport
// failure; the service keeps running.
type ProtocolError struct {
	Code    string
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func protocolErrorf(code, format string, args ...any) *ProtocolError {
	return &ProtocolError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func badArgument(format string, args ...any) *ProtocolError {
	return protocolErrorf(CodeBadArgument, format, args...)
}

func badResumptionToken(format string, args ...any) *ProtocolError {
	return protocolErrorf(CodeBadResumptionToken, format, args...)
}
