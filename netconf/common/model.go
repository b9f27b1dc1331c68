package common

// Defines types shared by the netconf operation layer and its callers.

// Request represents the body of a Netconf RPC request.
// It is either an xml string, used verbatim, or a value with xml tags that will be marshalled.
type Request interface{}

// Union holds either a marshallable value or a raw xml string.
type Union struct {
	ValueStr interface{}
	ValueXML string `xml:",innerxml"`
}

// GetUnion wraps s in a Union, treating strings as raw xml.
func GetUnion(s interface{}) *Union {
	switch request := s.(type) {
	case string:
		return &Union{ValueXML: request}
	default:
		return &Union{ValueStr: request}
	}
}

// Define netconf capability URNs.
const (
	CapBase10 = "urn:ietf:params:netconf:base:1.0"
	CapBase11 = "urn:ietf:params:netconf:base:1.1"
)

// SeverityError is the severity of an RPC error that fails the request.
const SeverityError = "error"

