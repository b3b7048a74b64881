package conftree

// WireType identifies how the device expects a scalar to be encoded at a
// given node. The transport tags each write with one of these.
type WireType string

const (
	// WireString is a plain string setting. Unknown fields default to this.
	WireString WireType = "string"

	// WireUint32 is an unsigned 32-bit integer setting.
	WireUint32 WireType = "uint32"

	// WireDouble is a floating-point setting (timeouts, rates).
	WireDouble WireType = "double"

	// WireSocketAddr is an address:port endpoint setting.
	WireSocketAddr WireType = "socket-addr"

	// WireSubtree marks a field whose value is an entire child node rather
	// than a scalar. Subtree fields are never written directly.
	WireSubtree WireType = "sub"
)

// TypedValue pairs a scalar payload with the wire type the transport needs
// to encode it. Constructed fresh per write.
type TypedValue struct {
	Value string   `json:"value"`
	Type  WireType `json:"type"`
}

// Typed builds the TypedValue for a field, inferring the wire type from the
// field name.
func Typed(field string, v Value) TypedValue {
	return TypedValue{Value: v.Scalar(), Type: InferType(field)}
}

// wireTypes encodes server-side schema knowledge: the wire type of each
// known configuration field. The table grows as fields are learned; lookups
// never consult scheduling logic.
var wireTypes = map[string]WireType{
	// Identity and status.
	"name":        WireString,
	"adminStatus": WireUint32,

	// Addressing.
	"vip":        WireSocketAddr,
	"sourceAddr": WireSocketAddr,

	// Counters and limits.
	"port":        WireUint32,
	"weight":      WireUint32,
	"backlog":     WireUint32,
	"connLimit":   WireUint32,
	"maxInFlight": WireUint32,
	"maxRequests": WireUint32,

	// Timers.
	"idleTimeout":      WireDouble,
	"keepAliveTimeout": WireDouble,
	"responseTimeout":  WireDouble,

	// Child configuration nodes.
	"serviceHttp":   WireSubtree,
	"serviceTcp":    WireSubtree,
	"healthMonitor": WireSubtree,
	"sslProfile":    WireSubtree,
}

// InferType returns the wire type for a configuration field. The function is
// total: fields absent from the table are treated as plain strings.
func InferType(field string) WireType {
	if t, ok := wireTypes[field]; ok {
		return t
	}
	return WireString
}
