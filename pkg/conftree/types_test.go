package conftree

import "testing"

func TestInferType(t *testing.T) {
	tests := []struct {
		field string
		want  WireType
	}{
		{"name", WireString},
		{"adminStatus", WireUint32},
		{"vip", WireSocketAddr},
		{"sourceAddr", WireSocketAddr},
		{"port", WireUint32},
		{"weight", WireUint32},
		{"backlog", WireUint32},
		{"connLimit", WireUint32},
		{"maxInFlight", WireUint32},
		{"maxRequests", WireUint32},
		{"idleTimeout", WireDouble},
		{"keepAliveTimeout", WireDouble},
		{"responseTimeout", WireDouble},
		{"serviceHttp", WireSubtree},
		{"serviceTcp", WireSubtree},
		{"healthMonitor", WireSubtree},
		{"sslProfile", WireSubtree},
	}

	for _, tt := range tests {
		if got := InferType(tt.field); got != tt.want {
			t.Errorf("InferType(%q): expected %s, got %s", tt.field, tt.want, got)
		}
	}
}

func TestInferType_UnknownDefaultsToString(t *testing.T) {
	for _, field := range []string{"customAttr", "", "Port", "nAme"} {
		if got := InferType(field); got != WireString {
			t.Errorf("InferType(%q): expected %s, got %s", field, WireString, got)
		}
	}
}

func TestTyped(t *testing.T) {
	tv := Typed("port", Uint(8443))

	if tv.Value != "8443" {
		t.Errorf("Expected value 8443, got %q", tv.Value)
	}
	if tv.Type != WireUint32 {
		t.Errorf("Expected type %s, got %s", WireUint32, tv.Type)
	}
}
