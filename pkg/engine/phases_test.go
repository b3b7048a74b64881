package engine

import (
	"testing"

	"github.com/adcflow/adcflow/pkg/conftree"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value conftree.Value
		want  Phase
	}{
		{name: "name field", field: "name", value: conftree.Str("svc1"), want: PhaseNaming},
		{name: "admin disabled", field: "adminStatus", value: conftree.Str("0"), want: PhaseDisable},
		{name: "admin enabled", field: "adminStatus", value: conftree.Str("1"), want: PhaseEnable},
		{name: "admin other literal", field: "adminStatus", value: conftree.Str("2"), want: PhaseGeneral},
		{name: "ordinary scalar", field: "port", value: conftree.Uint(8443), want: PhaseGeneral},
		{name: "unknown scalar", field: "customAttr", value: conftree.Str("x"), want: PhaseGeneral},
		{name: "http subtree", field: "serviceHttp", value: conftree.Sub(conftree.Object{}), want: PhaseSubtree},
		{name: "ssl subtree", field: "sslProfile", value: conftree.Sub(conftree.Object{}), want: PhaseSubtree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := classify(tt.field, tt.value)
			if err != nil {
				t.Fatalf("Expected no error, got: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected phase %s, got %s", tt.want, got)
			}
		})
	}
}

func TestClassify_MalformedShapes(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value conftree.Value
	}{
		{name: "object on ordinary field", field: "port", value: conftree.Sub(conftree.Object{})},
		{name: "object on name field", field: "name", value: conftree.Sub(conftree.Object{})},
		{name: "scalar on subtree field", field: "serviceHttp", value: conftree.Str("oops")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := classify(tt.field, tt.value)
			if !IsValidation(err) {
				t.Fatalf("Expected validation error, got: %v", err)
			}
		})
	}
}

func TestPartition_LexicalOrderWithinPhase(t *testing.T) {
	desired := conftree.Object{
		"weight":  conftree.Uint(4),
		"backlog": conftree.Uint(128),
		"port":    conftree.Uint(8443),
		"name":    conftree.Str("svc1"),
	}

	buckets, err := partition(desired)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	general := buckets[PhaseGeneral]
	want := []string{"backlog", "port", "weight"}
	if len(general) != len(want) {
		t.Fatalf("Expected %d general fields, got %d", len(want), len(general))
	}
	for i, field := range want {
		if general[i] != field {
			t.Errorf("Expected general[%d]=%s, got %s", i, field, general[i])
		}
	}

	if len(buckets[PhaseNaming]) != 1 || buckets[PhaseNaming][0] != "name" {
		t.Errorf("Expected naming bucket [name], got %v", buckets[PhaseNaming])
	}
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseNaming, "naming"},
		{PhaseDisable, "disable"},
		{PhaseGeneral, "general"},
		{PhaseSubtree, "subtree"},
		{PhaseEnable, "enable"},
		{Phase(99), "phase(99)"},
	}

	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
	}
}
