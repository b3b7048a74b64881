package conftree

import (
	"reflect"
	"testing"
)

func TestScalarConstructors(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "string", value: Str("10.0.0.1:443"), want: "10.0.0.1:443"},
		{name: "int", value: Int(-7), want: "-7"},
		{name: "uint", value: Uint(8443), want: "8443"},
		{name: "float whole", value: Float(30), want: "30"},
		{name: "float fraction", value: Float(2.5), want: "2.5"},
		{name: "bool true", value: Bool(true), want: "1"},
		{name: "bool false", value: Bool(false), want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value.IsObject() {
				t.Error("Expected scalar value")
			}
			if got := tt.value.Scalar(); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSub(t *testing.T) {
	inner := Object{"maxInFlight": Uint(2)}
	v := Sub(inner)

	if !v.IsObject() {
		t.Fatal("Expected object value")
	}
	if v.Scalar() != "" {
		t.Errorf("Expected empty scalar for object value, got %q", v.Scalar())
	}
	if v.Object()["maxInFlight"].Scalar() != "2" {
		t.Error("Expected nested field to round-trip")
	}

	// Sub(nil) still reports as an object.
	if !Sub(nil).IsObject() {
		t.Error("Expected Sub(nil) to be an object value")
	}
}

func TestZeroValue(t *testing.T) {
	var v Value
	if v.IsObject() {
		t.Error("Expected zero value to be a scalar")
	}
	if v.Scalar() != "" {
		t.Errorf("Expected empty scalar, got %q", v.Scalar())
	}
}

func TestObject_Fields(t *testing.T) {
	obj := Object{
		"weight":  Uint(4),
		"backlog": Uint(128),
		"name":    Str("svc1"),
	}

	got := obj.Fields()
	want := []string{"backlog", "name", "weight"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestFromMap(t *testing.T) {
	m := map[string]any{
		"name":        "svc1",
		"port":        8443,
		"idleTimeout": 30.5,
		"adminStatus": true,
		"serviceHttp": map[string]any{
			"maxInFlight": 2,
		},
	}

	obj, err := FromMap(m)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if obj["name"].Scalar() != "svc1" {
		t.Errorf("Expected name svc1, got %q", obj["name"].Scalar())
	}
	if obj["port"].Scalar() != "8443" {
		t.Errorf("Expected port 8443, got %q", obj["port"].Scalar())
	}
	if obj["idleTimeout"].Scalar() != "30.5" {
		t.Errorf("Expected idleTimeout 30.5, got %q", obj["idleTimeout"].Scalar())
	}
	if obj["adminStatus"].Scalar() != "1" {
		t.Errorf("Expected adminStatus 1, got %q", obj["adminStatus"].Scalar())
	}

	sub := obj["serviceHttp"]
	if !sub.IsObject() {
		t.Fatal("Expected serviceHttp to be an object")
	}
	if sub.Object()["maxInFlight"].Scalar() != "2" {
		t.Errorf("Expected nested maxInFlight 2, got %q", sub.Object()["maxInFlight"].Scalar())
	}
}

func TestFromMap_Rejections(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
	}{
		{name: "list", m: map[string]any{"members": []any{"a", "b"}}},
		{name: "null", m: map[string]any{"vip": nil}},
		{name: "nested list", m: map[string]any{"serviceHttp": map[string]any{"hosts": []any{"x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := FromMap(tt.m); err == nil {
				t.Fatal("Expected error, got nil")
			}
		})
	}
}
