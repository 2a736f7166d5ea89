package transform

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestTransformRegistry_List(t *testing.T) {
	names := NewTransformRegistry().List()

	want := []string{
		"add_initial_capital", "adjust_contribution", "extend_duration", "set_contribution",
		"set_duration", "set_inflation", "set_initial_capital", "set_return_rate", "shift_return_rate",
	}
	if len(names) != len(want) {
		t.Fatalf("Expected %d transforms, got %d: %v", len(want), len(names), names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Expected %s at %d, got %s", want[i], i, names[i])
		}
	}
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tr, err := registry.ParseTransformSpec("shift_return_rate:delta=-0.01")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	shift, ok := tr.(*ShiftReturnRate)
	if !ok {
		t.Fatalf("Expected *ShiftReturnRate, got %T", tr)
	}
	if !shift.Delta.Equal(decimal.RequireFromString("-0.01")) {
		t.Errorf("Expected delta -0.01, got %s", shift.Delta)
	}

	tr, err = registry.ParseTransformSpec(" extend_duration : years = 7 ")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ext := tr.(*ExtendDuration); ext.Years != 7 {
		t.Errorf("Expected 7 years, got %d", ext.Years)
	}
}

func TestTransformRegistry_ParseTransformSpec_Errors(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		spec     string
		contains string
	}{
		{"set_duration", "invalid transform spec format"},
		{"set_duration:years", "invalid parameter format"},
		{"set_duration:months=12", "requires 'years' parameter"},
		{"set_duration:years=ten", "invalid years value"},
		{"set_return_rate:rate=abc", "invalid rate value"},
		{"unknown:x=1", "unknown transform"},
	}

	for _, tt := range tests {
		_, err := registry.ParseTransformSpec(tt.spec)
		if err == nil {
			t.Errorf("%s: expected error", tt.spec)
			continue
		}
		if !strings.Contains(err.Error(), tt.contains) {
			t.Errorf("%s: expected error containing %q, got %v", tt.spec, tt.contains, err)
		}
	}
}
