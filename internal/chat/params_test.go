package chat

import (
	"reflect"
	"testing"
)

func TestParseParams(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]any
	}{
		{
			name: "mixed types",
			in:   "principal=5000, annual_rate=0.06, compounds_per_year=12, years=13",
			want: map[string]any{
				"principal":          5000,
				"annual_rate":        0.06,
				"compounds_per_year": 12,
				"years":              13,
			},
		},
		{
			name: "spaces around equals",
			in:   "a = 2, b = 3",
			want: map[string]any{"a": 2, "b": 3},
		},
		{
			name: "string value",
			in:   `pattern=**/*.go`,
			want: map[string]any{"pattern": "**/*.go"},
		},
		{
			name: "empty",
			in:   "",
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseParams(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseParams(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"5", 5},
		{"-3", -3},
		{"0.06", 0.06},
		{"true", true},
		{"hello", "hello"},
		{` "quoted" `, "quoted"},
		{"13", 13},
	}

	for _, tt := range tests {
		got := CoerceValue(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("CoerceValue(%q) = %#v (%T), want %#v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
